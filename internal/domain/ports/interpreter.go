package ports

import (
	"context"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// Interpreter is the optional AI fallback collaborator, consulted only
// after every deterministic strategy has failed. Its output is treated
// as unverified: a nil operation with a nil error means "no candidate".
type Interpreter interface {
	Interpret(ctx context.Context, category constants.OperationCategory, rawNotation string) (*models.Operation, error)
}
