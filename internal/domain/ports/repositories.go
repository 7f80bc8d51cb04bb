package ports

import (
	"context"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// LibraryRepository stores reusable operation definitions. Read methods
// return active organization-scoped entries followed by active
// system-scoped entries, each group ordered by creation date. The
// matcher's precedence and tie-break rules depend on this ordering.
type LibraryRepository interface {
	// ListForOrganization returns the active entries visible to an
	// organization (its own plus system defaults) for one category.
	ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.LibraryEntry, error)

	// GetByID returns an entry regardless of scope or active flag,
	// or nil if absent.
	GetByID(ctx context.Context, id string) (*models.LibraryEntry, error)

	Create(ctx context.Context, entry *models.LibraryEntry) error
	Update(ctx context.Context, entry *models.LibraryEntry) error
	Delete(ctx context.Context, id string) error

	// IncrementUsage atomically increments the usage counter. Safe for
	// concurrent calls on the same entry; increments are never lost.
	IncrementUsage(ctx context.Context, id string) error
}

// DialectRepository stores per-organization dialect configs. Alias
// mutations are single-statement updates against the stored alias map,
// so concurrent learn events for different organizations never interfere.
type DialectRepository interface {
	// Get returns the organization's config, or nil if none exists yet.
	Get(ctx context.Context, organizationID string) (*models.DialectConfig, error)

	// Upsert creates or replaces the whole config row.
	Upsert(ctx context.Context, config *models.DialectConfig) error

	// AddAlias maps an external notation to a canonical code,
	// overwriting any existing mapping for that key.
	AddAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external, canonical string) error

	// RemoveAlias deletes a mapping; a missing key is a no-op.
	RemoveAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external string) error

	// UpdateFlags sets the behavioral flags.
	UpdateFlags(ctx context.Context, organizationID string, useAIFallback, autoLearn bool) error
}

// OperationTypeRepository stores dropdown-level operation types.
type OperationTypeRepository interface {
	// ListForOrganization returns org-scoped and system types for a
	// category, org entries first.
	ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.OperationType, error)

	GetByID(ctx context.Context, id string) (*models.OperationType, error)
	Create(ctx context.Context, opType *models.OperationType) error
	Update(ctx context.Context, opType *models.OperationType) error
	Delete(ctx context.Context, id string) error
}

// RuleRepository stores notation validation rules.
type RuleRepository interface {
	// ListForOrganization returns active system rules plus the
	// organization's own active rules for a category.
	ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.ValidationRule, error)

	Create(ctx context.Context, rule *models.ValidationRule) error
}

// AccountRepository stores login accounts.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
}
