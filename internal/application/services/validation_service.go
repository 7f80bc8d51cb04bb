package services

import (
	"context"
	"log"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/errors"
	"github.com/panelops/backend/pkg/expression"
)

// ValidationService evaluates expression-based rules against resolved
// operations. System rules apply to every organization; org rules apply
// on top. The first failing rule rejects the operation with its message.
type ValidationService struct {
	engine *expression.Engine
	rules  ports.RuleRepository
}

// NewValidationService creates a new ValidationService
func NewValidationService(engine *expression.Engine, rules ports.RuleRepository) *ValidationService {
	return &ValidationService{engine: engine, rules: rules}
}

// Validate runs the applicable rules against the operation. A rule that
// fails to evaluate is skipped with a warning; a broken rule must not
// block production resolution.
func (s *ValidationService) Validate(ctx context.Context, organizationID string, op *models.Operation) error {
	if op == nil {
		return nil
	}

	rules, err := s.rules.ListForOrganization(ctx, organizationID, op.Category)
	if err != nil {
		return errors.NewStorageError("validation rules list", err)
	}
	if len(rules) == 0 {
		return nil
	}

	env := operationEnv(op)
	for _, rule := range rules {
		ok, err := s.engine.EvaluateBool(rule.Condition, env)
		if err != nil {
			log.Printf("⚠️ Skipping validation rule %s (%s): %v", rule.ID, rule.Name, err)
			continue
		}
		if !ok {
			return errors.NewValidationError("", rule.ErrorMessage)
		}
	}
	return nil
}

// operationEnv flattens an operation into the environment rule conditions
// see: width_mm, depth_mm, offset_mm, hole_count, edge_count, op_type and
// any CNC params by name.
func operationEnv(op *models.Operation) map[string]interface{} {
	env := map[string]interface{}{
		"category": string(op.Category),
		"code":     op.Code(),
	}

	switch {
	case op.EdgeBand != nil:
		env["edge_count"] = len(op.EdgeBand.Edges)
	case op.Groove != nil:
		env["width_mm"] = op.Groove.WidthMm
		env["depth_mm"] = op.Groove.DepthMm
		env["offset_mm"] = op.Groove.OffsetMm
		if op.Groove.Edge != nil {
			env["edge"] = string(*op.Groove.Edge)
		}
	case op.Drilling != nil:
		env["hole_count"] = len(op.Drilling.Holes)
		env["ref_edge"] = string(op.Drilling.RefEdge)
	case op.CNC != nil:
		env["op_type"] = op.CNC.OpType
		for k, v := range op.CNC.Params {
			env[k] = v
		}
	}
	return env
}
