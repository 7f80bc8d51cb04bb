package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// RuleRepository persists notation validation rules.
type RuleRepository struct {
	db *sql.DB
}

// NewRuleRepository creates a new RuleRepository
func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

const ruleColumns = "id, organization_id, category, name, `condition`, error_message, active, created_date, last_modified_date"

// ListForOrganization returns active system rules plus the organization's
// own active rules for a category.
func (r *RuleRepository) ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.ValidationRule, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE category = ? AND active = true
		  AND (organization_id = ? OR organization_id IS NULL)
		ORDER BY (organization_id IS NULL), created_date
	`, ruleColumns, constants.TableValidationRule)

	rows, err := r.db.QueryContext(ctx, query, string(category), organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation rules: %w", err)
	}
	defer rows.Close()

	rules := make([]*models.ValidationRule, 0)
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			log.Printf("Warning: Failed to scan validation rule: %v", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Create inserts a new rule
func (r *RuleRepository) Create(ctx context.Context, rule *models.ValidationRule) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		constants.TableValidationRule, ruleColumns)

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		rule.ID, models.PtrToNullString(rule.OrganizationID), string(rule.Category),
		rule.Name, rule.Condition, rule.ErrorMessage, rule.Active, now, now)
	return err
}

func (r *RuleRepository) scanRule(row Scannable) (*models.ValidationRule, error) {
	var rule models.ValidationRule
	var orgID sql.NullString
	var category string

	if err := row.Scan(
		&rule.ID, &orgID, &category, &rule.Name, &rule.Condition, &rule.ErrorMessage,
		&rule.Active, &rule.CreatedDate, &rule.LastModifiedDate,
	); err != nil {
		return nil, err
	}

	rule.OrganizationID = models.NullStringToPtr(orgID)
	rule.Category = constants.OperationCategory(category)
	return &rule, nil
}
