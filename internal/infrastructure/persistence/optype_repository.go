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

// OperationTypeRepository persists dropdown-level operation types.
type OperationTypeRepository struct {
	db *sql.DB
}

// NewOperationTypeRepository creates a new OperationTypeRepository
func NewOperationTypeRepository(db *sql.DB) *OperationTypeRepository {
	return &OperationTypeRepository{db: db}
}

const opTypeColumns = "id, organization_id, category, code, label, sort_order, created_date, last_modified_date"

// ListForOrganization returns org-scoped and system types for a category,
// org rows first, then sorted for display.
func (r *OperationTypeRepository) ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.OperationType, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE category = ? AND (organization_id = ? OR organization_id IS NULL)
		ORDER BY (organization_id IS NULL), sort_order, code
	`, opTypeColumns, constants.TableOperationType)

	rows, err := r.db.QueryContext(ctx, query, string(category), organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation types: %w", err)
	}
	defer rows.Close()

	types := make([]*models.OperationType, 0)
	for rows.Next() {
		opType, err := r.scanType(rows)
		if err != nil {
			log.Printf("Warning: Failed to scan operation type: %v", err)
			continue
		}
		types = append(types, opType)
	}
	return types, rows.Err()
}

// GetByID returns a type by id, or nil if absent
func (r *OperationTypeRepository) GetByID(ctx context.Context, id string) (*models.OperationType, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", opTypeColumns, constants.TableOperationType)
	opType, err := r.scanType(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return opType, nil
}

// Create inserts a new type
func (r *OperationTypeRepository) Create(ctx context.Context, opType *models.OperationType) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		constants.TableOperationType, opTypeColumns)

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		opType.ID, models.PtrToNullString(opType.OrganizationID), string(opType.Category),
		opType.Code, opType.Label, opType.SortOrder, now, now)
	return err
}

// Update rewrites a type's mutable fields
func (r *OperationTypeRepository) Update(ctx context.Context, opType *models.OperationType) error {
	query := fmt.Sprintf(`UPDATE %s SET code = ?, label = ?, sort_order = ?, last_modified_date = ? WHERE id = ?`,
		constants.TableOperationType)

	result, err := r.db.ExecContext(ctx, query, opType.Code, opType.Label, opType.SortOrder, time.Now(), opType.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a type
func (r *OperationTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", constants.TableOperationType), id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *OperationTypeRepository) scanType(row Scannable) (*models.OperationType, error) {
	var opType models.OperationType
	var orgID sql.NullString
	var category string

	if err := row.Scan(
		&opType.ID, &orgID, &category, &opType.Code, &opType.Label, &opType.SortOrder,
		&opType.CreatedDate, &opType.LastModifiedDate,
	); err != nil {
		return nil, err
	}

	opType.OrganizationID = models.NullStringToPtr(orgID)
	opType.Category = constants.OperationCategory(category)
	return &opType, nil
}
