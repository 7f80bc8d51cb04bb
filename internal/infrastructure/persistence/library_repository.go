package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// LibraryRepository persists reusable operation definitions. The
// category-specific payload (groove/drill/cnc spec) lives in a JSON
// column; scope is encoded by a nullable organization_id.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

var libraryColumns = []string{
	constants.FieldID,
	constants.FieldOrganizationID,
	constants.FieldCategory,
	constants.FieldCode,
	constants.FieldName,
	constants.FieldKind,
	constants.FieldIsActive,
	constants.FieldUsageCount,
	constants.FieldSpec,
	constants.FieldCreatedDate,
	constants.FieldLastModifiedDate,
}

// ListForOrganization returns active entries visible to an organization:
// its own rows first, then system defaults, each group oldest first. The
// matcher's precedence and tie-break rules rely on this ordering.
func (r *LibraryRepository) ListForOrganization(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.LibraryEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE category = ? AND is_active = true
		  AND (organization_id = ? OR organization_id IS NULL)
		ORDER BY (organization_id IS NULL), created_date, id
	`, strings.Join(libraryColumns, ", "), constants.TableLibraryEntry)

	rows, err := r.db.QueryContext(ctx, query, string(category), organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.LibraryEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			log.Printf("Warning: Failed to scan library entry: %v", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetByID returns an entry regardless of scope or active flag, or nil if absent
func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*models.LibraryEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(libraryColumns, ", "), constants.TableLibraryEntry)
	entry, err := r.scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// Create inserts a new entry
func (r *LibraryRepository) Create(ctx context.Context, entry *models.LibraryEntry) error {
	specJSON, err := marshalSpec(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize spec: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (
		id, organization_id, category, code, name, kind, is_active, usage_count, spec, created_date, last_modified_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, constants.TableLibraryEntry)

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, models.PtrToNullString(entry.OrganizationID), string(entry.Category),
		entry.Code, entry.Name, entry.Kind, entry.IsActive, entry.UsageCount, specJSON,
		now, now,
	)
	return err
}

// Update rewrites an entry's mutable fields
func (r *LibraryRepository) Update(ctx context.Context, entry *models.LibraryEntry) error {
	specJSON, err := marshalSpec(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize spec: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET
		code = ?, name = ?, kind = ?, is_active = ?, spec = ?, last_modified_date = ?
		WHERE id = ?`, constants.TableLibraryEntry)

	result, err := r.db.ExecContext(ctx, query,
		entry.Code, entry.Name, entry.Kind, entry.IsActive, specJSON, time.Now(), entry.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an entry
func (r *LibraryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", constants.TableLibraryEntry), id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementUsage bumps the usage counter in a single statement so that
// concurrent increments on the same entry never lose an update.
func (r *LibraryRepository) IncrementUsage(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET usage_count = usage_count + 1 WHERE id = ?", constants.TableLibraryEntry)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LibraryRepository) scanEntry(row Scannable) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	var orgID sql.NullString
	var category, specJSON string

	if err := row.Scan(
		&entry.ID, &orgID, &category, &entry.Code, &entry.Name, &entry.Kind,
		&entry.IsActive, &entry.UsageCount, &specJSON,
		&entry.CreatedDate, &entry.LastModifiedDate,
	); err != nil {
		return nil, err
	}

	entry.OrganizationID = models.NullStringToPtr(orgID)
	entry.Category = constants.OperationCategory(category)

	if err := unmarshalSpec(&entry, specJSON); err != nil {
		return nil, fmt.Errorf("failed to parse spec for entry %s: %w", entry.ID, err)
	}
	return &entry, nil
}

// marshalSpec serializes whichever payload variant matches the category
func marshalSpec(entry *models.LibraryEntry) (string, error) {
	switch entry.Category {
	case constants.CategoryGroove:
		return models.ToJSON(entry.Groove)
	case constants.CategoryDrilling:
		return models.ToJSON(entry.Drill)
	case constants.CategoryCNC:
		return models.ToJSON(entry.CNC)
	}
	return "{}", nil
}

func unmarshalSpec(entry *models.LibraryEntry, specJSON string) error {
	switch entry.Category {
	case constants.CategoryGroove:
		entry.Groove = &models.GrooveSpec{}
		return models.ParseJSON(specJSON, entry.Groove)
	case constants.CategoryDrilling:
		entry.Drill = &models.DrillSpec{}
		return models.ParseJSON(specJSON, entry.Drill)
	case constants.CategoryCNC:
		entry.CNC = &models.CNCSpec{}
		return models.ParseJSON(specJSON, entry.CNC)
	}
	return nil
}
