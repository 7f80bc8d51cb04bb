package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// DialectRepository persists per-organization dialect configs as a single
// row each, with the four alias maps in one JSON column. Alias mutations
// are single-statement JSON updates so two concurrent learn events never
// clobber each other's keys.
type DialectRepository struct {
	db *sql.DB
}

// NewDialectRepository creates a new DialectRepository
func NewDialectRepository(db *sql.DB) *DialectRepository {
	return &DialectRepository{db: db}
}

// Get returns the organization's dialect config, or nil if none exists
func (r *DialectRepository) Get(ctx context.Context, organizationID string) (*models.DialectConfig, error) {
	query := fmt.Sprintf(`
		SELECT organization_id, aliases, use_ai_fallback, auto_learn, created_date, last_modified_date
		FROM %s WHERE organization_id = ?
	`, constants.TableDialectConfig)

	var config models.DialectConfig
	var aliasesJSON string
	err := r.db.QueryRowContext(ctx, query, organizationID).Scan(
		&config.OrganizationID, &aliasesJSON, &config.UseAIFallback, &config.AutoLearn,
		&config.CreatedDate, &config.LastModifiedDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	config.Aliases = make(map[constants.OperationCategory]models.AliasMap, 4)
	if err := models.ParseJSON(aliasesJSON, &config.Aliases); err != nil {
		return nil, fmt.Errorf("failed to parse aliases for org %s: %w", organizationID, err)
	}
	// Categories absent from the stored document read as empty maps
	for _, c := range constants.AllCategories() {
		if config.Aliases[c] == nil {
			config.Aliases[c] = models.AliasMap{}
		}
	}
	return &config, nil
}

// Upsert creates or replaces the whole config row
func (r *DialectRepository) Upsert(ctx context.Context, config *models.DialectConfig) error {
	aliasesJSON, err := models.ToJSON(config.Aliases)
	if err != nil {
		return fmt.Errorf("failed to serialize aliases: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (organization_id, aliases, use_ai_fallback, auto_learn, created_date, last_modified_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			aliases = VALUES(aliases),
			use_ai_fallback = VALUES(use_ai_fallback),
			auto_learn = VALUES(auto_learn),
			last_modified_date = VALUES(last_modified_date)
	`, constants.TableDialectConfig)

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		config.OrganizationID, aliasesJSON, config.UseAIFallback, config.AutoLearn, now, now)
	return err
}

// AddAlias maps an external notation to a canonical code in one JSON_SET
// statement, overwriting any existing mapping for that key. The config
// row is created with defaults if the organization has none yet.
func (r *DialectRepository) AddAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external, canonical string) error {
	if err := r.ensureConfig(ctx, organizationID); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET aliases = JSON_SET(aliases, CONCAT('$."', ?, '"."', ?, '"'), ?),
		    last_modified_date = ?
		WHERE organization_id = ?
	`, constants.TableDialectConfig)

	_, err := r.db.ExecContext(ctx, query,
		string(category), models.NormalizeNotation(external), canonical, time.Now(), organizationID)
	return err
}

// RemoveAlias deletes a mapping in one JSON_REMOVE statement. A missing
// key or missing config row is a no-op, not an error.
func (r *DialectRepository) RemoveAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET aliases = JSON_REMOVE(aliases, CONCAT('$."', ?, '"."', ?, '"')),
		    last_modified_date = ?
		WHERE organization_id = ?
	`, constants.TableDialectConfig)

	_, err := r.db.ExecContext(ctx, query,
		string(category), models.NormalizeNotation(external), time.Now(), organizationID)
	return err
}

// UpdateFlags sets the behavioral flags, creating the row if needed
func (r *DialectRepository) UpdateFlags(ctx context.Context, organizationID string, useAIFallback, autoLearn bool) error {
	if err := r.ensureConfig(ctx, organizationID); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET use_ai_fallback = ?, auto_learn = ?, last_modified_date = ?
		WHERE organization_id = ?
	`, constants.TableDialectConfig)

	_, err := r.db.ExecContext(ctx, query, useAIFallback, autoLearn, time.Now(), organizationID)
	return err
}

// ensureConfig inserts the default config row if the organization has
// none. INSERT IGNORE keeps this race-safe under concurrent callers.
func (r *DialectRepository) ensureConfig(ctx context.Context, organizationID string) error {
	defaults := models.NewDialectConfig(organizationID)
	defaults.AutoLearn = true

	aliasesJSON, err := models.ToJSON(defaults.Aliases)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT IGNORE INTO %s (organization_id, aliases, use_ai_fallback, auto_learn, created_date, last_modified_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, constants.TableDialectConfig)

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		organizationID, aliasesJSON, defaults.UseAIFallback, defaults.AutoLearn, now, now)
	return err
}
