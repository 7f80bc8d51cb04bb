// Package bootstrap creates the fixed schema and seeds the system-scope
// defaults. It runs during server startup before any request is accepted.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/panelops/backend/pkg/constants"
)

// tableDDL holds one CREATE TABLE statement per system table. The schema
// is fixed; there is no runtime DDL beyond this.
var tableDDL = []struct {
	name string
	ddl  string
}{
	{
		name: constants.TableOrganization,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableOrganization + ` (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_date TIMESTAMP NOT NULL,
			last_modified_date TIMESTAMP NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	{
		name: constants.TableAccount,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableAccount + ` (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NOT NULL,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_date TIMESTAMP NOT NULL,
			last_modified_date TIMESTAMP NOT NULL,
			UNIQUE KEY uk_account_email (email),
			KEY idx_account_org (organization_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	{
		name: constants.TableLibraryEntry,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableLibraryEntry + ` (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NULL,
			category VARCHAR(32) NOT NULL,
			code VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			kind VARCHAR(64) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			usage_count BIGINT NOT NULL DEFAULT 0,
			spec JSON NOT NULL,
			created_date TIMESTAMP NOT NULL,
			last_modified_date TIMESTAMP NOT NULL,
			KEY idx_library_lookup (category, organization_id, is_active)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	{
		name: constants.TableDialectConfig,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableDialectConfig + ` (
			organization_id VARCHAR(36) PRIMARY KEY,
			aliases JSON NOT NULL,
			use_ai_fallback BOOLEAN NOT NULL DEFAULT FALSE,
			auto_learn BOOLEAN NOT NULL DEFAULT TRUE,
			created_date TIMESTAMP NOT NULL,
			last_modified_date TIMESTAMP NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	{
		name: constants.TableOperationType,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableOperationType + ` (
			id VARCHAR(36) PRIMARY KEY,
			organization_id VARCHAR(36) NULL,
			category VARCHAR(32) NOT NULL,
			code VARCHAR(64) NOT NULL,
			label VARCHAR(255) NOT NULL,
			sort_order INT NOT NULL DEFAULT 0,
			created_date TIMESTAMP NOT NULL,
			last_modified_date TIMESTAMP NOT NULL,
			KEY idx_optype_lookup (category, organization_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	{
		name: constants.TableValidationRule,
		ddl: `CREATE TABLE IF NOT EXISTS ` + constants.TableValidationRule + " (\n" +
			"			id VARCHAR(36) PRIMARY KEY,\n" +
			"			organization_id VARCHAR(36) NULL,\n" +
			"			category VARCHAR(32) NOT NULL,\n" +
			"			name VARCHAR(255) NOT NULL,\n" +
			"			`condition` TEXT NOT NULL,\n" +
			"			error_message VARCHAR(512) NOT NULL,\n" +
			"			active BOOLEAN NOT NULL DEFAULT TRUE,\n" +
			"			created_date TIMESTAMP NOT NULL,\n" +
			"			last_modified_date TIMESTAMP NOT NULL,\n" +
			"			KEY idx_rule_lookup (category, organization_id, active)\n" +
			"		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
	},
}

// EnsureSchema creates any missing system tables
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	log.Println("🔧 Ensuring database schema...")
	for _, t := range tableDDL {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
		log.Printf("   ✅ %s", t.name)
	}
	return nil
}
