package bootstrap

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/auth"
	"github.com/panelops/backend/pkg/constants"
)

//go:embed system_data.json
var systemDataJSON []byte

type systemData struct {
	LibraryEntries  []models.LibraryEntry   `json:"library_entries"`
	OperationTypes  []models.OperationType  `json:"operation_types"`
	ValidationRules []models.ValidationRule `json:"validation_rules"`
	Organizations   []models.Organization   `json:"organizations"`
	Accounts        []struct {
		ID             string `json:"id"`
		OrganizationID string `json:"organization_id"`
		Email          string `json:"email"`
		Name           string `json:"name"`
		Password       string `json:"password"`
		IsAdmin        bool   `json:"is_admin"`
	} `json:"accounts"`
}

// Repositories are the persistence collaborators the seeding step needs
type Repositories struct {
	Library  ports.LibraryRepository
	OpTypes  ports.OperationTypeRepository
	Rules    ports.RuleRepository
	Accounts ports.AccountRepository
}

// InitializeSystemData ensures the seeded system defaults exist. It is
// idempotent: existing rows are left alone, missing ones are created.
// Call during startup, after EnsureSchema, before accepting requests.
func InitializeSystemData(ctx context.Context, db *sql.DB, repos Repositories) error {
	log.Println("🔧 Initializing system data...")

	var data systemData
	if err := json.Unmarshal(systemDataJSON, &data); err != nil {
		return fmt.Errorf("failed to parse system_data.json: %w", err)
	}

	if err := seedOrganizations(ctx, db, data.Organizations); err != nil {
		return err
	}
	if err := seedLibraryEntries(ctx, repos.Library, data.LibraryEntries); err != nil {
		return err
	}
	if err := seedOperationTypes(ctx, repos.OpTypes, data.OperationTypes); err != nil {
		return err
	}
	if err := seedValidationRules(ctx, repos.Rules, data.ValidationRules); err != nil {
		return err
	}
	if err := seedAccounts(ctx, repos.Accounts, data); err != nil {
		return err
	}
	return nil
}

func seedOrganizations(ctx context.Context, db *sql.DB, orgs []models.Organization) error {
	query := fmt.Sprintf(`INSERT IGNORE INTO %s (id, name, created_date, last_modified_date) VALUES (?, ?, ?, ?)`,
		constants.TableOrganization)
	now := time.Now()
	for _, org := range orgs {
		if _, err := db.ExecContext(ctx, query, org.ID, org.Name, now, now); err != nil {
			return fmt.Errorf("failed to seed organization %s: %w", org.ID, err)
		}
	}
	log.Printf("   ✅ Ensure %d organizations", len(orgs))
	return nil
}

func seedLibraryEntries(ctx context.Context, repo ports.LibraryRepository, entries []models.LibraryEntry) error {
	created := 0
	for i := range entries {
		entry := entries[i]
		existing, err := repo.GetByID(ctx, entry.ID)
		if err != nil {
			return fmt.Errorf("failed to check library entry %s: %w", entry.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, &entry); err != nil {
			return fmt.Errorf("failed to seed library entry %s: %w", entry.ID, err)
		}
		created++
	}
	log.Printf("   ✅ Ensure %d system library entries (%d created)", len(entries), created)
	return nil
}

func seedOperationTypes(ctx context.Context, repo ports.OperationTypeRepository, types []models.OperationType) error {
	created := 0
	for i := range types {
		opType := types[i]
		existing, err := repo.GetByID(ctx, opType.ID)
		if err != nil {
			return fmt.Errorf("failed to check operation type %s: %w", opType.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, &opType); err != nil {
			return fmt.Errorf("failed to seed operation type %s: %w", opType.ID, err)
		}
		created++
	}
	log.Printf("   ✅ Ensure %d system operation types (%d created)", len(types), created)
	return nil
}

func seedValidationRules(ctx context.Context, repo ports.RuleRepository, rules []models.ValidationRule) error {
	// System rules have a nil org id, so listing with any org id returns
	// them. The empty org id never matches an org-scoped row.
	existing := make(map[string]bool)
	for _, c := range constants.AllCategories() {
		listed, err := repo.ListForOrganization(ctx, "", c)
		if err != nil {
			return fmt.Errorf("failed to list validation rules: %w", err)
		}
		for _, r := range listed {
			existing[r.ID] = true
		}
	}

	created := 0
	for i := range rules {
		rule := rules[i]
		if existing[rule.ID] {
			continue
		}
		if err := repo.Create(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed validation rule %s: %w", rule.ID, err)
		}
		created++
	}
	log.Printf("   ✅ Ensure %d system validation rules (%d created)", len(rules), created)
	return nil
}

func seedAccounts(ctx context.Context, repo ports.AccountRepository, data systemData) error {
	for _, a := range data.Accounts {
		existing, err := repo.GetByEmail(ctx, a.Email)
		if err != nil {
			return fmt.Errorf("failed to check account %s: %w", a.Email, err)
		}
		if existing != nil {
			continue
		}

		hash, err := auth.HashPassword(a.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		account := &models.Account{
			ID:             a.ID,
			OrganizationID: a.OrganizationID,
			Email:          a.Email,
			Name:           a.Name,
			PasswordHash:   hash,
			IsAdmin:        a.IsAdmin,
		}
		if err := repo.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", a.Email, err)
		}
		log.Printf("   ✅ Seeded account %s", a.Email)
	}
	return nil
}
