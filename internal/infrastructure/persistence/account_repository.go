package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// AccountRepository persists login accounts.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = "id, organization_id, email, name, password_hash, is_admin, created_date, last_modified_date"

// GetByEmail returns the account with the given email, or nil if absent
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = ?", accountColumns, constants.TableAccount)

	var account models.Account
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.OrganizationID, &account.Email, &account.Name,
		&account.PasswordHash, &account.IsAdmin, &account.CreatedDate, &account.LastModifiedDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		constants.TableAccount, accountColumns)

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.OrganizationID, account.Email, account.Name,
		account.PasswordHash, account.IsAdmin, now, now)
	return err
}
