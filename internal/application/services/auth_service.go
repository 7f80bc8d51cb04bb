package services

import (
	"context"
	"log"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/auth"
	"github.com/panelops/backend/pkg/errors"
)

// AuthService handles account login
type AuthService struct {
	accounts ports.AccountRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts ports.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

// Login verifies credentials and returns a signed session token. The
// failure reason is never differentiated for the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.NewStorageError("account lookup", err)
	}
	if account == nil {
		return "", nil, errors.NewUnauthorizedError("invalid credentials")
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		log.Printf("⚠️ Failed login attempt for %s", email)
		return "", nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, err := auth.GenerateToken(auth.Session{
		AccountID:      account.ID,
		OrganizationID: account.OrganizationID,
		Email:          account.Email,
		Name:           account.Name,
		IsAdmin:        account.IsAdmin,
	})
	if err != nil {
		return "", nil, errors.NewStorageError("token generation", err)
	}
	return token, account, nil
}
