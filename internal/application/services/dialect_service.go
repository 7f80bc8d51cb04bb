package services

import (
	"context"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
)

// DialectService manages per-organization notation dialects. An
// organization without a stored config gets the default view (empty alias
// maps, auto-learn on, AI fallback off); the row itself is created lazily
// on first mutation.
type DialectService struct {
	repo ports.DialectRepository
}

// NewDialectService creates a new DialectService
func NewDialectService(repo ports.DialectRepository) *DialectService {
	return &DialectService{repo: repo}
}

// GetConfig returns the organization's dialect config, falling back to
// the in-memory default view when none is stored yet
func (s *DialectService) GetConfig(ctx context.Context, organizationID string) (*models.DialectConfig, error) {
	config, err := s.repo.Get(ctx, organizationID)
	if err != nil {
		return nil, errors.NewStorageError("dialect get", err)
	}
	if config == nil {
		config = models.NewDialectConfig(organizationID)
		config.AutoLearn = true
	}
	return config, nil
}

// Translate resolves an external notation through the organization's
// alias map. Returns the canonical code and whether an alias existed.
// An unknown organization simply has no aliases.
func (s *DialectService) Translate(ctx context.Context, organizationID string, category constants.OperationCategory, external string) (string, bool, error) {
	config, err := s.GetConfig(ctx, organizationID)
	if err != nil {
		return "", false, err
	}
	canonical, ok := config.Lookup(category, external)
	return canonical, ok, nil
}

// AddAlias records an external-to-canonical mapping, overwriting any
// previous mapping for the same external notation
func (s *DialectService) AddAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external, canonical string) error {
	if !constants.IsValidCategory(string(category)) {
		return errors.NewValidationError("category", "unknown category '"+string(category)+"'")
	}
	if models.NormalizeNotation(external) == "" {
		return errors.NewValidationError("external", "is required")
	}
	if models.NormalizeNotation(canonical) == "" {
		return errors.NewValidationError("canonical", "is required")
	}

	if err := s.repo.AddAlias(ctx, organizationID, category, external, models.NormalizeNotation(canonical)); err != nil {
		return errors.NewStorageError("dialect alias add", err)
	}
	return nil
}

// RemoveAlias deletes a mapping. Removing a mapping that does not exist
// is a no-op.
func (s *DialectService) RemoveAlias(ctx context.Context, organizationID string, category constants.OperationCategory, external string) error {
	if !constants.IsValidCategory(string(category)) {
		return errors.NewValidationError("category", "unknown category '"+string(category)+"'")
	}
	if err := s.repo.RemoveAlias(ctx, organizationID, category, external); err != nil {
		return errors.NewStorageError("dialect alias remove", err)
	}
	return nil
}

// UpdateFlags sets the organization's AI-fallback and auto-learn flags
func (s *DialectService) UpdateFlags(ctx context.Context, organizationID string, useAIFallback, autoLearn bool) error {
	if err := s.repo.UpdateFlags(ctx, organizationID, useAIFallback, autoLearn); err != nil {
		return errors.NewStorageError("dialect flags update", err)
	}
	return nil
}
