package services

import (
	"context"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
	"github.com/panelops/backend/pkg/utils"
)

// OperationTypeService manages the dropdown-level operation types. An
// org-scoped type with the same (category, code) as a system type shadows
// it for that organization only.
type OperationTypeService struct {
	repo ports.OperationTypeRepository
}

// NewOperationTypeService creates a new OperationTypeService
func NewOperationTypeService(repo ports.OperationTypeRepository) *OperationTypeService {
	return &OperationTypeService{repo: repo}
}

// List returns the effective types for an organization: org types plus
// the system types they do not shadow, in display order
func (s *OperationTypeService) List(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.OperationType, error) {
	if !constants.IsValidCategory(string(category)) {
		return nil, errors.NewValidationError("category", "unknown category '"+string(category)+"'")
	}

	all, err := s.repo.ListForOrganization(ctx, organizationID, category)
	if err != nil {
		return nil, errors.NewStorageError("operation types list", err)
	}

	// Org rows come first; a later system row with an already-seen code
	// is shadowed and dropped.
	seen := make(map[string]bool, len(all))
	effective := make([]*models.OperationType, 0, len(all))
	for _, opType := range all {
		if seen[opType.Code] {
			continue
		}
		seen[opType.Code] = true
		effective = append(effective, opType)
	}
	return effective, nil
}

// FindByCode returns the effective type for a code, honoring shadowing.
// A nil result without an error means the code is unknown.
func (s *OperationTypeService) FindByCode(ctx context.Context, organizationID string, category constants.OperationCategory, code string) (*models.OperationType, error) {
	effective, err := s.List(ctx, organizationID, category)
	if err != nil {
		return nil, err
	}
	for _, opType := range effective {
		if opType.Code == code {
			return opType, nil
		}
	}
	return nil, nil
}

// Create inserts an organization-scoped type
func (s *OperationTypeService) Create(ctx context.Context, organizationID string, opType *models.OperationType) (*models.OperationType, error) {
	if !constants.IsValidCategory(string(opType.Category)) {
		return nil, errors.NewValidationError("category", "unknown category '"+string(opType.Category)+"'")
	}
	if opType.Code == "" {
		return nil, errors.NewValidationError("code", "is required")
	}
	if opType.Label == "" {
		return nil, errors.NewValidationError("label", "is required")
	}

	existing, err := s.repo.ListForOrganization(ctx, organizationID, opType.Category)
	if err != nil {
		return nil, errors.NewStorageError("operation types list", err)
	}
	for _, t := range existing {
		if !t.IsSystem() && t.Code == opType.Code {
			return nil, errors.NewConflictError("operation type", "code", opType.Code)
		}
	}

	opType.ID = utils.GenerateID()
	opType.OrganizationID = &organizationID
	if err := s.repo.Create(ctx, opType); err != nil {
		return nil, errors.NewStorageError("operation type create", err)
	}
	return opType, nil
}

// Update rewrites an organization-scoped type. System types are immutable.
func (s *OperationTypeService) Update(ctx context.Context, organizationID, id string, opType *models.OperationType) (*models.OperationType, error) {
	current, err := s.getOwned(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	opType.ID = id
	opType.OrganizationID = current.OrganizationID
	opType.Category = current.Category
	if opType.Code == "" {
		return nil, errors.NewValidationError("code", "is required")
	}
	if opType.Label == "" {
		return nil, errors.NewValidationError("label", "is required")
	}

	if err := s.repo.Update(ctx, opType); err != nil {
		return nil, errors.NewStorageError("operation type update", err)
	}
	return opType, nil
}

// Delete removes an organization-scoped type. System types are immutable.
func (s *OperationTypeService) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.getOwned(ctx, organizationID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewStorageError("operation type delete", err)
	}
	return nil
}

func (s *OperationTypeService) getOwned(ctx context.Context, organizationID, id string) (*models.OperationType, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError("operation type get", err)
	}
	if current == nil {
		return nil, errors.NewNotFoundError("operation type", id)
	}
	if current.IsSystem() {
		return nil, errors.NewImmutableDefaultError("operation type", id)
	}
	if *current.OrganizationID != organizationID {
		return nil, errors.NewNotFoundError("operation type", id)
	}
	return current, nil
}
