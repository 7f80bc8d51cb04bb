package services

import (
	"context"
	"sync"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
	"github.com/panelops/backend/pkg/utils"
)

// librarySnapshotTTL bounds how stale a cached library view may get
const librarySnapshotTTL = 5 * time.Minute

type librarySnapshot struct {
	entries   []*models.LibraryEntry
	fetchedAt time.Time
}

type snapshotKey struct {
	organizationID string
	category       constants.OperationCategory
}

// LibraryService manages reusable operation definitions. Reads go through
// a per-organization snapshot cache with a short TTL; concurrent refreshes
// race harmlessly (last writer wins). Writes invalidate the owning
// organization's snapshot.
type LibraryService struct {
	repo ports.LibraryRepository

	mu        sync.RWMutex
	snapshots map[snapshotKey]*librarySnapshot

	// now is swappable so tests can control TTL expiry
	now func() time.Time
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(repo ports.LibraryRepository) *LibraryService {
	return &LibraryService{
		repo:      repo,
		snapshots: make(map[snapshotKey]*librarySnapshot),
		now:       time.Now,
	}
}

// List returns the active entries visible to an organization for one
// category: its own entries first, then system defaults. Served from the
// snapshot cache when fresh.
func (s *LibraryService) List(ctx context.Context, organizationID string, category constants.OperationCategory) ([]*models.LibraryEntry, error) {
	if !constants.IsValidCategory(string(category)) {
		return nil, errors.NewValidationError("category", "unknown category '"+string(category)+"'")
	}

	key := snapshotKey{organizationID: organizationID, category: category}

	s.mu.RLock()
	snap, ok := s.snapshots[key]
	s.mu.RUnlock()
	if ok && s.now().Sub(snap.fetchedAt) < librarySnapshotTTL {
		return snap.entries, nil
	}

	entries, err := s.repo.ListForOrganization(ctx, organizationID, category)
	if err != nil {
		return nil, errors.NewStorageError("library list", err)
	}

	s.mu.Lock()
	s.snapshots[key] = &librarySnapshot{entries: entries, fetchedAt: s.now()}
	s.mu.Unlock()

	return entries, nil
}

// FindByCode returns the first visible entry whose canonical code equals
// the normalized input, or nil. Organization entries shadow system ones
// through the list ordering.
func (s *LibraryService) FindByCode(ctx context.Context, organizationID string, category constants.OperationCategory, code string) (*models.LibraryEntry, error) {
	entries, err := s.List(ctx, organizationID, category)
	if err != nil {
		return nil, err
	}
	normalized := models.NormalizeNotation(code)
	for _, entry := range entries {
		if models.NormalizeNotation(entry.Code) == normalized {
			return entry, nil
		}
	}
	return nil, nil
}

// GetByID returns an entry by id or a NotFoundError
func (s *LibraryService) GetByID(ctx context.Context, id string) (*models.LibraryEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError("library get", err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("library entry", id)
	}
	return entry, nil
}

// Create inserts an organization-scoped entry. The organization id comes
// from the caller's session; entries can never be created system-scoped
// through this path.
func (s *LibraryService) Create(ctx context.Context, organizationID string, entry *models.LibraryEntry) (*models.LibraryEntry, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	existing, err := s.FindByCode(ctx, organizationID, entry.Category, entry.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsSystem() {
		return nil, errors.NewConflictError("library entry", "code", entry.Code)
	}

	entry.ID = utils.GenerateID()
	entry.OrganizationID = &organizationID
	entry.Code = models.NormalizeNotation(entry.Code)
	entry.UsageCount = 0

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, errors.NewStorageError("library create", err)
	}
	s.invalidate(organizationID, entry.Category)
	return entry, nil
}

// Update rewrites an organization-scoped entry. System defaults are
// immutable.
func (s *LibraryService) Update(ctx context.Context, organizationID, id string, entry *models.LibraryEntry) (*models.LibraryEntry, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsSystem() {
		return nil, errors.NewImmutableDefaultError("library entry", id)
	}
	if *current.OrganizationID != organizationID {
		return nil, errors.NewNotFoundError("library entry", id)
	}

	entry.ID = id
	entry.OrganizationID = current.OrganizationID
	entry.Category = current.Category
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	entry.Code = models.NormalizeNotation(entry.Code)

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, errors.NewStorageError("library update", err)
	}
	s.invalidate(organizationID, current.Category)
	return entry, nil
}

// Delete removes an organization-scoped entry. System defaults are
// immutable.
func (s *LibraryService) Delete(ctx context.Context, organizationID, id string) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSystem() {
		return errors.NewImmutableDefaultError("library entry", id)
	}
	if *current.OrganizationID != organizationID {
		return errors.NewNotFoundError("library entry", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewStorageError("library delete", err)
	}
	s.invalidate(organizationID, current.Category)
	return nil
}

// IncrementUsage bumps an entry's usage counter. The cached snapshot is
// left alone: counters are display data and the TTL bounds the staleness.
func (s *LibraryService) IncrementUsage(ctx context.Context, id string) error {
	if err := s.repo.IncrementUsage(ctx, id); err != nil {
		return errors.NewStorageError("library usage increment", err)
	}
	return nil
}

func (s *LibraryService) invalidate(organizationID string, category constants.OperationCategory) {
	s.mu.Lock()
	delete(s.snapshots, snapshotKey{organizationID: organizationID, category: category})
	s.mu.Unlock()
}

// validateEntry enforces the structural invariants of an entry and its
// category payload
func validateEntry(entry *models.LibraryEntry) error {
	if !constants.IsValidCategory(string(entry.Category)) {
		return errors.NewValidationError("category", "unknown category '"+string(entry.Category)+"'")
	}
	if models.NormalizeNotation(entry.Code) == "" {
		return errors.NewValidationError("code", "is required")
	}
	if entry.Name == "" {
		return errors.NewValidationError("name", "is required")
	}

	switch entry.Category {
	case constants.CategoryGroove:
		if entry.Groove == nil {
			return errors.NewValidationError("groove", "groove entries require a groove spec")
		}
		if entry.Groove.WidthMm <= 0 || entry.Groove.DepthMm <= 0 {
			return errors.NewValidationError("groove", "width and depth must be positive")
		}
		if entry.Groove.OffsetMm < 0 {
			return errors.NewValidationError("groove", "offset cannot be negative")
		}
	case constants.CategoryDrilling:
		if entry.Drill == nil || len(entry.Drill.Holes) == 0 {
			return errors.NewValidationError("drill", "drilling entries require at least one hole")
		}
		for _, h := range entry.Drill.Holes {
			if h.DiameterMm <= 0 {
				return errors.NewValidationError("drill", "hole diameter must be positive")
			}
		}
	case constants.CategoryCNC:
		if entry.CNC == nil || entry.CNC.OpType == "" {
			return errors.NewValidationError("cnc", "cnc entries require an op type")
		}
	}
	return nil
}
