package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// In-memory port fakes honoring the repository contracts, including the
// org-first, oldest-first list ordering the matcher depends on.

type fakeLibraryRepo struct {
	mu      sync.Mutex
	entries map[string]*models.LibraryEntry
	usage   map[string]int
}

func newFakeLibraryRepo(entries ...*models.LibraryEntry) *fakeLibraryRepo {
	r := &fakeLibraryRepo{
		entries: make(map[string]*models.LibraryEntry),
		usage:   make(map[string]int),
	}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

func (r *fakeLibraryRepo) ListForOrganization(_ context.Context, organizationID string, category constants.OperationCategory) ([]*models.LibraryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	visible := make([]*models.LibraryEntry, 0)
	for _, e := range r.entries {
		if e.Category != category || !e.IsActive {
			continue
		}
		if e.IsSystem() || *e.OrganizationID == organizationID {
			visible = append(visible, e)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.IsSystem() != b.IsSystem() {
			return !a.IsSystem()
		}
		if !a.CreatedDate.Equal(b.CreatedDate) {
			return a.CreatedDate.Before(b.CreatedDate)
		}
		return a.ID < b.ID
	})
	return visible, nil
}

func (r *fakeLibraryRepo) GetByID(_ context.Context, id string) (*models.LibraryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id], nil
}

func (r *fakeLibraryRepo) Create(_ context.Context, entry *models.LibraryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeLibraryRepo) Update(_ context.Context, entry *models.LibraryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return sql.ErrNoRows
	}
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeLibraryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeLibraryRepo) IncrementUsage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return sql.ErrNoRows
	}
	r.usage[id]++
	return nil
}

func (r *fakeLibraryRepo) usageCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usage[id]
}

type fakeDialectRepo struct {
	mu      sync.Mutex
	configs map[string]*models.DialectConfig
}

func newFakeDialectRepo() *fakeDialectRepo {
	return &fakeDialectRepo{configs: make(map[string]*models.DialectConfig)}
}

func (r *fakeDialectRepo) Get(_ context.Context, organizationID string) (*models.DialectConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configs[organizationID], nil
}

func (r *fakeDialectRepo) Upsert(_ context.Context, config *models.DialectConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[config.OrganizationID] = config
	return nil
}

func (r *fakeDialectRepo) AddAlias(_ context.Context, organizationID string, category constants.OperationCategory, external, canonical string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	config := r.configs[organizationID]
	if config == nil {
		config = models.NewDialectConfig(organizationID)
		config.AutoLearn = true
		r.configs[organizationID] = config
	}
	config.Aliases[category][models.NormalizeNotation(external)] = canonical
	return nil
}

func (r *fakeDialectRepo) RemoveAlias(_ context.Context, organizationID string, category constants.OperationCategory, external string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if config := r.configs[organizationID]; config != nil {
		delete(config.Aliases[category], models.NormalizeNotation(external))
	}
	return nil
}

func (r *fakeDialectRepo) UpdateFlags(_ context.Context, organizationID string, useAIFallback, autoLearn bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	config := r.configs[organizationID]
	if config == nil {
		config = models.NewDialectConfig(organizationID)
		r.configs[organizationID] = config
	}
	config.UseAIFallback = useAIFallback
	config.AutoLearn = autoLearn
	return nil
}

func (r *fakeDialectRepo) alias(organizationID string, category constants.OperationCategory, external string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	config := r.configs[organizationID]
	if config == nil {
		return "", false
	}
	canonical, ok := config.Aliases[category][models.NormalizeNotation(external)]
	return canonical, ok
}

type fakeOpTypeRepo struct {
	mu    sync.Mutex
	types map[string]*models.OperationType
}

func newFakeOpTypeRepo(types ...*models.OperationType) *fakeOpTypeRepo {
	r := &fakeOpTypeRepo{types: make(map[string]*models.OperationType)}
	for _, t := range types {
		r.types[t.ID] = t
	}
	return r
}

func (r *fakeOpTypeRepo) ListForOrganization(_ context.Context, organizationID string, category constants.OperationCategory) ([]*models.OperationType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	visible := make([]*models.OperationType, 0)
	for _, t := range r.types {
		if t.Category != category {
			continue
		}
		if t.IsSystem() || *t.OrganizationID == organizationID {
			visible = append(visible, t)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.IsSystem() != b.IsSystem() {
			return !a.IsSystem()
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Code < b.Code
	})
	return visible, nil
}

func (r *fakeOpTypeRepo) GetByID(_ context.Context, id string) (*models.OperationType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.types[id], nil
}

func (r *fakeOpTypeRepo) Create(_ context.Context, opType *models.OperationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[opType.ID] = opType
	return nil
}

func (r *fakeOpTypeRepo) Update(_ context.Context, opType *models.OperationType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[opType.ID]; !ok {
		return sql.ErrNoRows
	}
	r.types[opType.ID] = opType
	return nil
}

func (r *fakeOpTypeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.types, id)
	return nil
}

type fakeRuleRepo struct {
	rules []*models.ValidationRule
}

func (r *fakeRuleRepo) ListForOrganization(_ context.Context, organizationID string, category constants.OperationCategory) ([]*models.ValidationRule, error) {
	matched := make([]*models.ValidationRule, 0)
	for _, rule := range r.rules {
		if rule.Category != category || !rule.Active {
			continue
		}
		if rule.IsSystem() || *rule.OrganizationID == organizationID {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *models.ValidationRule) error {
	r.rules = append(r.rules, rule)
	return nil
}

type fakeInterpreter struct {
	op    *models.Operation
	err   error
	calls int
}

func (f *fakeInterpreter) Interpret(_ context.Context, _ constants.OperationCategory, _ string) (*models.Operation, error) {
	f.calls++
	return f.op, f.err
}
