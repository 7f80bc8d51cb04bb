package services

import (
	"github.com/panelops/backend/internal/domain/ports"
	"github.com/panelops/backend/internal/infrastructure/database"
	"github.com/panelops/backend/internal/infrastructure/persistence"
	"github.com/panelops/backend/pkg/expression"
)

// ServiceManager orchestrates all services with dependency injection
type ServiceManager struct {
	db *database.TiDBConnection

	Library    *LibraryService
	Dialect    *DialectService
	Matcher    *Matcher
	Validation *ValidationService
	Resolution *ResolutionService
	OpTypes    *OperationTypeService
	Auth       *AuthService

	// Repos is exposed for the bootstrap seeding step
	Repos Repositories
}

// Repositories bundles the persistence ports the services are built on
type Repositories struct {
	Library  ports.LibraryRepository
	Dialect  ports.DialectRepository
	OpTypes  ports.OperationTypeRepository
	Rules    ports.RuleRepository
	Accounts ports.AccountRepository
}

// NewServiceManager creates a new service manager with all dependencies
// wired. The interpreter may be nil when no AI fallback is configured.
func NewServiceManager(db *database.TiDBConnection, interpreter ports.Interpreter) *ServiceManager {
	sm := &ServiceManager{
		db: db,
	}

	sm.Repos = Repositories{
		Library:  persistence.NewLibraryRepository(db.DB()),
		Dialect:  persistence.NewDialectRepository(db.DB()),
		OpTypes:  persistence.NewOperationTypeRepository(db.DB()),
		Rules:    persistence.NewRuleRepository(db.DB()),
		Accounts: persistence.NewAccountRepository(db.DB()),
	}

	// Initialize services in dependency order
	sm.Library = NewLibraryService(sm.Repos.Library)
	sm.Dialect = NewDialectService(sm.Repos.Dialect)
	sm.Matcher = NewMatcher()
	sm.Validation = NewValidationService(expression.NewEngine(), sm.Repos.Rules)
	sm.Resolution = NewResolutionService(sm.Library, sm.Dialect, sm.Matcher, sm.Validation, interpreter)
	sm.OpTypes = NewOperationTypeService(sm.Repos.OpTypes)
	sm.Auth = NewAuthService(sm.Repos.Accounts)

	return sm
}
