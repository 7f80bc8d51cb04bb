package models

import (
	"time"

	"github.com/panelops/backend/pkg/constants"
)

// Organization is a tenant of the engine
type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CreatedDate      time.Time `json:"created_date"`
	LastModifiedDate time.Time `json:"last_modified_date"`
}

// Account is a login within an organization
type Account struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	IsAdmin          bool      `json:"is_admin"`
	CreatedDate      time.Time `json:"created_date"`
	LastModifiedDate time.Time `json:"last_modified_date"`
}

// ValidationRule is an expression evaluated against a resolved operation.
// System rules (nil OrganizationID) apply to every organization; org rules
// apply on top. A failing rule rejects the operation with its message.
type ValidationRule struct {
	ID               string                      `json:"id"`
	OrganizationID   *string                     `json:"organization_id,omitempty"`
	Category         constants.OperationCategory `json:"category"`
	Name             string                      `json:"name"`
	Condition        string                      `json:"condition"`
	ErrorMessage     string                      `json:"error_message"`
	Active           bool                        `json:"active"`
	CreatedDate      time.Time                   `json:"created_date"`
	LastModifiedDate time.Time                   `json:"last_modified_date"`
}

// IsSystem reports whether the rule is a system default
func (r *ValidationRule) IsSystem() bool {
	return r.OrganizationID == nil
}
