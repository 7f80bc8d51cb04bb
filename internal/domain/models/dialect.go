package models

import (
	"strings"
	"time"

	"github.com/panelops/backend/pkg/constants"
)

// AliasMap maps a normalized external notation to a canonical code
type AliasMap map[string]string

// DialectConfig holds one organization's notation dialect: per-category
// alias tables plus behavioral flags. Created lazily with defaults on
// first mutation; mutated only through add/remove-alias operations.
type DialectConfig struct {
	OrganizationID   string                                   `json:"organization_id"`
	Aliases          map[constants.OperationCategory]AliasMap `json:"aliases"`
	UseAIFallback    bool                                     `json:"use_ai_fallback"`
	AutoLearn        bool                                     `json:"auto_learn"`
	CreatedDate      time.Time                                `json:"created_date"`
	LastModifiedDate time.Time                                `json:"last_modified_date"`
}

// NewDialectConfig creates an empty dialect config for an organization
func NewDialectConfig(organizationID string) *DialectConfig {
	aliases := make(map[constants.OperationCategory]AliasMap, 4)
	for _, c := range constants.AllCategories() {
		aliases[c] = AliasMap{}
	}
	return &DialectConfig{
		OrganizationID: organizationID,
		Aliases:        aliases,
	}
}

// Lookup resolves an external notation against the category's alias map.
// Input is normalized the same way aliases are stored (trim + uppercase).
func (c *DialectConfig) Lookup(category constants.OperationCategory, external string) (string, bool) {
	if c == nil || c.Aliases == nil {
		return "", false
	}
	m, ok := c.Aliases[category]
	if !ok {
		return "", false
	}
	canonical, ok := m[NormalizeNotation(external)]
	return canonical, ok
}

// NormalizeNotation trims and uppercases a raw notation string. Every
// alias key, parser input and matcher input passes through this.
func NormalizeNotation(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
