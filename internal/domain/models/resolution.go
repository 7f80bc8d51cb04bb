package models

import (
	"github.com/panelops/backend/pkg/constants"
)

// ResolutionStatus is the terminal state of a pipeline run
type ResolutionStatus string

const (
	StatusResolved   ResolutionStatus = "resolved"
	StatusUnresolved ResolutionStatus = "unresolved"
)

// Resolution is the outcome of resolving one raw notation string.
// An unresolved result is a normal outcome, not an error: it carries the
// original notation for the caller to surface for manual resolution.
type Resolution struct {
	Status      ResolutionStatus            `json:"status"`
	Source      string                      `json:"source,omitempty"`
	Category    constants.OperationCategory `json:"category"`
	RawNotation string                      `json:"raw_notation"`
	Operation   *Operation                  `json:"operation,omitempty"`
	Entry       *LibraryEntry               `json:"entry,omitempty"`
	Confidence  float64                     `json:"confidence,omitempty"`
}

// Resolved reports whether the pipeline produced an operation
func (r *Resolution) Resolved() bool {
	return r.Status == StatusResolved
}

// Unresolved builds the terminal no-match result for a notation
func Unresolved(category constants.OperationCategory, rawNotation string) *Resolution {
	return &Resolution{
		Status:      StatusUnresolved,
		Category:    category,
		RawNotation: rawNotation,
	}
}

// LearnEvent is a suggested dialect mutation emitted by the resolution
// pipeline. The pipeline itself never writes; a single writer applies
// these after resolution succeeds.
type LearnEvent struct {
	OrganizationID string                      `json:"organization_id"`
	Category       constants.OperationCategory `json:"category"`
	External       string                      `json:"external"`
	Canonical      string                      `json:"canonical"`
	EntryID        string                      `json:"entry_id,omitempty"`
}
