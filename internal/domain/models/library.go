package models

import (
	"time"

	"github.com/panelops/backend/pkg/constants"
)

// GrooveSpec is the payload of a groove profile library entry
type GrooveSpec struct {
	WidthMm  float64   `json:"width_mm"`
	DepthMm  float64   `json:"depth_mm"`
	OffsetMm float64   `json:"offset_mm"`
	Edge     *EdgeSide `json:"edge,omitempty"`
}

// DrillSpec is the payload of a hole pattern library entry
type DrillSpec struct {
	Holes     []HoleDef `json:"holes"`
	RefEdge   EdgeSide  `json:"ref_edge"`
	RefCorner string    `json:"ref_corner"`
	Brand     *string   `json:"brand,omitempty"`
	Model     *string   `json:"model,omitempty"`
}

// CNCSpec is the payload of a routing profile library entry
type CNCSpec struct {
	OpType string                 `json:"op_type"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// LibraryEntry is a reusable, named operation definition. Entries with a
// nil OrganizationID are system defaults shared by every organization and
// are read-only through the public API.
type LibraryEntry struct {
	ID               string                      `json:"id"`
	OrganizationID   *string                     `json:"organization_id,omitempty"`
	Category         constants.OperationCategory `json:"category"`
	Code             string                      `json:"code"`
	Name             string                      `json:"name"`
	Kind             string                      `json:"kind"`
	IsActive         bool                        `json:"is_active"`
	UsageCount       int64                       `json:"usage_count"`
	Groove           *GrooveSpec                 `json:"groove,omitempty"`
	Drill            *DrillSpec                  `json:"drill,omitempty"`
	CNC              *CNCSpec                    `json:"cnc,omitempty"`
	CreatedDate      time.Time                   `json:"created_date"`
	LastModifiedDate time.Time                   `json:"last_modified_date"`
}

// IsSystem reports whether the entry is a system-scope default
func (e *LibraryEntry) IsSystem() bool {
	return e.OrganizationID == nil
}

// ToOperation converts a library entry into the canonical operation shape.
// This is the single adapter between stored definitions and the tagged
// union consumed downstream.
func (e *LibraryEntry) ToOperation() *Operation {
	op := &Operation{Category: e.Category}
	switch e.Category {
	case constants.CategoryGroove:
		if e.Groove != nil {
			op.Groove = &GrooveOperation{
				Code:     e.Code,
				Name:     e.Name,
				WidthMm:  e.Groove.WidthMm,
				DepthMm:  e.Groove.DepthMm,
				OffsetMm: e.Groove.OffsetMm,
				Edge:     e.Groove.Edge,
			}
		}
	case constants.CategoryDrilling:
		if e.Drill != nil {
			op.Drilling = &DrillingOperation{
				Code:      e.Code,
				Name:      e.Name,
				Holes:     e.Drill.Holes,
				RefEdge:   e.Drill.RefEdge,
				RefCorner: e.Drill.RefCorner,
				Brand:     e.Drill.Brand,
				Model:     e.Drill.Model,
			}
		}
	case constants.CategoryCNC:
		if e.CNC != nil {
			op.CNC = &CNCOperation{
				Code:   e.Code,
				Name:   e.Name,
				OpType: e.CNC.OpType,
				Params: e.CNC.Params,
			}
		}
	}
	return op
}

// OperationType is a dropdown-level classification within a category.
// A nil OrganizationID marks a system-provided type; an org-scoped type
// with the same (category, code) shadows the system one for that org only.
type OperationType struct {
	ID               string                      `json:"id"`
	OrganizationID   *string                     `json:"organization_id,omitempty"`
	Category         constants.OperationCategory `json:"category"`
	Code             string                      `json:"code"`
	Label            string                      `json:"label"`
	SortOrder        int                         `json:"sort_order"`
	CreatedDate      time.Time                   `json:"created_date"`
	LastModifiedDate time.Time                   `json:"last_modified_date"`
}

// IsSystem reports whether the type is a system-provided default
func (t *OperationType) IsSystem() bool {
	return t.OrganizationID == nil
}
