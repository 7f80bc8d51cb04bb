package models

import (
	"github.com/panelops/backend/pkg/constants"
)

// EdgeSide identifies one of the four edges of a rectangular panel:
// two length edges (L1, L2) and two width edges (W1, W2).
type EdgeSide string

const (
	EdgeL1 EdgeSide = "L1"
	EdgeL2 EdgeSide = "L2"
	EdgeW1 EdgeSide = "W1"
	EdgeW2 EdgeSide = "W2"
)

// AllEdgeSides returns the four edge sides in canonical order
func AllEdgeSides() []EdgeSide {
	return []EdgeSide{EdgeL1, EdgeL2, EdgeW1, EdgeW2}
}

// IsValidEdgeSide checks a raw string against the closed edge set
func IsValidEdgeSide(s string) bool {
	switch EdgeSide(s) {
	case EdgeL1, EdgeL2, EdgeW1, EdgeW2:
		return true
	}
	return false
}

// EdgeSet is a duplicate-free set of edge sides held in canonical order
// (L1, L2, W1, W2). An empty set is valid and means "no banding".
type EdgeSet []EdgeSide

// NormalizeEdges builds an EdgeSet from arbitrary sides, collapsing
// duplicates and fixing the order
func NormalizeEdges(sides ...EdgeSide) EdgeSet {
	present := make(map[EdgeSide]bool, len(sides))
	for _, s := range sides {
		present[s] = true
	}
	set := make(EdgeSet, 0, 4)
	for _, s := range AllEdgeSides() {
		if present[s] {
			set = append(set, s)
		}
	}
	return set
}

// Has reports whether the set contains the given side
func (s EdgeSet) Has(side EdgeSide) bool {
	for _, e := range s {
		if e == side {
			return true
		}
	}
	return false
}

// Add returns a set containing the given side (no-op if already present)
func (s EdgeSet) Add(side EdgeSide) EdgeSet {
	if s.Has(side) {
		return s
	}
	return NormalizeEdges(append(s, side)...)
}

// Equal reports whether two sets contain the same sides
func (s EdgeSet) Equal(other EdgeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for _, e := range s {
		if !other.Has(e) {
			return false
		}
	}
	return true
}

// EdgeBandOperation is the canonical edge banding record. The edge set is
// a subset of the four sides; empty means no banding.
type EdgeBandOperation struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Edges       EdgeSet  `json:"edges"`
	MaterialRef *string  `json:"material_ref,omitempty"`
	ThicknessMm *float64 `json:"thickness_mm,omitempty"`
}

// GrooveOperation is the canonical groove record. Width, depth and offset
// are millimeters and must be positive.
type GrooveOperation struct {
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	WidthMm         float64   `json:"width_mm"`
	DepthMm         float64   `json:"depth_mm"`
	OffsetMm        float64   `json:"offset_mm"`
	Edge            *EdgeSide `json:"edge,omitempty"`
	OperationTypeID *string   `json:"operation_type_id,omitempty"`
}

// HoleDef is a single hole position within a drilling pattern. X/Y offsets
// are measured from the reference edge/corner of the pattern.
type HoleDef struct {
	XMm        float64  `json:"x_mm"`
	YMm        float64  `json:"y_mm"`
	DiameterMm float64  `json:"diameter_mm"`
	DepthMm    *float64 `json:"depth_mm,omitempty"`
	Through    bool     `json:"through"`
}

// DrillingOperation is the canonical drilled-hole-pattern record
type DrillingOperation struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Holes     []HoleDef `json:"holes"`
	RefEdge   EdgeSide  `json:"ref_edge"`
	RefCorner string    `json:"ref_corner"`
	Brand     *string   `json:"brand,omitempty"`
	Model     *string   `json:"model,omitempty"`
}

// CNCOperation is the canonical routing record. Params is a free-form bag
// whose shape depends on OpType (pocket, cutout, chamfer, ...).
type CNCOperation struct {
	Code   string                 `json:"code"`
	Name   string                 `json:"name"`
	OpType string                 `json:"op_type"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Operation is the closed tagged union of resolved panel operations.
// Exactly one variant is non-nil, selected by Category. Producers that
// emit looser shapes are normalized into this struct at the boundary.
type Operation struct {
	Category constants.OperationCategory `json:"category"`
	EdgeBand *EdgeBandOperation          `json:"edge_band,omitempty"`
	Groove   *GrooveOperation            `json:"groove,omitempty"`
	Drilling *DrillingOperation          `json:"drilling,omitempty"`
	CNC      *CNCOperation               `json:"cnc,omitempty"`
}

// Code returns the canonical code of whichever variant is populated
func (op *Operation) Code() string {
	switch {
	case op.EdgeBand != nil:
		return op.EdgeBand.Code
	case op.Groove != nil:
		return op.Groove.Code
	case op.Drilling != nil:
		return op.Drilling.Code
	case op.CNC != nil:
		return op.CNC.Code
	}
	return ""
}
