package shortcode

import (
	"testing"

	"github.com/panelops/backend/internal/domain/models"
)

func TestParseGroove(t *testing.T) {
	tests := []struct {
		code   string
		width  float64
		offset float64
		edge   *models.EdgeSide
		match  bool
	}{
		{"G4-10", 4, 10, nil, true},
		{"GL-6-10", 6, 10, edgePtr(models.EdgeL1), true},
		{"GW-8-12", 8, 12, edgePtr(models.EdgeW1), true},
		{"GL2-6-10", 6, 10, edgePtr(models.EdgeL2), true},
		{"G-ALL-4-10", 4, 10, nil, true}, // unknown leading token ignored
		{"4x10", 4, 10, nil, true},
		{"4X10", 4, 10, nil, true},
		{"4-10", 4, 10, nil, true},
		{"6.5-9.5", 6.5, 9.5, nil, true},
		{"G4", 0, 0, nil, false},
		{"G0-10", 0, 0, nil, false}, // non-positive width
		{"4x0", 0, 0, nil, false},
		{"GROOVE", 0, 0, nil, false},
		{"", 0, 0, nil, false},
	}

	for _, tt := range tests {
		got, ok := ParseGroove(tt.code)
		if ok != tt.match {
			t.Errorf("ParseGroove(%q) match = %v, want %v", tt.code, ok, tt.match)
			continue
		}
		if !tt.match {
			continue
		}
		if got.WidthMm != tt.width || got.OffsetMm != tt.offset {
			t.Errorf("ParseGroove(%q) = %v/%v, want %v/%v", tt.code, got.WidthMm, got.OffsetMm, tt.width, tt.offset)
		}
		switch {
		case tt.edge == nil && got.Edge != nil:
			t.Errorf("ParseGroove(%q) edge = %v, want unset", tt.code, *got.Edge)
		case tt.edge != nil && (got.Edge == nil || *got.Edge != *tt.edge):
			t.Errorf("ParseGroove(%q) edge = %v, want %v", tt.code, got.Edge, *tt.edge)
		}
	}
}

func edgePtr(side models.EdgeSide) *models.EdgeSide {
	return &side
}
