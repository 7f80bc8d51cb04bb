package shortcode

import (
	"testing"

	"github.com/panelops/backend/internal/domain/models"
)

func TestParseEdges_Vocabulary(t *testing.T) {
	tests := []struct {
		code  string
		want  []models.EdgeSide
		match bool
	}{
		{"2L2W", []models.EdgeSide{models.EdgeL1, models.EdgeL2, models.EdgeW1, models.EdgeW2}, true},
		{"ALL", []models.EdgeSide{models.EdgeL1, models.EdgeL2, models.EdgeW1, models.EdgeW2}, true},
		{"4", []models.EdgeSide{models.EdgeL1, models.EdgeL2, models.EdgeW1, models.EdgeW2}, true},
		{"2L", []models.EdgeSide{models.EdgeL1, models.EdgeL2}, true},
		{"2W", []models.EdgeSide{models.EdgeW1, models.EdgeW2}, true},
		{"L1", []models.EdgeSide{models.EdgeL1}, true},
		{"L2", []models.EdgeSide{models.EdgeL2}, true},
		{"W1", []models.EdgeSide{models.EdgeW1}, true},
		{"W2", []models.EdgeSide{models.EdgeW2}, true},
		{"2LW", []models.EdgeSide{models.EdgeL1, models.EdgeL2, models.EdgeW1}, true},
		{"L2W", []models.EdgeSide{models.EdgeL1, models.EdgeW1, models.EdgeW2}, true},
		{"NONE", []models.EdgeSide{}, true},
		{"0", []models.EdgeSide{}, true},
		{"  2l2w  ", []models.EdgeSide{models.EdgeL1, models.EdgeL2, models.EdgeW1, models.EdgeW2}, true},
		{"BANANA", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, ok := ParseEdges(tt.code)
		if ok != tt.match {
			t.Errorf("ParseEdges(%q) match = %v, want %v", tt.code, ok, tt.match)
			continue
		}
		if !tt.match {
			continue
		}
		want := models.NormalizeEdges(tt.want...)
		if !got.Equal(want) {
			t.Errorf("ParseEdges(%q) = %v, want %v", tt.code, got, want)
		}
	}
}

func TestParseEdges_FallbackScan(t *testing.T) {
	got, ok := ParseEdges("BAND L1+W2")
	if !ok {
		t.Fatal("expected fallback scan to match")
	}
	want := models.NormalizeEdges(models.EdgeL1, models.EdgeW2)
	if !got.Equal(want) {
		t.Errorf("fallback scan = %v, want %v", got, want)
	}

	// duplicates collapse
	got, ok = ParseEdges("L1L1W1")
	if !ok {
		t.Fatal("expected duplicate token scan to match")
	}
	want = models.NormalizeEdges(models.EdgeL1, models.EdgeW1)
	if !got.Equal(want) {
		t.Errorf("duplicate scan = %v, want %v", got, want)
	}
}

func TestParseEdges_AllSpellingsAgree(t *testing.T) {
	all, _ := ParseEdges("2L2W")
	for _, code := range []string{"ALL", "4"} {
		got, ok := ParseEdges(code)
		if !ok || !got.Equal(all) {
			t.Errorf("ParseEdges(%q) = %v, want all four sides", code, got)
		}
	}
}

func TestEdgesToCode_RoundTrip(t *testing.T) {
	// Canonical spellings must survive a parse/render cycle unchanged.
	for _, code := range []string{"2L2W", "2L", "2W", "L1", "L2", "W1", "W2", "NONE", "2LW", "L2W"} {
		set, ok := ParseEdges(code)
		if !ok {
			t.Fatalf("ParseEdges(%q) did not match", code)
		}
		if got := EdgesToCode(set); got != code {
			t.Errorf("EdgesToCode(ParseEdges(%q)) = %q", code, got)
		}
	}
}

func TestEdgesToCode_GenericSets(t *testing.T) {
	set := models.NormalizeEdges(models.EdgeL1, models.EdgeW2)
	code := EdgesToCode(set)

	// Generic sets must round-trip through the fallback scanner.
	back, ok := ParseEdges(code)
	if !ok || !back.Equal(set) {
		t.Errorf("generic round trip failed: %q -> %v", code, back)
	}
}
