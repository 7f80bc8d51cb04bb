// Package shortcode interprets compact notation strings as structured
// operation parameters. Parsers are pure string functions: malformed or
// unrecognized input is "no match", never an error, and nothing here
// touches the library or the database.
package shortcode

import (
	"strings"

	"github.com/panelops/backend/internal/domain/models"
)

// ParseEdges interprets an edge banding shortcode and returns the set of
// banded sides. The fixed vocabulary covers the canonical spellings; any
// other input falls back to scanning for L1/L2/W1/W2 tokens and taking
// the union of whatever is found.
func ParseEdges(raw string) (models.EdgeSet, bool) {
	code := models.NormalizeNotation(raw)
	if code == "" {
		return nil, false
	}

	switch code {
	case "ALL", "2L2W", "4":
		return models.NormalizeEdges(models.AllEdgeSides()...), true
	case "NONE", "0":
		return models.EdgeSet{}, true
	case "2L":
		return models.NormalizeEdges(models.EdgeL1, models.EdgeL2), true
	case "2W":
		return models.NormalizeEdges(models.EdgeW1, models.EdgeW2), true
	case "L1", "L2", "W1", "W2":
		return models.NormalizeEdges(models.EdgeSide(code)), true
	case "2LW":
		return models.NormalizeEdges(models.EdgeL1, models.EdgeL2, models.EdgeW1), true
	case "L2W":
		return models.NormalizeEdges(models.EdgeL1, models.EdgeW1, models.EdgeW2), true
	}

	// Generic fallback: union of any side tokens present in the string.
	// Duplicates collapse via set semantics.
	sides := make([]models.EdgeSide, 0, 4)
	for _, side := range models.AllEdgeSides() {
		if strings.Contains(code, string(side)) {
			sides = append(sides, side)
		}
	}
	if len(sides) == 0 {
		return nil, false
	}
	return models.NormalizeEdges(sides...), true
}

// EdgesToCode renders an edge set as its canonical spelling. Sets without
// a fixed-vocabulary spelling are rendered as concatenated side codes
// (e.g. "L1W2"), which ParseEdges reads back via its fallback scan.
func EdgesToCode(set models.EdgeSet) string {
	switch len(set) {
	case 0:
		return "NONE"
	case 1:
		return string(set[0])
	case 4:
		return "2L2W"
	}

	if set.Equal(models.NormalizeEdges(models.EdgeL1, models.EdgeL2)) {
		return "2L"
	}
	if set.Equal(models.NormalizeEdges(models.EdgeW1, models.EdgeW2)) {
		return "2W"
	}
	if set.Equal(models.NormalizeEdges(models.EdgeL1, models.EdgeL2, models.EdgeW1)) {
		return "2LW"
	}
	if set.Equal(models.NormalizeEdges(models.EdgeL1, models.EdgeW1, models.EdgeW2)) {
		return "L2W"
	}

	var sb strings.Builder
	for _, side := range set {
		sb.WriteString(string(side))
	}
	return sb.String()
}
