package shortcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/panelops/backend/internal/domain/models"
)

// GrooveParse is the partial result of parsing a groove shortcode. The
// edge is captured only when the code names one; otherwise the caller
// fills it from context.
type GrooveParse struct {
	WidthMm  float64
	OffsetMm float64
	Edge     *models.EdgeSide
}

// dimension pair: "4X10", "4-10" (input is uppercased before matching)
var grooveDimsPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)[X×-](\d+(?:\.\d+)?)$`)

// ParseGroove interprets a groove shortcode of the shape
// G[edge]-[width]-[offset] (e.g. "G4-10", "GL-6-10") or a bare dimension
// pair [width]x[offset] / [width]-[offset]. Both numbers must be positive.
func ParseGroove(raw string) (*GrooveParse, bool) {
	code := models.NormalizeNotation(raw)
	if code == "" {
		return nil, false
	}

	if strings.HasPrefix(code, "G") {
		if gp, ok := parseGrooveCode(code[1:]); ok {
			return gp, true
		}
	}

	if m := grooveDimsPattern.FindStringSubmatch(code); m != nil {
		width, _ := strconv.ParseFloat(m[1], 64)
		offset, _ := strconv.ParseFloat(m[2], 64)
		if width > 0 && offset > 0 {
			return &GrooveParse{WidthMm: width, OffsetMm: offset}, true
		}
	}

	return nil, false
}

// parseGrooveCode handles the dash-separated body after the G prefix.
// The trailing two tokens must be the width and offset; leading tokens
// contribute an edge if one is recognizable and are ignored otherwise
// (vendor codes embed non-edge keywords like "ALL" here).
func parseGrooveCode(body string) (*GrooveParse, bool) {
	body = strings.TrimPrefix(body, "-")
	parts := strings.Split(body, "-")
	if len(parts) < 2 {
		return nil, false
	}

	width, errW := strconv.ParseFloat(parts[len(parts)-2], 64)
	offset, errO := strconv.ParseFloat(parts[len(parts)-1], 64)
	if errW != nil || errO != nil || width <= 0 || offset <= 0 {
		return nil, false
	}

	gp := &GrooveParse{WidthMm: width, OffsetMm: offset}
	for _, token := range parts[:len(parts)-2] {
		if side, ok := edgeToken(token); ok {
			gp.Edge = &side
			break
		}
	}
	return gp, true
}

// edgeToken maps an edge token to a side. Bare "L"/"W" select the first
// edge of that orientation.
func edgeToken(token string) (models.EdgeSide, bool) {
	switch token {
	case "L":
		return models.EdgeL1, true
	case "W":
		return models.EdgeW1, true
	case "L1", "L2", "W1", "W2":
		return models.EdgeSide(token), true
	}
	return "", false
}
