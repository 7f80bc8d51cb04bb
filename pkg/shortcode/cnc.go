package shortcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// CNCParse is the partial result of parsing a routing shortcode: an
// operation type plus any captured parameter.
type CNCParse struct {
	OpType  string
	Purpose string
	ValueMm float64
}

// corner radius: "RADIUS-5"
var radiusPattern = regexp.MustCompile(`^RADIUS-(\d+(?:\.\d+)?)$`)

// ParseCNC interprets a routing shortcode: keyword-prefixed codes
// (CUTOUT, CUTOUT-SINK, RADIUS-5, POCKET, CHAMFER, REBATE).
func ParseCNC(raw string) (*CNCParse, bool) {
	code := models.NormalizeNotation(raw)
	if code == "" {
		return nil, false
	}

	if m := radiusPattern.FindStringSubmatch(code); m != nil {
		radius, _ := strconv.ParseFloat(m[1], 64)
		if radius <= 0 {
			return nil, false
		}
		return &CNCParse{OpType: constants.CNCOpRadius, ValueMm: radius}, true
	}

	switch code {
	case "CUTOUT":
		return &CNCParse{OpType: constants.CNCOpCutout}, true
	case "POCKET":
		return &CNCParse{OpType: constants.CNCOpPocket}, true
	case "CHAMFER":
		return &CNCParse{OpType: constants.CNCOpChamfer}, true
	case "REBATE":
		return &CNCParse{OpType: constants.CNCOpRebate}, true
	}

	if strings.HasPrefix(code, "CUTOUT-") {
		purpose := strings.TrimPrefix(code, "CUTOUT-")
		if purpose == "" {
			return nil, false
		}
		return &CNCParse{OpType: constants.CNCOpCutout, Purpose: purpose}, true
	}

	return nil, false
}
