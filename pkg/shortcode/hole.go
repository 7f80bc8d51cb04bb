package shortcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
)

// HoleParse is the partial result of parsing a drilling shortcode. It
// carries a kind plus whatever numeric parameters the code encodes; hole
// geometry comes later from a matched library pattern.
type HoleParse struct {
	Kind             string
	Count            int
	OffsetMm         float64
	CenterToCenterMm float64
	PitchMm          float64
}

var (
	// hinge count with optional offset: "H2", "H3-110"
	hingePattern = regexp.MustCompile(`^H(\d)(?:-(\d+(?:\.\d+)?))?$`)
	// handle center-to-center: "HD-128"
	handlePattern = regexp.MustCompile(`^HD-(\d+(?:\.\d+)?)$`)
)

// shelfPinPitchMm is the system-32 pitch implied by SP/S32 markers
const shelfPinPitchMm = 32

// ParseHole interprets a drilling shortcode: hinge counts (H2, H2-110),
// shelf pin markers (SP, S32), handle markers (HD-128), and literal
// keywords (HINGE, SHELF, CAM).
func ParseHole(raw string) (*HoleParse, bool) {
	code := models.NormalizeNotation(raw)
	if code == "" {
		return nil, false
	}

	if m := hingePattern.FindStringSubmatch(code); m != nil {
		count, _ := strconv.Atoi(m[1])
		if count == 0 {
			return nil, false
		}
		hp := &HoleParse{Kind: constants.KindHinge, Count: count}
		if m[2] != "" {
			hp.OffsetMm, _ = strconv.ParseFloat(m[2], 64)
		}
		return hp, true
	}

	switch code {
	case "SP", "S32":
		return &HoleParse{Kind: constants.KindShelfPins, PitchMm: shelfPinPitchMm}, true
	}

	if m := handlePattern.FindStringSubmatch(code); m != nil {
		cc, _ := strconv.ParseFloat(m[1], 64)
		if cc <= 0 {
			return nil, false
		}
		return &HoleParse{Kind: constants.KindHandle, CenterToCenterMm: cc}, true
	}

	switch {
	case strings.Contains(code, "HINGE"):
		return &HoleParse{Kind: constants.KindHinge}, true
	case strings.Contains(code, "SHELF"):
		return &HoleParse{Kind: constants.KindShelfPins, PitchMm: shelfPinPitchMm}, true
	case strings.Contains(code, "CAM"):
		return &HoleParse{Kind: constants.KindCamLock}, true
	}

	return nil, false
}
