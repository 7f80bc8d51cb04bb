package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/shortcode"
)

// keywordRule infers an entry kind from a notation pattern
type keywordRule struct {
	pattern *regexp.Regexp
	kind    string
}

// categoryKeywordRules maps notation patterns to the entry kind they
// imply, checked in order so overlapping patterns stay deterministic.
// Used after exact and name matching have failed.
var categoryKeywordRules = map[constants.OperationCategory][]keywordRule{
	constants.CategoryDrilling: {
		{regexp.MustCompile(`H\d+`), constants.KindHinge},
		{regexp.MustCompile(`HINGE`), constants.KindHinge},
		{regexp.MustCompile(`HD`), constants.KindHandle},
		{regexp.MustCompile(`HANDLE`), constants.KindHandle},
		{regexp.MustCompile(`SP`), constants.KindShelfPins},
		{regexp.MustCompile(`SHELF`), constants.KindShelfPins},
		{regexp.MustCompile(`32`), constants.KindShelfPins},
		{regexp.MustCompile(`CAM`), constants.KindCamLock},
	},
	constants.CategoryGroove: {
		{regexp.MustCompile(`BACK`), constants.KindBackPanel},
		{regexp.MustCompile(`DRAWER`), constants.KindDrawerBottom},
		{regexp.MustCompile(`BOTTOM`), constants.KindDrawerBottom},
		{regexp.MustCompile(`LED`), constants.KindLightProfile},
		{regexp.MustCompile(`LIGHT`), constants.KindLightProfile},
		{regexp.MustCompile(`GLASS`), constants.KindGlassPanel},
	},
	constants.CategoryCNC: {
		{regexp.MustCompile(`CUTOUT`), constants.KindCutout},
		{regexp.MustCompile(`SINK`), constants.KindCutout},
		{regexp.MustCompile(`HOB`), constants.KindCutout},
		{regexp.MustCompile(`RADIUS`), constants.KindRadius},
		{regexp.MustCompile(`ROUND`), constants.KindRadius},
		{regexp.MustCompile(`POCKET`), constants.KindPocket},
		{regexp.MustCompile(`CHAMFER`), constants.KindChamfer},
		{regexp.MustCompile(`REBATE`), constants.KindRebate},
	},
}

// embeddedDimsPattern finds a dimension pair anywhere inside a longer
// notation, e.g. the "4-10" in "GROOVE 4-10 TOP"
var embeddedDimsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)[X×-](\d+(?:\.\d+)?)`)

// Matcher finds the library entry a notation refers to. Strategies run in
// fixed precedence: exact code, name containment, category keyword
// inference, numeric tolerance (grooves), then numeric retry on dimensions
// extracted from inside the notation. Entry lists arrive ordered
// org-first then oldest-first, so the first hit of a strategy is the
// winner.
type Matcher struct{}

// NewMatcher creates a new Matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match runs the strategy chain and returns the winning entry, or nil
// when every strategy misses
func (m *Matcher) Match(entries []*models.LibraryEntry, category constants.OperationCategory, notation string) *models.LibraryEntry {
	code := models.NormalizeNotation(notation)
	if code == "" || len(entries) == 0 {
		return nil
	}

	if entry := matchExactCode(entries, code); entry != nil {
		return entry
	}
	if entry := matchName(entries, code); entry != nil {
		return entry
	}
	if entry := matchCategoryKeyword(entries, category, code); entry != nil {
		return entry
	}

	if category == constants.CategoryGroove {
		if gp, ok := shortcode.ParseGroove(code); ok {
			// The second notation number rides the depth axis: vendor
			// codes like "G4-10" name width and depth, not offset.
			if entry := matchGrooveDims(entries, gp.WidthMm, gp.OffsetMm); entry != nil {
				return entry
			}
		}
		if m := embeddedDimsPattern.FindStringSubmatch(code); m != nil {
			width, _ := strconv.ParseFloat(m[1], 64)
			depth, _ := strconv.ParseFloat(m[2], 64)
			if entry := matchGrooveDims(entries, width, depth); entry != nil {
				return entry
			}
		}
	}

	return nil
}

// MatchKind returns the first entry of a kind, in list precedence order.
// The resolution pipeline uses it to fill geometry for a parsed partial
// result that carries a kind but no dimensions.
func (m *Matcher) MatchKind(entries []*models.LibraryEntry, kind string) *models.LibraryEntry {
	return matchKind(entries, kind)
}

func matchExactCode(entries []*models.LibraryEntry, code string) *models.LibraryEntry {
	for _, entry := range entries {
		if models.NormalizeNotation(entry.Code) == code {
			return entry
		}
	}
	return nil
}

// matchName hits on containment in either direction: the notation inside
// an entry name, an entry name inside the notation, or an entry code
// inside the notation. Guards against degenerate single-character
// containment.
func matchName(entries []*models.LibraryEntry, code string) *models.LibraryEntry {
	if len(code) < 2 {
		return nil
	}
	for _, entry := range entries {
		name := models.NormalizeNotation(entry.Name)
		entryCode := models.NormalizeNotation(entry.Code)
		if strings.Contains(name, code) {
			return entry
		}
		if len(name) >= 2 && strings.Contains(code, name) {
			return entry
		}
		if len(entryCode) >= 2 && strings.Contains(code, entryCode) {
			return entry
		}
	}
	return nil
}

func matchCategoryKeyword(entries []*models.LibraryEntry, category constants.OperationCategory, code string) *models.LibraryEntry {
	for _, rule := range categoryKeywordRules[category] {
		if !rule.pattern.MatchString(code) {
			continue
		}
		if entry := matchKind(entries, rule.kind); entry != nil {
			return entry
		}
	}
	return nil
}

func matchKind(entries []*models.LibraryEntry, kind string) *models.LibraryEntry {
	if kind == "" {
		return nil
	}
	for _, entry := range entries {
		if entry.Kind == kind {
			return entry
		}
	}
	return nil
}

// matchGrooveDims finds the groove profile closest to the requested width
// and depth, both within tolerance. Equidistant candidates break ties on
// smallest combined distance, then earliest creation, then lowest id, so
// repeated calls always pick the same entry.
func matchGrooveDims(entries []*models.LibraryEntry, widthMm, depthMm float64) *models.LibraryEntry {
	if widthMm <= 0 || depthMm <= 0 {
		return nil
	}

	var best *models.LibraryEntry
	var bestDistance float64

	for _, entry := range entries {
		if entry.Groove == nil {
			continue
		}
		dw := abs(entry.Groove.WidthMm - widthMm)
		dd := abs(entry.Groove.DepthMm - depthMm)
		if dw > constants.GrooveToleranceMm || dd > constants.GrooveToleranceMm {
			continue
		}
		distance := dw + dd

		switch {
		case best == nil,
			distance < bestDistance,
			distance == bestDistance && entry.CreatedDate.Before(best.CreatedDate),
			distance == bestDistance && entry.CreatedDate.Equal(best.CreatedDate) && entry.ID < best.ID:
			best = entry
			bestDistance = distance
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
