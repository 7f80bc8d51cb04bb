package constants

// OperationCategory classifies a panel operation and drives which
// parser and library section apply.
type OperationCategory string

const (
	CategoryEdgeBand OperationCategory = "edgeband"
	CategoryGroove   OperationCategory = "groove"
	CategoryDrilling OperationCategory = "drilling"
	CategoryCNC      OperationCategory = "cnc"
)

// AllCategories returns every valid operation category
func AllCategories() []OperationCategory {
	return []OperationCategory{CategoryEdgeBand, CategoryGroove, CategoryDrilling, CategoryCNC}
}

// IsValidCategory checks a raw category string against the closed set
func IsValidCategory(category string) bool {
	for _, c := range AllCategories() {
		if string(c) == category {
			return true
		}
	}
	return false
}

// Library entry kinds (purpose classifiers used for keyword inference)
const (
	KindHinge        = "hinge"
	KindShelfPins    = "shelf_pins"
	KindHandle       = "handle"
	KindCamLock      = "cam_lock"
	KindBackPanel    = "back_panel"
	KindDrawerBottom = "drawer_bottom"
	KindLightProfile = "light_profile"
	KindGlassPanel   = "glass_panel"
	KindCutout       = "cutout"
	KindRadius       = "radius"
	KindPocket       = "pocket"
	KindChamfer      = "chamfer"
	KindRebate       = "rebate"
)

// CNC operation types carried by routing profiles
const (
	CNCOpPocket  = "pocket"
	CNCOpCutout  = "cutout"
	CNCOpChamfer = "chamfer"
	CNCOpRadius  = "radius"
	CNCOpRebate  = "rebate"
	CNCOpContour = "contour"
	CNCOpText    = "text"
	CNCOpCustom  = "custom"
)

// Resolution sources, in pipeline precedence order
const (
	SourceAlias   = "alias"
	SourceParser  = "parser"
	SourceLibrary = "library"
	SourceAI      = "ai"
)

// GrooveToleranceMm is the per-dimension tolerance for numeric profile matching
const GrooveToleranceMm = 0.5

// Context keys
const (
	ContextKeyAccount = "account"
	ContextKeyOrgID   = "organization_id"
)

// HeaderAuthorization is the HTTP header carrying the bearer token
const HeaderAuthorization = "Authorization"
