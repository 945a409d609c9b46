package types

// FacadeMaterial is the closed set of exterior cladding tags
type FacadeMaterial string

// Facade material tags
const (
	FacadeGlassCurtainWall FacadeMaterial = "glass-curtain-wall"
	FacadeStone            FacadeMaterial = "stone"
	FacadeBrick            FacadeMaterial = "brick"
	FacadeStucco           FacadeMaterial = "stucco"
	FacadeConcrete         FacadeMaterial = "concrete"
	FacadeWood             FacadeMaterial = "wood"
	FacadeMetalPanel       FacadeMaterial = "metal-panel"
)

// FacadeMaterials lists every facade tag in canonical order
var FacadeMaterials = []FacadeMaterial{
	FacadeGlassCurtainWall, FacadeStone, FacadeBrick, FacadeStucco,
	FacadeConcrete, FacadeWood, FacadeMetalPanel,
}

// RoofType is the closed set of roof form tags
type RoofType string

// Roof type tags
const (
	RoofFlatParapet RoofType = "flat-parapet"
	RoofGabled      RoofType = "gabled"
	RoofMansard     RoofType = "mansard"
	RoofHipped      RoofType = "hipped"
)

// RoofTypes lists every roof tag in canonical order
var RoofTypes = []RoofType{RoofFlatParapet, RoofGabled, RoofMansard, RoofHipped}

// EntranceType is the closed set of main entrance tags
type EntranceType string

// Entrance type tags
const (
	EntranceRevolvingDoor EntranceType = "revolving-door"
	EntranceDoubleDoor    EntranceType = "double-door"
	EntranceArched        EntranceType = "arched"
	EntranceRecessed      EntranceType = "recessed"
	EntranceCanopy        EntranceType = "canopy"
)

// EntranceTypes lists every entrance tag in canonical order
var EntranceTypes = []EntranceType{
	EntranceRevolvingDoor, EntranceDoubleDoor, EntranceArched, EntranceRecessed, EntranceCanopy,
}

// WindowPattern is the closed set of facade opening patterns
type WindowPattern string

// Window pattern tags
const (
	WindowGrid              WindowPattern = "grid"
	WindowRibbon            WindowPattern = "ribbon"
	WindowPunched           WindowPattern = "punched"
	WindowCurtainContinuous WindowPattern = "curtain-continuous"
)

// WindowPatterns lists every window pattern tag in canonical order
var WindowPatterns = []WindowPattern{WindowGrid, WindowRibbon, WindowPunched, WindowCurtainContinuous}

// Extra is a free-standing feature tag. Extras are kept sorted and unique.
type Extra string

// Extra feature tags
const (
	ExtraBalconies Extra = "balconies"
	ExtraCornices  Extra = "cornices"
	ExtraSetbacks  Extra = "setbacks"
)

// Extras lists every extra tag in sorted order
var Extras = []Extra{ExtraBalconies, ExtraCornices, ExtraSetbacks}
