// Package layout computes the geometry of a building and expresses it as a sequence of
// operations over a closed primitive vocabulary.
package layout

// OpKind names one primitive of the vocabulary. The rendered script defines exactly one
// helper per kind and calls nothing else.
type OpKind string

// Primitive vocabulary
const (
	KindFloorSlab       OpKind = "floor_slab"
	KindWallSegment     OpKind = "wall_segment"
	KindWindowOpening   OpKind = "window_opening"
	KindRoofForm        OpKind = "roof_form"
	KindEntranceFeature OpKind = "entrance_feature"
	KindFacadeFeature   OpKind = "facade_feature"
)

// Vocabulary lists every primitive in the order the script prelude defines them
var Vocabulary = []OpKind{
	KindFloorSlab,
	KindWallSegment,
	KindWindowOpening,
	KindRoofForm,
	KindEntranceFeature,
	KindFacadeFeature,
}

// Op is one geometry-construction statement. The set of implementations is closed:
// only the types in this file satisfy it.
type Op interface {
	Kind() OpKind
	isOp()
}

// Axis is the horizontal direction a wall runs along
type Axis string

// Wall axes
const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
)

// Edge identifies one side of the footprint
type Edge string

// Footprint edges, listed in emission order
const (
	EdgeSouth Edge = "S"
	EdgeEast  Edge = "E"
	EdgeNorth Edge = "N"
	EdgeWest  Edge = "W"
)

// Edges is the fixed emission order of footprint edges
var Edges = []Edge{EdgeSouth, EdgeEast, EdgeNorth, EdgeWest}

// Axis returns the direction the edge runs along
func (e Edge) Axis() Axis {
	if e == EdgeSouth || e == EdgeNorth {
		return AxisX
	}
	return AxisY
}

// Outward returns the unit normal of the edge pointing away from the building
func (e Edge) Outward() (float64, float64) {
	switch e {
	case EdgeSouth:
		return 0, -1
	case EdgeNorth:
		return 0, 1
	case EdgeEast:
		return 1, 0
	default:
		return -1, 0
	}
}

// Vec3 is a point in meters, Z up
type Vec3 struct {
	X, Y, Z float64
}

// Slab is a horizontal floor plate centered on the origin with its underside at Z
type Slab struct {
	Name      string
	Floor     int
	Z         float64
	Width     float64
	Depth     float64
	Thickness float64
}

// Wall is a straight wall segment. Center is the middle of its footprint; Center.Z is its base.
type Wall struct {
	Name      string
	Floor     int
	Edge      Edge
	Center    Vec3
	Length    float64
	Height    float64
	Thickness float64
	Axis      Axis
}

// Window cuts a rectangular opening through a wall. Center.Z is the opening's vertical middle.
type Window struct {
	Name   string
	Wall   string
	Floor  int
	Edge   Edge
	Center Vec3
	Width  float64
	Height float64
	Depth  float64
	Axis   Axis
}

// Mesh is a polygon soup with faces indexing into Vertices
type Mesh struct {
	Vertices []Vec3
	Faces    [][]int
}

// Roof places a roof form computed from the top floor footprint
type Roof struct {
	Name  string
	Style string
	Pitch float64
	Mesh  Mesh
}

// Entrance cuts the main door opening into the front wall and places the door geometry.
// Center.Z is the threshold height.
type Entrance struct {
	Name     string
	Wall     string
	Style    string
	Edge     Edge
	Center   Vec3
	Width    float64
	Height   float64
	Depth    float64
	Axis     Axis
	OutwardX float64
	OutwardY float64
}

// FeatureKind is the kind of a free-standing facade feature
type FeatureKind string

// Facade feature kinds
const (
	FeatureBalcony FeatureKind = "balcony"
	FeatureCornice FeatureKind = "cornice"
)

// Feature is an axis-aligned box attached to the facade (balcony slab, cornice band)
type Feature struct {
	Name   string
	Type   FeatureKind
	Center Vec3
	Size   Vec3
}

// Kind implements Op
func (Slab) Kind() OpKind { return KindFloorSlab }

// Kind implements Op
func (Wall) Kind() OpKind { return KindWallSegment }

// Kind implements Op
func (Window) Kind() OpKind { return KindWindowOpening }

// Kind implements Op
func (Roof) Kind() OpKind { return KindRoofForm }

// Kind implements Op
func (Entrance) Kind() OpKind { return KindEntranceFeature }

// Kind implements Op
func (Feature) Kind() OpKind { return KindFacadeFeature }

func (Slab) isOp()     {}
func (Wall) isOp()     {}
func (Window) isOp()   {}
func (Roof) isOp()     {}
func (Entrance) isOp() {}
func (Feature) isOp()  {}
