package layout

import (
	"math"

	"github.com/jonathan/architect-assistant/internal/types"
)

// Roof recipe constants
const (
	ParapetHeight      = 1.0
	RoofSlabThickness  = 0.3
	GabledPitch        = 30.0
	HippedPitch        = 30.0
	MansardPitch       = 70.0
	MansardInsetFactor = 0.15
)

// roofRecipe builds a roof mesh over a w×d footprint whose underside sits at z
type roofRecipe func(w, d, z float64) (Mesh, float64)

var roofRecipes = map[types.RoofType]roofRecipe{
	types.RoofFlatParapet: flatParapetRoof,
	types.RoofGabled:      gabledRoof,
	types.RoofHipped:      hippedRoof,
	types.RoofMansard:     mansardRoof,
}

// BuildRoof looks up the construction recipe for a roof type
func BuildRoof(kind types.RoofType, w, d, z float64) (Roof, bool) {
	recipe, ok := roofRecipes[kind]
	if !ok {
		return Roof{}, false
	}
	mesh, pitch := recipe(w, d, z)
	return Roof{Name: "Roof", Style: string(kind), Pitch: pitch, Mesh: mesh}, true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// rect returns the four corners of a centered w×d rectangle at height z,
// counter-clockwise from the south-west corner
func rect(w, d, z float64) []Vec3 {
	return []Vec3{
		{-w / 2, -d / 2, z},
		{w / 2, -d / 2, z},
		{w / 2, d / 2, z},
		{-w / 2, d / 2, z},
	}
}

// flatParapetRoof is a closed tray: a roof slab with a parapet ring standing on its rim.
// Vertices: outer bottom (0-3), outer top (4-7), inner top (8-11), inner floor (12-15).
func flatParapetRoof(w, d, z float64) (Mesh, float64) {
	wall := math.Min(WallThickness, math.Min(w, d)/4)
	top := z + RoofSlabThickness + ParapetHeight

	var v []Vec3
	v = append(v, rect(w, d, z)...)
	v = append(v, rect(w, d, top)...)
	v = append(v, rect(w-2*wall, d-2*wall, top)...)
	v = append(v, rect(w-2*wall, d-2*wall, z+RoofSlabThickness)...)

	faces := [][]int{{3, 2, 1, 0}}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		// outer side, parapet cap, inner side
		faces = append(faces,
			[]int{i, j, 4 + j, 4 + i},
			[]int{4 + i, 4 + j, 8 + j, 8 + i},
			[]int{8 + i, 8 + j, 12 + j, 12 + i},
		)
	}
	faces = append(faces, []int{12, 13, 14, 15})
	return Mesh{Vertices: v, Faces: faces}, 0
}

// gabledRoof runs its ridge along the longer footprint dimension
func gabledRoof(w, d, z float64) (Mesh, float64) {
	rise := math.Min(w, d) / 2 * math.Tan(radians(GabledPitch))
	v := rect(w, d, z)
	if w >= d {
		v = append(v, Vec3{-w / 2, 0, z + rise}, Vec3{w / 2, 0, z + rise})
		return Mesh{Vertices: v, Faces: [][]int{
			{3, 2, 1, 0},
			{0, 1, 5, 4}, // south slope
			{2, 3, 4, 5}, // north slope
			{1, 2, 5},    // east gable
			{3, 0, 4},    // west gable
		}}, GabledPitch
	}
	v = append(v, Vec3{0, -d / 2, z + rise}, Vec3{0, d / 2, z + rise})
	return Mesh{Vertices: v, Faces: [][]int{
		{3, 2, 1, 0},
		{1, 2, 5, 4}, // east slope
		{3, 0, 4, 5}, // west slope
		{0, 1, 4},    // south gable
		{2, 3, 5},    // north gable
	}}, GabledPitch
}

// hippedRoof slopes on all four sides; the ridge length is the difference between the
// footprint dimensions, so a square footprint yields a pyramid.
func hippedRoof(w, d, z float64) (Mesh, float64) {
	short := math.Min(w, d)
	rise := short / 2 * math.Tan(radians(HippedPitch))
	half := (math.Max(w, d) - short) / 2
	v := rect(w, d, z)

	if half == 0 {
		v = append(v, Vec3{0, 0, z + rise})
		return Mesh{Vertices: v, Faces: [][]int{
			{3, 2, 1, 0},
			{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
		}}, HippedPitch
	}

	if w >= d {
		v = append(v, Vec3{-half, 0, z + rise}, Vec3{half, 0, z + rise})
		return Mesh{Vertices: v, Faces: [][]int{
			{3, 2, 1, 0},
			{0, 1, 5, 4}, // south
			{2, 3, 4, 5}, // north
			{1, 2, 5},    // east hip
			{3, 0, 4},    // west hip
		}}, HippedPitch
	}
	v = append(v, Vec3{0, -half, z + rise}, Vec3{0, half, z + rise})
	return Mesh{Vertices: v, Faces: [][]int{
		{3, 2, 1, 0},
		{1, 2, 5, 4}, // east
		{3, 0, 4, 5}, // west
		{0, 1, 4},    // south hip
		{2, 3, 5},    // north hip
	}}, HippedPitch
}

// mansardRoof is a steep truncated pyramid with a flat top
func mansardRoof(w, d, z float64) (Mesh, float64) {
	inset := math.Min(w, d) * MansardInsetFactor
	rise := inset * math.Tan(radians(MansardPitch))

	v := rect(w, d, z)
	v = append(v, rect(w-2*inset, d-2*inset, z+rise)...)

	faces := [][]int{{3, 2, 1, 0}}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		faces = append(faces, []int{i, j, 4 + j, 4 + i})
	}
	faces = append(faces, []int{4, 5, 6, 7})
	return Mesh{Vertices: v, Faces: faces}, MansardPitch
}
