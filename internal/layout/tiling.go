package layout

import (
	"math"

	"github.com/jonathan/architect-assistant/internal/types"
)

// WindowMetrics describes how a window pattern repeats along a facade
type WindowMetrics struct {
	Bay         float64 // center-to-center spacing along the edge
	Width       float64 // opening width, always smaller than Bay
	HeightRatio float64 // opening height as a fraction of the clear floor height
}

// windowMetrics is the fixed repetition table per window pattern
var windowMetrics = map[types.WindowPattern]WindowMetrics{
	types.WindowGrid:              {Bay: 3.0, Width: 1.5, HeightRatio: 0.55},
	types.WindowRibbon:            {Bay: 6.0, Width: 5.4, HeightRatio: 0.40},
	types.WindowPunched:           {Bay: 2.5, Width: 1.0, HeightRatio: 0.50},
	types.WindowCurtainContinuous: {Bay: 1.5, Width: 1.45, HeightRatio: 0.90},
}

// MetricsFor returns the repetition metrics of a window pattern
func MetricsFor(p types.WindowPattern) (WindowMetrics, bool) {
	m, ok := windowMetrics[p]
	return m, ok
}

// MaxBaysPerEdge caps the number of openings along one wall of one floor. Longer walls
// keep that many bays and stretch the spacing, so the script size stays bounded.
const MaxBaysPerEdge = 16

// Tiling is the result of laying equal bays along one edge
type Tiling struct {
	Count   int
	Bay     float64   // center-to-center spacing actually used
	Margin  float64   // blank length left at each end of the edge
	Centers []float64 // bay centers, measured from the edge midpoint, ascending
}

// TileEdge lays as many whole bays as fit along an edge of the given length, up to
// MaxBaysPerEdge. The remainder is never filled with a partial bay: it is split into two
// equal end margins. When more than MaxBaysPerEdge bays would fit, the bay is widened to
// length/MaxBaysPerEdge and the margins are zero.
func TileEdge(length, bay float64) Tiling {
	if length <= 0 || bay <= 0 {
		return Tiling{Bay: bay, Margin: math.Max(length, 0) / 2}
	}

	count := int(math.Floor(length / bay))
	if count > MaxBaysPerEdge {
		count = MaxBaysPerEdge
		bay = length / MaxBaysPerEdge
	}
	margin := (length - float64(count)*bay) / 2

	centers := make([]float64, count)
	for k := range centers {
		centers[k] = -length/2 + margin + (float64(k)+0.5)*bay
	}
	return Tiling{Count: count, Bay: bay, Margin: margin, Centers: centers}
}
