package layout

import (
	"fmt"
	"math"

	"github.com/jonathan/architect-assistant/internal/types"
)

// Construction constants (meters)
const (
	SlabThickness       = 0.3
	WallThickness       = 0.25
	EntranceMaxHeight   = 2.7
	SetbackInset        = 2.0
	MinSetbackFootprint = 4.0
	BalconyDepth        = 1.2
	BalconyThickness    = 0.2
	CorniceProjection   = 0.3
	CorniceHeight       = 0.4
)

// EntranceMetrics describes the opening of one entrance type
type EntranceMetrics struct {
	Width float64
	Depth float64 // how far the feature reaches outward (canopy) or inward (recess)
}

var entranceMetrics = map[types.EntranceType]EntranceMetrics{
	types.EntranceRevolvingDoor: {Width: 3.0, Depth: 3.0},
	types.EntranceDoubleDoor:    {Width: 2.4, Depth: 0.1},
	types.EntranceArched:        {Width: 2.0, Depth: 0.1},
	types.EntranceRecessed:      {Width: 2.4, Depth: 1.0},
	types.EntranceCanopy:        {Width: 3.0, Depth: 2.0},
}

// Floor is the vertical interval [Base, Top) occupied by one storey
type Floor struct {
	Index     int
	Base      float64
	Top       float64
	Footprint types.Footprint
}

// Plan is the complete geometric layout of a building
type Plan struct {
	Floors        []Floor
	Front         Edge
	TotalHeight   float64
	WallThickness float64
	SlabThickness float64
	Ops           []Op
}

// FloorIntervals splits the building height into floorCount equal, contiguous intervals.
// Bases are computed directly from the index so interval i's Top is bit-identical to
// interval i+1's Base.
func FloorIntervals(floorCount int, floorHeight float64) []Floor {
	floors := make([]Floor, floorCount)
	for i := range floors {
		floors[i] = Floor{
			Index: i,
			Base:  float64(i) * floorHeight,
			Top:   float64(i+1) * floorHeight,
		}
	}
	return floors
}

// FrontEdge is the edge running along the longer footprint dimension.
// Square footprints face south.
func FrontEdge(fp types.Footprint) Edge {
	if fp.Width >= fp.Depth {
		return EdgeSouth
	}
	return EdgeWest
}

// setbackStart returns the first floor index that is inset, or floorCount when the
// building has no setback tier
func setbackStart(spec *types.BuildingSpecification) int {
	n := spec.FloorCount
	if !spec.HasExtra(types.ExtraSetbacks) || n < 3 {
		return n
	}
	w := spec.Footprint.Width - 2*SetbackInset
	d := spec.Footprint.Depth - 2*SetbackInset
	if w < MinSetbackFootprint || d < MinSetbackFootprint {
		return n
	}
	return int(math.Ceil(2 * float64(n) / 3))
}

// Build computes the layout of a validated specification. The caller is responsible for
// validating the specification first.
func Build(spec types.BuildingSpecification) (*Plan, error) {
	metrics, ok := windowMetrics[spec.WindowPattern]
	if !ok {
		return nil, fmt.Errorf("no window metrics for pattern %q", spec.WindowPattern)
	}
	entrance, ok := entranceMetrics[spec.EntranceType]
	if !ok {
		return nil, fmt.Errorf("no entrance metrics for type %q", spec.EntranceType)
	}

	fp := spec.Footprint
	plan := &Plan{
		Floors:        FloorIntervals(spec.FloorCount, spec.FloorHeight),
		Front:         FrontEdge(fp),
		TotalHeight:   spec.TotalHeight(),
		WallThickness: math.Min(WallThickness, fp.Shorter()/4),
		SlabThickness: math.Min(SlabThickness, spec.FloorHeight/4),
	}

	tierStart := setbackStart(&spec)
	for i := range plan.Floors {
		plan.Floors[i].Footprint = fp
		if i >= tierStart {
			plan.Floors[i].Footprint = types.Footprint{
				Width: fp.Width - 2*SetbackInset,
				Depth: fp.Depth - 2*SetbackInset,
			}
		}
	}

	entranceOp := plan.entrance(spec.EntranceType, entrance)
	frontWindows := make(map[int][]Window)

	for _, floor := range plan.Floors {
		plan.Ops = append(plan.Ops, Slab{
			Name:      fmt.Sprintf("Slab_F%03d", floor.Index),
			Floor:     floor.Index,
			Z:         floor.Base,
			Width:     floor.Footprint.Width,
			Depth:     floor.Footprint.Depth,
			Thickness: plan.SlabThickness,
		})

		walls := plan.walls(floor)
		for _, w := range walls {
			plan.Ops = append(plan.Ops, w)
		}
		for _, w := range walls {
			windows := plan.windows(floor, w, metrics)
			if floor.Index == 0 && w.Edge == plan.Front {
				windows = dropOverlapping(windows, entranceOp, w.Axis)
			}
			if w.Edge == plan.Front {
				frontWindows[floor.Index] = windows
			}
			for _, win := range windows {
				plan.Ops = append(plan.Ops, win)
			}
		}
	}

	plan.Ops = append(plan.Ops, entranceOp)

	if spec.HasExtra(types.ExtraBalconies) {
		for _, floor := range plan.Floors[1:] {
			for k, win := range frontWindows[floor.Index] {
				plan.Ops = append(plan.Ops, plan.balcony(floor, win, metrics, k))
			}
		}
	}

	if spec.HasExtra(types.ExtraCornices) {
		top := plan.Floors[len(plan.Floors)-1]
		plan.Ops = append(plan.Ops, plan.cornice(0, top.Footprint, top.Top, spec.FloorHeight)...)
		if len(plan.Floors) >= 3 {
			ground := plan.Floors[0]
			plan.Ops = append(plan.Ops, plan.cornice(1, ground.Footprint, ground.Top, spec.FloorHeight)...)
		}
	}

	roofFp := plan.Floors[len(plan.Floors)-1].Footprint
	roof, ok := BuildRoof(spec.RoofType, roofFp.Width, roofFp.Depth, plan.TotalHeight)
	if !ok {
		return nil, fmt.Errorf("no roof recipe for type %q", spec.RoofType)
	}
	plan.Ops = append(plan.Ops, roof)

	return plan, nil
}

// clearHeight is the wall height between the top of a slab and the next floor
func (p *Plan) clearHeight(floor Floor) float64 {
	return floor.Top - floor.Base - p.SlabThickness
}

// walls returns the four perimeter walls of a floor in edge order. The outer faces sit on
// the footprint boundary; east and west walls fit between the south and north walls.
func (p *Plan) walls(floor Floor) []Wall {
	w, d, t := floor.Footprint.Width, floor.Footprint.Depth, p.WallThickness
	z := floor.Base + p.SlabThickness
	h := p.clearHeight(floor)

	walls := make([]Wall, 0, len(Edges))
	for _, e := range Edges {
		wall := Wall{
			Name:      fmt.Sprintf("Wall_F%03d_%s", floor.Index, e),
			Floor:     floor.Index,
			Edge:      e,
			Height:    h,
			Thickness: t,
			Axis:      e.Axis(),
		}
		switch e {
		case EdgeSouth:
			wall.Center, wall.Length = Vec3{0, -d/2 + t/2, z}, w
		case EdgeNorth:
			wall.Center, wall.Length = Vec3{0, d/2 - t/2, z}, w
		case EdgeEast:
			wall.Center, wall.Length = Vec3{w/2 - t/2, 0, z}, d-2*t
		case EdgeWest:
			wall.Center, wall.Length = Vec3{-w/2 + t/2, 0, z}, d-2*t
		}
		walls = append(walls, wall)
	}
	return walls
}

// windows tiles openings along one wall, left to right along the wall's axis
func (p *Plan) windows(floor Floor, wall Wall, m WindowMetrics) []Window {
	tiling := TileEdge(wall.Length, m.Bay)
	clear := p.clearHeight(floor)
	height := clear * m.HeightRatio
	z := wall.Center.Z + clear/2

	windows := make([]Window, 0, tiling.Count)
	for k, c := range tiling.Centers {
		center := Vec3{wall.Center.X, wall.Center.Y, z}
		if wall.Axis == AxisX {
			center.X += c
		} else {
			center.Y += c
		}
		windows = append(windows, Window{
			Name:   fmt.Sprintf("Win_F%03d_%s_%03d", floor.Index, wall.Edge, k),
			Wall:   wall.Name,
			Floor:  floor.Index,
			Edge:   wall.Edge,
			Center: center,
			Width:  m.Width,
			Height: height,
			Depth:  wall.Thickness,
			Axis:   wall.Axis,
		})
	}
	return windows
}

// entrance centers the main entrance on the ground floor front wall
func (p *Plan) entrance(kind types.EntranceType, m EntranceMetrics) Entrance {
	ground := p.Floors[0]
	var front Wall
	for _, w := range p.walls(ground) {
		if w.Edge == p.Front {
			front = w
		}
	}
	ox, oy := p.Front.Outward()
	return Entrance{
		Name:     "Entrance",
		Wall:     front.Name,
		Style:    string(kind),
		Edge:     p.Front,
		Center:   front.Center,
		Width:    math.Min(m.Width, front.Length-2*p.WallThickness),
		Height:   math.Min(EntranceMaxHeight, 0.9*p.clearHeight(ground)),
		Depth:    m.Depth,
		Axis:     front.Axis,
		OutwardX: ox,
		OutwardY: oy,
	}
}

// dropOverlapping removes windows whose span along the wall intersects the entrance
func dropOverlapping(windows []Window, e Entrance, axis Axis) []Window {
	kept := windows[:0:0]
	for _, w := range windows {
		offset := w.Center.X - e.Center.X
		if axis == AxisY {
			offset = w.Center.Y - e.Center.Y
		}
		if math.Abs(offset) < (w.Width+e.Width)/2 {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

// balcony projects a slab outward under a front window, flush with the floor slab top
func (p *Plan) balcony(floor Floor, win Window, m WindowMetrics, k int) Feature {
	ox, oy := p.Front.Outward()
	w, d := floor.Footprint.Width, floor.Footprint.Depth
	width := math.Min(m.Bay*0.8, m.Width+0.6)

	center := Vec3{Z: floor.Base + p.SlabThickness - BalconyThickness/2}
	size := Vec3{Z: BalconyThickness}
	if p.Front.Axis() == AxisX {
		center.X = win.Center.X
		center.Y = oy * (d/2 + BalconyDepth/2)
		size.X, size.Y = width, BalconyDepth
	} else {
		center.Y = win.Center.Y
		center.X = ox * (w/2 + BalconyDepth/2)
		size.X, size.Y = BalconyDepth, width
	}
	return Feature{
		Name:   fmt.Sprintf("Balcony_F%03d_%03d", floor.Index, k),
		Type:   FeatureBalcony,
		Center: center,
		Size:   size,
	}
}

// cornice wraps a projecting band around a footprint just below height top
func (p *Plan) cornice(index int, fp types.Footprint, top, floorHeight float64) []Op {
	h := math.Min(CorniceHeight, floorHeight/4)
	z := top - h/2
	w, d, c := fp.Width, fp.Depth, CorniceProjection

	bands := make([]Op, 0, len(Edges))
	for _, e := range Edges {
		f := Feature{Name: fmt.Sprintf("Cornice_%02d_%s", index, e), Type: FeatureCornice}
		switch e {
		case EdgeSouth:
			f.Center, f.Size = Vec3{0, -d/2 - c/2, z}, Vec3{w + 2*c, c, h}
		case EdgeNorth:
			f.Center, f.Size = Vec3{0, d/2 + c/2, z}, Vec3{w + 2*c, c, h}
		case EdgeEast:
			f.Center, f.Size = Vec3{w/2 + c/2, 0, z}, Vec3{c, d, h}
		case EdgeWest:
			f.Center, f.Size = Vec3{-w/2 - c/2, 0, z}, Vec3{c, d, h}
		}
		bands = append(bands, f)
	}
	return bands
}
