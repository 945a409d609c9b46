package layout

import (
	"math"
	"testing"

	"github.com/jonathan/architect-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specWith(mod func(*types.BuildingSpecification)) types.BuildingSpecification {
	s := types.Defaults()
	if mod != nil {
		mod(&s)
	}
	return s
}

func opsOf[T Op](ops []Op) []T {
	var out []T
	for _, op := range ops {
		if v, ok := op.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestFloorIntervals(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		height float64
	}{
		{"single floor", 1, 3.5},
		{"default", 5, 3.5},
		{"office tower", 20, 3.3},
		{"awkward height", 200, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floors := FloorIntervals(tt.n, tt.height)
			require.Len(t, floors, tt.n)
			assert.Equal(t, 0.0, floors[0].Base)
			for i := 1; i < len(floors); i++ {
				assert.Equal(t, floors[i-1].Top, floors[i].Base, "floor %d must start where %d ends", i, i-1)
				assert.Greater(t, floors[i].Top, floors[i].Base)
			}
			assert.Equal(t, float64(tt.n)*tt.height, floors[tt.n-1].Top)
		})
	}
}

func TestFrontEdge(t *testing.T) {
	tests := []struct {
		name     string
		fp       types.Footprint
		expected Edge
	}{
		{"wide", types.Footprint{Width: 30, Depth: 20}, EdgeSouth},
		{"square", types.Footprint{Width: 20, Depth: 20}, EdgeSouth},
		{"deep", types.Footprint{Width: 10, Depth: 40}, EdgeWest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FrontEdge(tt.fp))
		})
	}
}

func TestTileEdge(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		bay    float64
		count  int
		margin float64
		used   float64
	}{
		{"exact fit", 30, 3, 10, 0, 3},
		{"remainder split", 20, 3, 6, 1, 3},
		{"shorter than a bay", 2, 3, 0, 1, 3},
		{"ribbon", 15, 6, 2, 1.5, 6},
		{"zero length", 0, 3, 0, 0, 3},
		{"exactly the cap", 48, 3, MaxBaysPerEdge, 0, 3},
		{"long wall stretches the bay", 999.5, 3, MaxBaysPerEdge, 0, 999.5 / MaxBaysPerEdge},
		{"long curtain wall", 100, 1.5, MaxBaysPerEdge, 0, 6.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiling := TileEdge(tt.length, tt.bay)
			assert.Equal(t, tt.count, tiling.Count)
			assert.InDelta(t, tt.margin, tiling.Margin, 1e-9)
			assert.InDelta(t, tt.used, tiling.Bay, 1e-9)
			require.Len(t, tiling.Centers, tt.count)
			for k, c := range tiling.Centers {
				expected := -tt.length/2 + tt.margin + (float64(k)+0.5)*tt.used
				assert.InDelta(t, expected, c, 1e-9)
				if k > 0 {
					assert.Greater(t, c, tiling.Centers[k-1])
				}
			}
		})
	}
}

func TestBuild_OpOrder(t *testing.T) {
	spec := specWith(func(s *types.BuildingSpecification) {
		s.FloorCount = 3
		s.Extras = []types.Extra{types.ExtraBalconies, types.ExtraCornices}
	})
	plan, err := Build(spec)
	require.NoError(t, err)

	rank := map[OpKind]int{}
	kinds := make([]OpKind, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		kinds = append(kinds, op.Kind())
	}

	// floors come first, each opening with a slab followed by its four walls
	slabs := 0
	for i, k := range kinds {
		if k == KindFloorSlab {
			require.Less(t, i+4, len(kinds))
			for j := 1; j <= 4; j++ {
				assert.Equal(t, KindWallSegment, kinds[i+j])
			}
			slabs++
		}
	}
	assert.Equal(t, 3, slabs)

	// after the floors: entrance, features, roof
	for i, k := range kinds {
		if _, seen := rank[k]; !seen {
			rank[k] = i
		}
	}
	assert.Less(t, rank[KindWindowOpening], rank[KindEntranceFeature])
	assert.Less(t, rank[KindEntranceFeature], rank[KindFacadeFeature])
	assert.Equal(t, KindRoofForm, kinds[len(kinds)-1])

	walls := opsOf[Wall](plan.Ops)
	require.Len(t, walls, 12)
	for i, w := range walls {
		assert.Equal(t, Edges[i%4], w.Edge)
	}
}

func TestBuild_VocabularyIsClosed(t *testing.T) {
	allowed := map[OpKind]bool{}
	for _, k := range Vocabulary {
		allowed[k] = true
	}

	for _, roof := range types.RoofTypes {
		for _, pattern := range types.WindowPatterns {
			spec := specWith(func(s *types.BuildingSpecification) {
				s.RoofType = roof
				s.WindowPattern = pattern
				s.Extras = []types.Extra{types.ExtraBalconies, types.ExtraCornices, types.ExtraSetbacks}
			})
			plan, err := Build(spec)
			require.NoError(t, err)
			for _, op := range plan.Ops {
				assert.True(t, allowed[op.Kind()], "unexpected op kind %s", op.Kind())
			}
		}
	}
}

func TestBuild_WindowsStayInsideWalls(t *testing.T) {
	for _, pattern := range types.WindowPatterns {
		t.Run(string(pattern), func(t *testing.T) {
			spec := specWith(func(s *types.BuildingSpecification) {
				s.WindowPattern = pattern
				s.Footprint = types.Footprint{Width: 23, Depth: 11}
			})
			plan, err := Build(spec)
			require.NoError(t, err)

			walls := map[string]Wall{}
			for _, w := range opsOf[Wall](plan.Ops) {
				walls[w.Name] = w
			}
			for _, win := range opsOf[Window](plan.Ops) {
				wall, ok := walls[win.Wall]
				require.True(t, ok, "window %s references unknown wall", win.Name)
				along := win.Center.X - wall.Center.X
				if wall.Axis == AxisY {
					along = win.Center.Y - wall.Center.Y
				}
				assert.LessOrEqual(t, math.Abs(along)+win.Width/2, wall.Length/2+1e-9)
				assert.Less(t, win.Height, wall.Height)
				assert.Greater(t, win.Center.Z-win.Height/2, wall.Center.Z)
				assert.Less(t, win.Center.Z+win.Height/2, wall.Center.Z+wall.Height)
			}
		})
	}
}

func TestBuild_EntranceDoesNotOverlapWindows(t *testing.T) {
	for _, entrance := range types.EntranceTypes {
		for _, fp := range []types.Footprint{{Width: 30, Depth: 20}, {Width: 12, Depth: 40}} {
			spec := specWith(func(s *types.BuildingSpecification) {
				s.EntranceType = entrance
				s.Footprint = fp
				s.WindowPattern = types.WindowCurtainContinuous
			})
			plan, err := Build(spec)
			require.NoError(t, err)

			entrances := opsOf[Entrance](plan.Ops)
			require.Len(t, entrances, 1)
			e := entrances[0]
			assert.Equal(t, FrontEdge(fp), e.Edge)
			assert.LessOrEqual(t, e.Height, EntranceMaxHeight)

			for _, win := range opsOf[Window](plan.Ops) {
				if win.Floor != 0 || win.Edge != e.Edge {
					continue
				}
				offset := win.Center.X - e.Center.X
				if e.Axis == AxisY {
					offset = win.Center.Y - e.Center.Y
				}
				assert.GreaterOrEqual(t, math.Abs(offset), (win.Width+e.Width)/2,
					"window %s overlaps the %s entrance", win.Name, entrance)
			}
		}
	}
}

func TestBuild_Extras(t *testing.T) {
	t.Run("no extras means no features", func(t *testing.T) {
		plan, err := Build(types.Defaults())
		require.NoError(t, err)
		assert.Empty(t, opsOf[Feature](plan.Ops))
	})

	t.Run("balconies under upper front windows", func(t *testing.T) {
		spec := specWith(func(s *types.BuildingSpecification) {
			s.Extras = []types.Extra{types.ExtraBalconies}
		})
		plan, err := Build(spec)
		require.NoError(t, err)

		front := 0
		for _, win := range opsOf[Window](plan.Ops) {
			if win.Floor >= 1 && win.Edge == plan.Front {
				front++
			}
		}
		balconies := opsOf[Feature](plan.Ops)
		assert.Len(t, balconies, front)
		for _, b := range balconies {
			assert.Equal(t, FeatureBalcony, b.Type)
			assert.Equal(t, BalconyDepth, b.Size.Y)
			assert.Less(t, b.Center.Y, -spec.Footprint.Depth/2)
		}
	})

	t.Run("cornices on short and tall buildings", func(t *testing.T) {
		for _, tc := range []struct {
			floors int
			bands  int
		}{{2, 4}, {3, 8}} {
			spec := specWith(func(s *types.BuildingSpecification) {
				s.FloorCount = tc.floors
				s.Extras = []types.Extra{types.ExtraCornices}
			})
			plan, err := Build(spec)
			require.NoError(t, err)
			assert.Len(t, opsOf[Feature](plan.Ops), tc.bands)
		}
	})

	t.Run("setbacks inset the upper third", func(t *testing.T) {
		spec := specWith(func(s *types.BuildingSpecification) {
			s.FloorCount = 9
			s.Extras = []types.Extra{types.ExtraSetbacks}
		})
		plan, err := Build(spec)
		require.NoError(t, err)

		for _, floor := range plan.Floors {
			if floor.Index >= 6 {
				assert.Equal(t, spec.Footprint.Width-2*SetbackInset, floor.Footprint.Width)
			} else {
				assert.Equal(t, spec.Footprint, floor.Footprint)
			}
		}
		roofs := opsOf[Roof](plan.Ops)
		require.Len(t, roofs, 1)
		for _, v := range roofs[0].Mesh.Vertices {
			assert.LessOrEqual(t, math.Abs(v.X), (spec.Footprint.Width-2*SetbackInset)/2+1e-9)
		}
	})

	t.Run("setbacks skipped when the footprint is too small", func(t *testing.T) {
		spec := specWith(func(s *types.BuildingSpecification) {
			s.Footprint = types.Footprint{Width: 6, Depth: 6}
			s.Extras = []types.Extra{types.ExtraSetbacks}
		})
		plan, err := Build(spec)
		require.NoError(t, err)
		for _, floor := range plan.Floors {
			assert.Equal(t, spec.Footprint, floor.Footprint)
		}
	})
}

func TestBuild_OpCountBoundedAtMaximumSize(t *testing.T) {
	spec := specWith(func(s *types.BuildingSpecification) {
		s.FloorCount = types.MaxFloorCount
		s.Footprint = types.Footprint{Width: types.MaxFootprintDimension, Depth: types.MaxFootprintDimension}
		s.WindowPattern = types.WindowCurtainContinuous
		s.Extras = []types.Extra{types.ExtraBalconies, types.ExtraCornices}
	})
	plan, err := Build(spec)
	require.NoError(t, err)

	n := spec.FloorCount
	bound := n*(1+4+4*MaxBaysPerEdge) + 1 + (n-1)*MaxBaysPerEdge + 2*len(Edges) + 1
	assert.LessOrEqual(t, len(plan.Ops), bound)

	windows := opsOf[Window](plan.Ops)
	perWall := map[string]int{}
	for _, w := range windows {
		perWall[w.Wall]++
	}
	for wall, count := range perWall {
		assert.LessOrEqual(t, count, MaxBaysPerEdge, wall)
	}
}

func TestBuild_DegenerateFootprint(t *testing.T) {
	spec := specWith(func(s *types.BuildingSpecification) {
		s.FloorCount = 1
		s.Footprint = types.Footprint{Width: 0.5, Depth: 0.4}
		s.FloorHeight = 0.2
	})
	plan, err := Build(spec)
	require.NoError(t, err)

	assert.Empty(t, opsOf[Window](plan.Ops))
	for _, w := range opsOf[Wall](plan.Ops) {
		assert.Greater(t, w.Length, 0.0)
		assert.Greater(t, w.Height, 0.0)
	}
	e := opsOf[Entrance](plan.Ops)[0]
	assert.Greater(t, e.Width, 0.0)
	assert.Greater(t, e.Height, 0.0)
}

func TestBuildRoof(t *testing.T) {
	tests := []struct {
		kind  types.RoofType
		w, d  float64
		pitch float64
		verts int
	}{
		{types.RoofFlatParapet, 20, 15, 0, 16},
		{types.RoofGabled, 20, 15, GabledPitch, 6},
		{types.RoofGabled, 10, 30, GabledPitch, 6},
		{types.RoofHipped, 20, 15, HippedPitch, 6},
		{types.RoofHipped, 15, 15, HippedPitch, 5},
		{types.RoofMansard, 20, 15, MansardPitch, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			roof, ok := BuildRoof(tt.kind, tt.w, tt.d, 10)
			require.True(t, ok)
			assert.Equal(t, "Roof", roof.Name)
			assert.Equal(t, tt.pitch, roof.Pitch)
			require.Len(t, roof.Mesh.Vertices, tt.verts)

			for _, v := range roof.Mesh.Vertices {
				assert.GreaterOrEqual(t, v.Z, 10.0)
				assert.LessOrEqual(t, math.Abs(v.X), tt.w/2+1e-9)
				assert.LessOrEqual(t, math.Abs(v.Y), tt.d/2+1e-9)
			}
			for _, face := range roof.Mesh.Faces {
				assert.GreaterOrEqual(t, len(face), 3)
				for _, idx := range face {
					assert.GreaterOrEqual(t, idx, 0)
					assert.Less(t, idx, len(roof.Mesh.Vertices))
				}
			}
		})
	}

	_, ok := BuildRoof(types.RoofType("dome"), 10, 10, 0)
	assert.False(t, ok)
}

func TestBuild_Deterministic(t *testing.T) {
	spec := specWith(func(s *types.BuildingSpecification) {
		s.FloorCount = 12
		s.RoofType = types.RoofMansard
		s.Extras = []types.Extra{types.ExtraBalconies, types.ExtraCornices, types.ExtraSetbacks}
	})
	first, err := Build(spec)
	require.NoError(t, err)
	second, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
