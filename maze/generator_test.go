package maze

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOf(v uint32) *uint32 {
	return &v
}

func testConfig(width, height int, shape Shape, perfect bool, seed uint32) Config {
	return Config{
		Width:   width,
		Height:  height,
		Entry:   Position{X: 0, Y: 0},
		Exit:    Position{X: width - 1, Y: height - 1},
		Perfect: perfect,
		Seed:    seedOf(seed),
		Shape:   shape,
	}
}

// reachableEdges counts open walls between cells reachable from start.
func reachableEdges(g *Grid, start Position) (edges, cells int) {
	seen, cells := g.Reachable(start)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := Position{X: x, Y: y}
			if !seen[g.index(p)] {
				continue
			}
			for _, d := range [...]Direction{East, South} {
				if g.CanPass(p, d) {
					edges++
				}
			}
		}
	}
	return edges, cells
}

func TestConfigValidate(t *testing.T) {
	valid := testConfig(5, 5, Rectangle, true, 1)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"Zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"Negative height", func(c *Config) { c.Height = -2 }, ErrInvalidDimensions},
		{"Entry outside", func(c *Config) { c.Entry = Position{X: 5, Y: 0} }, ErrOutOfBounds},
		{"Exit outside", func(c *Config) { c.Exit = Position{X: 0, Y: -1} }, ErrOutOfBounds},
		{"Same endpoints", func(c *Config) { c.Exit = c.Entry }, ErrSameEndpoints},
		{"Unknown shape", func(c *Config) { c.Shape = "star" }, ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)

			_, err := NewGenerator(cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateScenario(t *testing.T) {
	m, err := Generate(testConfig(5, 5, Rectangle, true, 1))
	require.NoError(t, err)
	assert.Equal(t, 5, m.Grid.Width())
	assert.Equal(t, 5, m.Grid.Height())
	assert.False(t, m.EmblemStamped)
	assert.Equal(t, uint32(1), m.Seed)

	path, err := Solve(m.Grid, m.Entry, m.Exit)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Empty(t, strings.Trim(path, "NSEW"))

	end, err := WalkPath(m.Grid, Position{X: 0, Y: 0}, path)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 4, Y: 4}, end)

	again, err := Generate(testConfig(5, 5, Rectangle, true, 1))
	require.NoError(t, err)
	assert.Equal(t, m.Grid.Rows(), again.Grid.Rows())
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, shape := range Shapes {
		for _, perfect := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s perfect=%t", shape, perfect), func(t *testing.T) {
				cfg := testConfig(23, 17, shape, perfect, 4242)
				first, err := Generate(cfg)
				require.NoError(t, err)
				second, err := Generate(cfg)
				require.NoError(t, err)

				assert.Equal(t, first.Grid.Rows(), second.Grid.Rows())
				assert.Equal(t, first.Entry, second.Entry)
				assert.Equal(t, first.Exit, second.Exit)

				a, err := first.Export()
				require.NoError(t, err)
				b, err := second.Export()
				require.NoError(t, err)
				assert.Equal(t, a.Path(), b.Path())
				assert.Equal(t, a.ID(), b.ID())

				other, err := Generate(testConfig(23, 17, shape, perfect, 4243))
				require.NoError(t, err)
				assert.NotEqual(t, first.Grid.Rows(), other.Grid.Rows())
			})
		}
	}
}

func TestGenerateDrawsSeed(t *testing.T) {
	cfg := testConfig(12, 9, Rectangle, false, 0)
	cfg.Seed = nil

	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	m, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, gen.Seed(), m.Seed)

	cached, err := gen.Generate()
	require.NoError(t, err)
	assert.Same(t, m, cached)

	cfg.Seed = seedOf(gen.Seed())
	replay, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, m.Grid.Rows(), replay.Grid.Rows())
}

func TestPerfectMazeIsSpanningTree(t *testing.T) {
	for _, shape := range Shapes {
		for seed := uint32(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%s seed=%d", shape, seed), func(t *testing.T) {
				m, err := Generate(testConfig(21, 16, shape, true, seed))
				require.NoError(t, err)
				assertPairedWalls(t, m.Grid)

				edges, cells := reachableEdges(m.Grid, m.Entry)
				assert.Equal(t, cells-1, edges)
				assert.Equal(t, edges, m.Grid.OpenEdges())
				assert.Zero(t, m.HolesFilled)
				assert.Zero(t, m.LoopsAdded)

				seen, _ := m.Grid.Reachable(m.Entry)
				assert.True(t, seen[m.Grid.index(m.Exit)])

				_, err = Solve(m.Grid, m.Entry, m.Exit)
				assert.NoError(t, err)
			})
		}
	}
}

func TestPerfectRectangleReachesEveryCell(t *testing.T) {
	for _, size := range [][2]int{{2, 1}, {1, 6}, {5, 5}, {9, 7}, {30, 12}} {
		t.Run(fmt.Sprintf("%dx%d", size[0], size[1]), func(t *testing.T) {
			m, err := Generate(testConfig(size[0], size[1], Rectangle, true, 99))
			require.NoError(t, err)

			want := m.Grid.PlayableCells()
			if m.EmblemStamped {
				want -= emblemCellCount
			}
			assert.Equal(t, want, m.ReachableCells())
		})
	}
}

func TestImperfectMazeHasCycle(t *testing.T) {
	for _, shape := range Shapes {
		for seed := uint32(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%s seed=%d", shape, seed), func(t *testing.T) {
				m, err := Generate(testConfig(25, 18, shape, false, seed))
				require.NoError(t, err)
				assertPairedWalls(t, m.Grid)

				edges, cells := reachableEdges(m.Grid, m.Entry)
				assert.GreaterOrEqual(t, edges, cells)

				seen, _ := m.Grid.Reachable(m.Entry)
				assert.True(t, seen[m.Grid.index(m.Exit)])
				if shape == Rectangle {
					want := m.Grid.PlayableCells()
					if m.EmblemStamped {
						want -= emblemCellCount
					}
					assert.Equal(t, want, cells)
				}
			})
		}
	}
}

func TestFillHolesKeepsConnectivity(t *testing.T) {
	gen, err := NewGenerator(testConfig(6, 6, Rectangle, false, 7))
	require.NoError(t, err)
	gen.grid = newTestGrid(t, 6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			p := Position{X: x, Y: y}
			if x < 5 {
				require.NoError(t, gen.grid.OpenWall(p, East))
			}
			if y < 5 {
				require.NoError(t, gen.grid.OpenWall(p, South))
			}
		}
	}

	_, before := gen.grid.Reachable(Position{})
	filled := gen.fillHoles()
	_, after := gen.grid.Reachable(Position{})

	assert.Positive(t, filled)
	assert.Equal(t, before, after)
	assertPairedWalls(t, gen.grid)
	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			assert.False(t, gen.isHole(Position{X: x, Y: y}))
		}
	}
}

func TestEmblemOnShapes(t *testing.T) {
	tests := []struct {
		shape Shape
		size  int
		want  bool
	}{
		{Circle, 14, true},
		{Diamond, 14, true},
		{Circle, 13, false},
		{Diamond, 13, false},
		{Square, 14, true},
		{Square, 13, false},
		{Rectangle, 9, true},
		{Rectangle, 8, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %d", tt.shape, tt.size), func(t *testing.T) {
			m, err := Generate(testConfig(tt.size, tt.size, tt.shape, true, 3))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.EmblemStamped)

			if tt.want {
				cells, ok := EmblemCells(m.Grid, tt.shape, m.Entry, m.Exit)
				require.True(t, ok)
				for _, p := range cells {
					assert.Equal(t, Closed, m.Grid.At(p))
				}
			}

			a, err := m.Export()
			require.NoError(t, err)
			assert.True(t, a.Solved())
		})
	}
}

func TestSmallDonutStaysSolvable(t *testing.T) {
	for size := 2; size < 14; size++ {
		for _, perfect := range []bool{true, false} {
			t.Run(fmt.Sprintf("%d perfect=%t", size, perfect), func(t *testing.T) {
				m, err := Generate(testConfig(size, size, Donut, perfect, uint32(size)))
				require.NoError(t, err)
				assert.False(t, m.EmblemStamped)

				a, err := m.Export()
				require.NoError(t, err)
				require.True(t, a.Solved())
				end, err := WalkPath(m.Grid, m.Entry, a.Path())
				require.NoError(t, err)
				assert.Equal(t, m.Exit, end)
				assert.Equal(t, m.Grid.PlayableCells(), m.ReachableCells())
			})
		}
	}
}
