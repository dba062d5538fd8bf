package maze

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes {
		parsed, err := ParseShape(" " + string(s) + " ")
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseShape("")
	require.NoError(t, err)
	assert.Equal(t, Rectangle, parsed)

	parsed, err = ParseShape("Circle")
	require.NoError(t, err)
	assert.Equal(t, Circle, parsed)

	_, err = ParseShape("hexagon")
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestApplyShape(t *testing.T) {
	t.Run("Rectangle leaves the grid untouched", func(t *testing.T) {
		g := newTestGrid(t, 7, 4)
		m, err := ApplyShape(g, Rectangle, Position{X: 0, Y: 0}, Position{X: 6, Y: 3})
		require.NoError(t, err)
		assert.Same(t, g, m.Grid)
		assert.Equal(t, 28, m.Grid.PlayableCells())
		assert.False(t, m.EntryMoved)
		assert.False(t, m.ExitMoved)
	})

	t.Run("Square crops and clamps", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 10, 6), Square, Position{X: 9, Y: 0}, Position{X: 0, Y: 5})
		require.NoError(t, err)
		assert.Equal(t, 6, m.Grid.Width())
		assert.Equal(t, 6, m.Grid.Height())
		assert.Equal(t, Position{X: 5, Y: 0}, m.Entry)
		assert.Equal(t, Position{X: 0, Y: 5}, m.Exit)
		assert.True(t, m.EntryMoved)
		assert.False(t, m.ExitMoved)
		assert.Equal(t, 36, m.Grid.PlayableCells())
	})

	t.Run("Square separates clamped endpoints", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 10, 5), Square, Position{X: 8, Y: 0}, Position{X: 9, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, Position{X: 4, Y: 0}, m.Entry)
		assert.Equal(t, Position{X: 4, Y: 1}, m.Exit)
	})

	t.Run("Circle voids the corners and projects endpoints", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 14, 14), Circle, Position{X: 0, Y: 0}, Position{X: 13, Y: 13})
		require.NoError(t, err)
		assert.True(t, m.Grid.At(Position{X: 0, Y: 0}).IsVoid())
		assert.False(t, m.Grid.At(Position{X: 7, Y: 0}).IsVoid())
		assert.False(t, m.Grid.At(Position{X: 7, Y: 7}).IsVoid())
		assert.Equal(t, Position{X: 3, Y: 2}, m.Entry)
		assert.Equal(t, Position{X: 11, Y: 12}, m.Exit)
		assert.True(t, m.EntryMoved)
		assert.True(t, m.ExitMoved)
	})

	t.Run("Donut pushes endpoints out of the hole", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 15, 15), Donut, Position{X: 7, Y: 7}, Position{X: 0, Y: 7})
		require.NoError(t, err)
		assert.True(t, m.Grid.At(Position{X: 7, Y: 7}).IsVoid())
		assert.False(t, m.Grid.At(Position{X: 7, Y: 4}).IsVoid())
		assert.Equal(t, Position{X: 10, Y: 7}, m.Entry)
		assert.Equal(t, Position{X: 0, Y: 7}, m.Exit)
		assert.True(t, m.EntryMoved)
		assert.False(t, m.ExitMoved)
	})

	t.Run("Diamond uses Manhattan distance", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 14, 20), Diamond, Position{X: 0, Y: 0}, Position{X: 7, Y: 7})
		require.NoError(t, err)
		assert.Equal(t, 14, m.Grid.Height())
		assert.True(t, m.Grid.At(Position{X: 3, Y: 3}).IsVoid())
		assert.False(t, m.Grid.At(Position{X: 4, Y: 3}).IsVoid())
		assert.Equal(t, Position{X: 4, Y: 3}, m.Entry)
	})

	t.Run("Ellipse keeps the bounding box", func(t *testing.T) {
		m, err := ApplyShape(newTestGrid(t, 20, 10), Ellipse, Position{X: 0, Y: 5}, Position{X: 19, Y: 5})
		require.NoError(t, err)
		assert.Equal(t, 20, m.Grid.Width())
		assert.Equal(t, 10, m.Grid.Height())
		assert.True(t, m.Grid.At(Position{X: 0, Y: 0}).IsVoid())
		assert.False(t, m.Grid.At(Position{X: 0, Y: 5}).IsVoid())
		assert.False(t, m.EntryMoved)
	})

	t.Run("Unknown shape", func(t *testing.T) {
		_, err := ApplyShape(newTestGrid(t, 5, 5), Shape("star"), Position{}, Position{X: 1})
		assert.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("Degenerate square", func(t *testing.T) {
		_, err := ApplyShape(newTestGrid(t, 2, 1), Circle, Position{X: 0, Y: 0}, Position{X: 1, Y: 0})
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "exit", shapeErr.Field)
	})
}

func TestApplyShapeKeepsOneRegion(t *testing.T) {
	for _, shape := range Shapes {
		for size := 3; size <= 24; size++ {
			t.Run(fmt.Sprintf("%s %dx%d", shape, size, size+3), func(t *testing.T) {
				entry := Position{X: 0, Y: 0}
				exit := Position{X: size - 1, Y: size + 2}
				m, err := ApplyShape(newTestGrid(t, size, size+3), shape, entry, exit)
				require.NoError(t, err)

				assert.Len(t, playableRegions(m.Grid), 1)
				assert.True(t, m.Grid.IsPlayable(m.Entry))
				assert.True(t, m.Grid.IsPlayable(m.Exit))
				assert.NotEqual(t, m.Entry, m.Exit)
			})
		}
	}
}
