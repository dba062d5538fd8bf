/*
Package maze generates and solves grid mazes.

A maze is a rectangular Grid of wall masks, optionally masked into a shape
(square, circle, donut, diamond or ellipse). Cells outside the shape are void.
The Generator carves the grid with a seeded randomized depth-first search,
optionally adding loops for imperfect mazes, and Solve computes the shortest
N/S/E/W path between entry and exit with A*.

Generation is fully deterministic for a given seed and Config.
*/
package maze

import (
	"fmt"
	"strings"
)

// Grid is a rectangular array of cell wall masks stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns a fully walled grid of the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Closed
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// GridFromRows builds a grid from artifact rows of hex digits and spaces.
func GridFromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidDimensions)
	}

	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, y, len(row), g.width)
		}
		for x := 0; x < len(row); x++ {
			c, err := CellFromChar(row[x])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			g.cells[y*g.width+x] = c
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether p lies inside the grid rectangle.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p. Positions outside the grid read as void.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return Void
	}
	return g.cells[g.index(p)]
}

// Set overwrites the cell at p without touching its neighbours.
func (g *Grid) Set(p Position, c Cell) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = c
	}
}

// IsPlayable reports whether p is inside the grid and not void.
func (g *Grid) IsPlayable(p Position) bool {
	return g.InBounds(p) && !g.cells[g.index(p)].IsVoid()
}

// Neighbor returns the playable cell next to p in direction d.
func (g *Grid) Neighbor(p Position, d Direction) (Position, bool) {
	n := p.Step(d)
	if !g.IsPlayable(n) {
		return Position{}, false
	}
	return n, true
}

// CanPass reports whether the wall between p and its neighbour in direction d
// is open on both sides.
func (g *Grid) CanPass(p Position, d Direction) bool {
	n, ok := g.Neighbor(p, d)
	if !ok || !g.IsPlayable(p) {
		return false
	}
	return !g.At(p).HasWall(d) && !g.At(n).HasWall(d.Opposite())
}

// OpenWall removes the wall between p and its neighbour in direction d,
// clearing the facing bit on both cells.
func (g *Grid) OpenWall(p Position, d Direction) error {
	n, err := g.pair(p, d)
	if err != nil {
		return err
	}
	g.cells[g.index(p)] &^= d.Bit()
	g.cells[g.index(n)] &^= d.Opposite().Bit()
	return nil
}

// CloseWall restores the wall between p and its neighbour in direction d on
// both cells.
func (g *Grid) CloseWall(p Position, d Direction) error {
	n, err := g.pair(p, d)
	if err != nil {
		return err
	}
	g.cells[g.index(p)] |= d.Bit()
	g.cells[g.index(n)] |= d.Opposite().Bit()
	return nil
}

func (g *Grid) pair(p Position, d Direction) (Position, error) {
	if !g.IsPlayable(p) {
		return Position{}, fmt.Errorf("%w: %s", ErrVoidCell, p)
	}
	n, ok := g.Neighbor(p, d)
	if !ok {
		return Position{}, fmt.Errorf("%w: no playable cell %s of %s", ErrVoidCell, d, p)
	}
	return n, nil
}

// PlayableCells counts the non-void cells.
func (g *Grid) PlayableCells() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsVoid() {
			n++
		}
	}
	return n
}

// OpenEdges counts the passable walls, each shared wall counted once.
func (g *Grid) OpenEdges() int {
	n := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Position{X: x, Y: y}
			if g.CanPass(p, East) {
				n++
			}
			if g.CanPass(p, South) {
				n++
			}
		}
	}
	return n
}

// Reachable returns a row-major mask of the cells reachable from start
// through open walls, and their count.
func (g *Grid) Reachable(start Position) ([]bool, int) {
	seen := make([]bool, len(g.cells))
	if !g.IsPlayable(start) {
		return seen, 0
	}

	queue := []Position{start}
	seen[g.index(start)] = true
	for qi := 0; qi < len(queue); qi++ {
		p := queue[qi]
		for _, d := range Directions {
			if !g.CanPass(p, d) {
				continue
			}
			n := p.Step(d)
			if !seen[g.index(n)] {
				seen[g.index(n)] = true
				queue = append(queue, n)
			}
		}
	}
	return seen, len(queue)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Rows returns the artifact text of every row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	buf := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf[x] = g.cells[y*g.width+x].Char()
		}
		rows[y] = string(buf)
	}
	return rows
}

// String provides an ASCII drawing of the maze.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < g.width; x++ {
		if g.At(Position{X: x, Y: 0}).HasNorthWall() {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < g.height; y++ {
		// Cell rows
		if g.At(Position{X: 0, Y: y}).HasWestWall() {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < g.width; x++ {
			cell := g.At(Position{X: x, Y: y})
			switch {
			case cell.IsVoid():
				output.WriteString("...")
			case cell == Closed:
				output.WriteString("###")
			default:
				output.WriteString("   ")
			}
			if cell.HasEastWall() || g.At(Position{X: x + 1, Y: y}).HasWestWall() {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < g.width; x++ {
			if g.At(Position{X: x, Y: y}).HasSouthWall() || g.At(Position{X: x, Y: y + 1}).HasNorthWall() {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}

func (g *Grid) index(p Position) int {
	return p.Y*g.width + p.X
}

// pathExists reports whether b can be reached from a through open walls.
func (g *Grid) pathExists(a, b Position) bool {
	if a == b {
		return true
	}
	seen := make([]bool, len(g.cells))
	queue := []Position{a}
	seen[g.index(a)] = true
	for qi := 0; qi < len(queue); qi++ {
		for _, d := range Directions {
			if !g.CanPass(queue[qi], d) {
				continue
			}
			n := queue[qi].Step(d)
			if n == b {
				return true
			}
			if !seen[g.index(n)] {
				seen[g.index(n)] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}
