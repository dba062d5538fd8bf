package maze

import (
	"fmt"
	"math"
	"strings"
)

// Shape identifies the outline a maze is masked into.
type Shape string

// Supported shapes.
const (
	Rectangle Shape = "rectangle"
	Square    Shape = "square"
	Circle    Shape = "circle"
	Donut     Shape = "donut"
	Diamond   Shape = "diamond"
	Ellipse   Shape = "ellipse"
)

// Shapes lists every supported shape.
var Shapes = []Shape{Rectangle, Square, Circle, Donut, Diamond, Ellipse}

// ParseShape parses a shape name case-insensitively. An empty name is a rectangle.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Rectangle, nil
	}
	for _, s := range Shapes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShape, name)
}

// squareBased reports whether the shape lives in a min(width,height) square.
func (s Shape) squareBased() bool {
	return s == Square || s == Circle || s == Donut || s == Diamond
}

// Curved reports whether the shape voids cells of its bounding box.
func (s Shape) Curved() bool {
	return s == Circle || s == Donut || s == Diamond || s == Ellipse
}

// Masked is the outcome of applying a shape to a grid.
type Masked struct {
	Grid       *Grid
	Entry      Position
	Exit       Position
	EntryMoved bool
	ExitMoved  bool
}

// ApplyShape masks g into shape, voiding the cells outside it, and moves entry
// and exit onto playable cells when the mask removed them. The returned grid may
// be smaller than g (square-based shapes crop to min(width,height)).
func ApplyShape(g *Grid, shape Shape, entry, exit Position) (*Masked, error) {
	if _, err := ParseShape(string(shape)); err != nil {
		return nil, err
	}
	if shape == "" {
		shape = Rectangle
	}

	m := &Masked{Grid: g, Entry: entry, Exit: exit}
	if shape == Rectangle {
		return m, nil
	}

	if shape.squareBased() {
		m.cropSquare()
		if m.Entry == m.Exit {
			if err := m.displaceExit(shape); err != nil {
				return nil, err
			}
		}
	}

	if !shape.Curved() {
		return m, nil
	}

	m.voidOutside(shape)

	var err error
	if m.Entry, err = m.project(shape, m.Entry, "entry", &m.EntryMoved); err != nil {
		return nil, err
	}
	if m.Exit, err = m.project(shape, m.Exit, "exit", &m.ExitMoved); err != nil {
		return nil, err
	}
	if m.Entry == m.Exit {
		if err := m.displaceExit(shape); err != nil {
			return nil, err
		}
	}

	if err := m.pruneIslands(shape); err != nil {
		return nil, err
	}
	return m, nil
}

// cropSquare shrinks the grid to its top-left min(width,height) square and
// clamps both endpoints into it.
func (m *Masked) cropSquare() {
	size := min(m.Grid.Width(), m.Grid.Height())
	if size == m.Grid.Width() && size == m.Grid.Height() {
		return
	}

	square, _ := NewGrid(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Position{X: x, Y: y}
			square.Set(p, m.Grid.At(p))
		}
	}
	m.Grid = square

	clamp := func(p Position) Position {
		return Position{X: min(max(p.X, 0), size-1), Y: min(max(p.Y, 0), size-1)}
	}
	if e := clamp(m.Entry); e != m.Entry {
		m.Entry, m.EntryMoved = e, true
	}
	if e := clamp(m.Exit); e != m.Exit {
		m.Exit, m.ExitMoved = e, true
	}
}

// shapeGeometry holds the measurements a shape test needs.
type shapeGeometry struct {
	center Position
	radius int
	inner  int
	rx, ry int
}

func geometryOf(g *Grid, shape Shape) shapeGeometry {
	if shape == Ellipse {
		return shapeGeometry{
			center: Position{X: g.Width() / 2, Y: g.Height() / 2},
			rx:     g.Width() / 2,
			ry:     g.Height() / 2,
		}
	}
	size := min(g.Width(), g.Height())
	return shapeGeometry{
		center: Position{X: size / 2, Y: size / 2},
		radius: size / 2,
		inner:  size / 5,
	}
}

// outside reports whether p falls beyond the outer boundary of the shape.
func (sg shapeGeometry) outside(shape Shape, p Position) bool {
	dx, dy := p.X-sg.center.X, p.Y-sg.center.Y
	switch shape {
	case Circle, Donut:
		return math.Hypot(float64(dx), float64(dy)) > float64(sg.radius)
	case Diamond:
		return abs(dx)+abs(dy) > sg.radius
	case Ellipse:
		if sg.rx == 0 || sg.ry == 0 {
			return false
		}
		nx := float64(dx*dx) / float64(sg.rx*sg.rx)
		ny := float64(dy*dy) / float64(sg.ry*sg.ry)
		return nx+ny > 1
	default:
		return false
	}
}

// inHole reports whether p falls inside the donut hole.
func (sg shapeGeometry) inHole(shape Shape, p Position) bool {
	if shape != Donut || sg.inner == 0 {
		return false
	}
	dx, dy := p.X-sg.center.X, p.Y-sg.center.Y
	return math.Hypot(float64(dx), float64(dy)) < float64(sg.inner)
}

func (m *Masked) voidOutside(shape Shape) {
	sg := geometryOf(m.Grid, shape)
	for y := 0; y < m.Grid.Height(); y++ {
		for x := 0; x < m.Grid.Width(); x++ {
			p := Position{X: x, Y: y}
			if sg.outside(shape, p) || sg.inHole(shape, p) {
				m.Grid.Set(p, Void)
			}
		}
	}
}

// project walks a void endpoint one axis at a time, alternating x and y, toward
// the shape center, or away from it when it sits in the donut hole, until it
// reaches a playable cell.
func (m *Masked) project(shape Shape, p Position, field string, moved *bool) (Position, error) {
	if m.Grid.IsPlayable(p) {
		return p, nil
	}

	sg := geometryOf(m.Grid, shape)
	away := sg.inHole(shape, p)
	limit := 2 * (m.Grid.Width() + m.Grid.Height())
	for step := 0; step < limit; step++ {
		stepX := step%2 == 0
		var dx, dy int
		if away {
			dx, dy = sign(p.X-sg.center.X), sign(p.Y-sg.center.Y)
			if dx == 0 && dy == 0 {
				dx = 1
			}
		} else {
			dx, dy = sign(sg.center.X-p.X), sign(sg.center.Y-p.Y)
		}

		switch {
		case stepX && dx != 0:
			p.X += dx
		case !stepX && dy != 0:
			p.Y += dy
		default:
			continue
		}

		if m.Grid.IsPlayable(p) {
			*moved = true
			return p, nil
		}
		if !m.Grid.InBounds(p) {
			break
		}
	}
	return Position{}, &ShapeError{Shape: shape, Field: field, Err: ErrNoPlayableCell}
}

// displaceExit moves the exit to its first playable neighbour (N, E, S, W)
// that is not the entry.
func (m *Masked) displaceExit(shape Shape) error {
	for _, d := range Directions {
		n, ok := m.Grid.Neighbor(m.Exit, d)
		if ok && n != m.Entry {
			m.Exit, m.ExitMoved = n, true
			return nil
		}
	}
	return &ShapeError{Shape: shape, Field: "exit", Err: ErrSameEndpoints}
}

// pruneIslands voids every playable cell that is not 4-connected to the region
// kept for the maze, and moves the endpoints into that region. The region is
// the one holding the entry, or the largest one when the entry's region has a
// single cell.
func (m *Masked) pruneIslands(shape Shape) error {
	regions := playableRegions(m.Grid)
	if len(regions) == 0 {
		return &ShapeError{Shape: shape, Field: "entry", Err: ErrNoPlayableCell}
	}

	keep := -1
	largest := 0
	for i, r := range regions {
		if len(r) > len(regions[largest]) {
			largest = i
		}
		for _, p := range r {
			if p == m.Entry {
				keep = i
			}
		}
	}
	if keep < 0 || len(regions[keep]) < 2 {
		keep = largest
	}
	if len(regions[keep]) < 2 {
		return &ShapeError{Shape: shape, Field: "exit", Err: ErrNoPlayableCell}
	}

	inRegion := make(map[Position]struct{}, len(regions[keep]))
	for _, p := range regions[keep] {
		inRegion[p] = struct{}{}
	}
	for i, r := range regions {
		if i == keep {
			continue
		}
		for _, p := range r {
			m.Grid.Set(p, Void)
		}
	}

	if _, ok := inRegion[m.Entry]; !ok {
		m.Entry, m.EntryMoved = nearest(regions[keep], m.Entry, Position{X: -1, Y: -1}), true
	}
	if _, ok := inRegion[m.Exit]; !ok || m.Exit == m.Entry {
		m.Exit, m.ExitMoved = nearest(regions[keep], m.Exit, m.Entry), true
	}
	return nil
}

// nearest returns the cell of region closest to p in Manhattan distance,
// skipping exclude. Ties go to the cell discovered first.
func nearest(region []Position, p, exclude Position) Position {
	best := Position{X: -1, Y: -1}
	bestDist := -1
	for _, c := range region {
		if c == exclude {
			continue
		}
		if d := Manhattan(c, p); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// playableRegions groups playable cells into 4-connected regions, ignoring walls.
func playableRegions(g *Grid) [][]Position {
	seen := make([]bool, g.Width()*g.Height())
	var regions [][]Position

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			start := Position{X: x, Y: y}
			if !g.IsPlayable(start) || seen[g.index(start)] {
				continue
			}
			seen[g.index(start)] = true
			queue := []Position{start}
			for qi := 0; qi < len(queue); qi++ {
				for _, d := range Directions {
					n, ok := g.Neighbor(queue[qi], d)
					if !ok || seen[g.index(n)] {
						continue
					}
					seen[g.index(n)] = true
					queue = append(queue, n)
				}
			}
			regions = append(regions, queue)
		}
	}
	return regions
}
