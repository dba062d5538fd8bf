package maze

import "fmt"

// Position represents the position of a cell in the maze grid.
type Position struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// String formats the position as "x,y", the artifact coordinate notation.
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Manhattan returns the Manhattan distance between two positions.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// directionBetween returns the direction of the single step from -> to.
func directionBetween(from, to Position) (Direction, bool) {
	for _, d := range Directions {
		if from.Step(d) == to {
			return d, true
		}
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
