package maze

import "fmt"

// Direction is one of the four cardinal directions a wall can face.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions in the order every traversal uses.
var Directions = [...]Direction{North, East, South, West}

var directionDeltas = [...]Position{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Bit returns the wall bit of the direction inside a cell mask.
func (d Direction) Bit() Cell {
	return 1 << d
}

// Opposite returns the direction facing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the unit offset of one step in the direction.
func (d Direction) Delta() Position {
	return directionDeltas[d]
}

// Letter returns the compass letter used in solution paths.
func (d Direction) Letter() byte {
	return "NESW"[d]
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// DirectionFromLetter maps a compass letter back to a direction.
func DirectionFromLetter(l byte) (Direction, bool) {
	switch l {
	case 'N':
		return North, true
	case 'E':
		return East, true
	case 'S':
		return South, true
	case 'W':
		return West, true
	default:
		return 0, false
	}
}

// Cell is the wall mask of a single grid cell.
// Bit 0 is the north wall, bit 1 east, bit 2 south and bit 3 west; a set bit
// means the wall is present. Void marks a cell outside the playable shape and
// is never combined with wall bits.
type Cell uint8

const (
	Open   Cell = 0x0    // Open has no walls.
	Closed Cell = 0xF    // Closed has all four walls.
	Void   Cell = 1 << 7 // Void is outside the shape.
)

// IsVoid reports whether the cell lies outside the playable shape.
func (c Cell) IsVoid() bool {
	return c == Void
}

// HasWall reports whether the wall facing d is present. Void cells have no walls.
func (c Cell) HasWall(d Direction) bool {
	return !c.IsVoid() && c&d.Bit() != 0
}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c Cell) HasNorthWall() bool {
	return c.HasWall(North)
}

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c Cell) HasEastWall() bool {
	return c.HasWall(East)
}

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c Cell) HasSouthWall() bool {
	return c.HasWall(South)
}

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c Cell) HasWestWall() bool {
	return c.HasWall(West)
}

// Openings counts the absent walls of the cell.
func (c Cell) Openings() int {
	if c.IsVoid() {
		return 0
	}
	n := 0
	for _, d := range Directions {
		if !c.HasWall(d) {
			n++
		}
	}
	return n
}

const hexDigits = "0123456789ABCDEF"

// Char returns the artifact character of the cell: an uppercase hex digit, or a
// space for void cells.
func (c Cell) Char() byte {
	if c.IsVoid() {
		return ' '
	}
	return hexDigits[c&Closed]
}

// CellFromChar parses an artifact character back into a cell.
func CellFromChar(ch byte) (Cell, error) {
	switch {
	case ch == ' ':
		return Void, nil
	case ch >= '0' && ch <= '9':
		return Cell(ch - '0'), nil
	case ch >= 'A' && ch <= 'F':
		return Cell(ch-'A') + 10, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellChar, ch)
	}
}
