package maze

const (
	emblemMinWidth      = 9
	emblemMinHeight     = 7
	emblemMinShapedSide = 14
	emblemCellCount     = 18
)

// emblemOffsets draws "42" around the grid center, one offset per solid cell.
var emblemOffsets = [emblemCellCount]Position{
	// 4
	{X: -3, Y: -2}, {X: -3, Y: -1}, {X: -3, Y: 0}, {X: -2, Y: 0},
	{X: -1, Y: 0}, {X: -1, Y: 1}, {X: -1, Y: 2},
	// 2
	{X: 1, Y: -2}, {X: 2, Y: -2}, {X: 3, Y: -2}, {X: 3, Y: -1},
	{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2},
}

// EmblemCells returns the cells the emblem would occupy on g, or false when it
// cannot be stamped: the grid is too small for the shape, an emblem cell is
// void, or entry or exit lies on the emblem. The emblem is all or nothing.
func EmblemCells(g *Grid, shape Shape, entry, exit Position) ([]Position, bool) {
	if g.Width() < emblemMinWidth || g.Height() < emblemMinHeight {
		return nil, false
	}
	if shape != Rectangle && (g.Width() < emblemMinShapedSide || g.Height() < emblemMinShapedSide) {
		return nil, false
	}

	center := Position{X: g.Width() / 2, Y: g.Height() / 2}
	cells := make([]Position, 0, emblemCellCount)
	for _, off := range emblemOffsets {
		p := Position{X: center.X + off.X, Y: center.Y + off.Y}
		if p == entry || p == exit || !g.IsPlayable(p) {
			return nil, false
		}
		cells = append(cells, p)
	}
	return cells, true
}

// sealEmblem forces every emblem cell fully walled and restores the facing
// wall on each playable neighbour, so no passage leads into the emblem.
func sealEmblem(g *Grid, cells []Position) {
	for _, p := range cells {
		g.Set(p, Closed)
		for _, d := range Directions {
			n, ok := g.Neighbor(p, d)
			if !ok {
				continue
			}
			g.Set(n, g.At(n)|d.Opposite().Bit())
		}
	}
}
