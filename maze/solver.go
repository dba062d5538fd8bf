package maze

import (
	"fmt"
	"slices"
)

// aStar holds the search state of one Solve call.
type aStar struct {
	grid     *Grid
	entry    Position
	exit     Position
	open     []int // open node indices in insertion order
	inOpen   []bool
	closed   []bool
	g        []int // best known cost from entry, -1 when unreached
	f        []int
	cameFrom []int
}

// Solve returns the shortest path from entry to exit as a string of N, S, E
// and W moves. Among equally short paths the search takes, on every round, the
// first open node with minimal f in insertion order, expanding neighbours in
// N, E, S, W order. It returns ErrUnsolvable when exit cannot be reached.
func Solve(grid *Grid, entry, exit Position) (string, error) {
	if !grid.IsPlayable(entry) {
		return "", fmt.Errorf("entry %s: %w", entry, ErrVoidCell)
	}
	if !grid.IsPlayable(exit) {
		return "", fmt.Errorf("exit %s: %w", exit, ErrVoidCell)
	}

	s := newAStar(grid, entry, exit)
	if !s.search() {
		return "", fmt.Errorf("%w: from %s to %s", ErrUnsolvable, entry, exit)
	}
	return s.path(), nil
}

func newAStar(grid *Grid, entry, exit Position) *aStar {
	total := grid.Width() * grid.Height()
	s := &aStar{
		grid:     grid,
		entry:    entry,
		exit:     exit,
		inOpen:   make([]bool, total),
		closed:   make([]bool, total),
		g:        make([]int, total),
		f:        make([]int, total),
		cameFrom: make([]int, total),
	}
	for i := range s.g {
		s.g[i] = -1
		s.cameFrom[i] = -1
	}

	start := grid.index(entry)
	s.g[start] = 0
	s.f[start] = Manhattan(entry, exit)
	s.open = append(s.open, start)
	s.inOpen[start] = true
	return s
}

func (s *aStar) position(i int) Position {
	return Position{X: i % s.grid.Width(), Y: i / s.grid.Width()}
}

// best removes and returns the first open node with the lowest f.
func (s *aStar) best() int {
	bi := 0
	for i := 1; i < len(s.open); i++ {
		if s.f[s.open[i]] < s.f[s.open[bi]] {
			bi = i
		}
	}
	node := s.open[bi]
	s.open = slices.Delete(s.open, bi, bi+1)
	s.inOpen[node] = false
	return node
}

func (s *aStar) search() bool {
	target := s.grid.index(s.exit)
	for len(s.open) > 0 {
		current := s.best()
		s.closed[current] = true
		if current == target {
			return true
		}

		cur := s.position(current)
		for _, d := range Directions {
			if !s.grid.CanPass(cur, d) {
				continue
			}
			next := s.grid.index(cur.Step(d))
			if s.closed[next] {
				continue
			}

			tentative := s.g[current] + 1
			if s.g[next] >= 0 && tentative >= s.g[next] {
				continue
			}
			s.cameFrom[next] = current
			s.g[next] = tentative
			s.f[next] = tentative + Manhattan(cur.Step(d), s.exit)
			if !s.inOpen[next] {
				s.open = append(s.open, next)
				s.inOpen[next] = true
			}
		}
	}
	return false
}

// path walks cameFrom back from exit and returns the moves entry -> exit.
func (s *aStar) path() string {
	var moves []byte
	for current := s.grid.index(s.exit); s.cameFrom[current] >= 0; current = s.cameFrom[current] {
		d, _ := directionBetween(s.position(s.cameFrom[current]), s.position(current))
		moves = append(moves, d.Letter())
	}
	slices.Reverse(moves)
	return string(moves)
}

// WalkPath replays path from start over open walls and returns where it ends.
func WalkPath(grid *Grid, start Position, path string) (Position, error) {
	if !grid.IsPlayable(start) {
		return start, fmt.Errorf("start %s: %w", start, ErrVoidCell)
	}
	p := start
	for i := 0; i < len(path); i++ {
		d, ok := DirectionFromLetter(path[i])
		if !ok {
			return p, fmt.Errorf("%w: character %q at %d", ErrInvalidPath, path[i], i)
		}
		if !grid.CanPass(p, d) {
			return p, fmt.Errorf("%w: move %d (%c) from %s hits a wall", ErrInvalidPath, i, path[i], p)
		}
		p = p.Step(d)
	}
	return p, nil
}
