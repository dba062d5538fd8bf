package maze

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// visitState tracks a cell during carving.
type visitState uint8

const (
	unvisited visitState = iota
	visited
	voided
)

// Config describes the maze to generate.
type Config struct {
	Width   int      // Number of columns requested
	Height  int      // Number of rows requested
	Entry   Position // Entry cell
	Exit    Position // Exit cell
	Perfect bool     // Perfect mazes have exactly one path between any two cells
	Seed    *uint32  // Optional seed; one is drawn when nil
	Shape   Shape    // Outline of the maze, rectangle when empty
}

// Validate checks the configuration before any grid is allocated.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	inBound := func(p Position) bool {
		return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
	}
	if !inBound(c.Entry) {
		return fmt.Errorf("entry %s: %w", c.Entry, ErrOutOfBounds)
	}
	if !inBound(c.Exit) {
		return fmt.Errorf("exit %s: %w", c.Exit, ErrOutOfBounds)
	}
	if c.Entry == c.Exit {
		return ErrSameEndpoints
	}
	if _, err := ParseShape(string(c.Shape)); err != nil {
		return err
	}
	return nil
}

// Maze is a carved grid together with what generation decided about it.
type Maze struct {
	Grid          *Grid
	Entry         Position
	Exit          Position
	Seed          uint32
	Shape         Shape
	Perfect       bool
	EmblemStamped bool // the emblem fit and was stamped
	EntryMoved    bool // the shape relocated the entry
	ExitMoved     bool // the shape relocated the exit
	HolesFilled   int  // open areas narrowed by the hole pass
	LoopsAdded    int  // walls removed to guarantee a cycle
}

// ReachableCells counts the cells connected to the entry.
func (m *Maze) ReachableCells() int {
	_, n := m.Grid.Reachable(m.Entry)
	return n
}

// Generator carves a single maze with a randomized depth-first search.
// It owns its PRNG, seeded once at construction, so generators are
// independent of each other.
type Generator struct {
	cfg     Config
	seed    uint32
	rng     *rand.Rand
	grid    *Grid
	visited []visitState
	emblem  []Position
	entry   Position
	exit    Position
	result  *Maze
}

// NewGenerator validates cfg and seeds the generator. When cfg.Seed is nil a
// seed is drawn; Seed reports it.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shape, _ := ParseShape(string(cfg.Shape))
	cfg.Shape = shape

	seed := drawSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	return &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(int64(seed))),
	}, nil
}

// Generate builds a maze from cfg with a fresh generator.
func Generate(cfg Config) (*Maze, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return gen.Generate()
}

func drawSeed() uint32 {
	return rand.New(rand.NewSource(time.Now().UnixNano())).Uint32()
}

// Seed returns the seed of the generator's PRNG.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// Generate carves the maze. The maze is built on the first call; later calls
// return the same maze.
func (g *Generator) Generate() (*Maze, error) {
	if g.result != nil {
		return g.result, nil
	}

	grid, err := NewGrid(g.cfg.Width, g.cfg.Height)
	if err != nil {
		return nil, err
	}
	masked, err := ApplyShape(grid, g.cfg.Shape, g.cfg.Entry, g.cfg.Exit)
	if err != nil {
		return nil, err
	}

	g.grid = masked.Grid
	g.entry, g.exit = masked.Entry, masked.Exit
	g.visited = make([]visitState, g.grid.Width()*g.grid.Height())
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			p := Position{X: x, Y: y}
			if !g.grid.IsPlayable(p) {
				g.visited[g.grid.index(p)] = voided
			}
		}
	}

	m := &Maze{
		Grid:       g.grid,
		Entry:      g.entry,
		Exit:       g.exit,
		Seed:       g.seed,
		Shape:      g.cfg.Shape,
		Perfect:    g.cfg.Perfect,
		EntryMoved: masked.EntryMoved,
		ExitMoved:  masked.ExitMoved,
	}

	if cells, ok := EmblemCells(g.grid, g.cfg.Shape, g.entry, g.exit); ok {
		g.emblem = cells
		for _, p := range cells {
			g.markVisited(p)
		}
		m.EmblemStamped = true
	}

	if !g.cfg.Perfect {
		g.scramble()
	}

	g.carve(g.entry)
	g.joinOrphans()
	m.HolesFilled = g.fillHoles()
	if !g.cfg.Perfect {
		m.LoopsAdded = g.ensureLoop()
	}

	if m.EmblemStamped {
		sealEmblem(g.grid, g.emblem)
	}

	g.visited = nil
	g.result = m
	return m, nil
}

func (g *Generator) markVisited(p Position) {
	g.visited[g.grid.index(p)] = visited
}

func (g *Generator) isUnvisited(p Position) bool {
	return g.grid.InBounds(p) && g.visited[g.grid.index(p)] == unvisited
}

// unvisitedNeighbors lists the directions from p toward unvisited playable cells.
func (g *Generator) unvisitedNeighbors(p Position) []Direction {
	result := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if g.isUnvisited(p.Step(d)) {
			result = append(result, d)
		}
	}
	return result
}

// carve runs the iterative randomized depth-first search from start. The exit
// is visited but never expanded.
func (g *Generator) carve(start Position) {
	stack := []Position{start}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		g.markVisited(top)
		if top == g.exit {
			pop(&stack)
			continue
		}

		neighbors := g.unvisitedNeighbors(top)
		if len(neighbors) == 0 {
			pop(&stack)
			continue
		}

		d := neighbors[g.rng.Intn(len(neighbors))]
		_ = g.grid.OpenWall(top, d)
		stack = append(stack, top.Step(d))
	}
}

// pop removes the last element of a stack of positions.
func pop(s *[]Position) Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// scramble opens random walls between unvisited cells before carving so that
// imperfect mazes keep extra passages.
func (g *Generator) scramble() {
	var candidates []Position
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			if p := (Position{X: x, Y: y}); g.isUnvisited(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return
	}

	area := g.grid.Width() * g.grid.Height()
	attempts := int(math.Sqrt(float64(g.rng.Intn(area)+1))) + 5
	for i := 0; i < attempts; i++ {
		p := candidates[g.rng.Intn(len(candidates))]
		neighbors := g.unvisitedNeighbors(p)
		if len(neighbors) == 0 {
			continue
		}
		_ = g.grid.OpenWall(p, neighbors[g.rng.Intn(len(neighbors))])
	}
}

// joinOrphans attaches every unvisited region that touches the carved maze
// with a single opening and carves it. Regions reachable only through the exit
// are attached to the exit last.
func (g *Generator) joinOrphans() {
	allowExit := false
	for {
		p, d, ok := g.findOrphan(allowExit)
		if !ok {
			if allowExit {
				return
			}
			allowExit = true
			continue
		}
		_ = g.grid.OpenWall(p, d)
		g.carve(p)
		allowExit = false
	}
}

// findOrphan returns an unvisited cell and the direction of a carved neighbour
// it can attach to. Emblem cells never count as carved.
func (g *Generator) findOrphan(allowExit bool) (Position, Direction, bool) {
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			p := Position{X: x, Y: y}
			if !g.isUnvisited(p) {
				continue
			}
			for _, d := range Directions {
				n, ok := g.grid.Neighbor(p, d)
				if !ok || g.visited[g.grid.index(n)] != visited || g.isEmblem(n) {
					continue
				}
				if n == g.exit && !allowExit {
					continue
				}
				return p, d, true
			}
		}
	}
	return Position{}, 0, false
}

func (g *Generator) isEmblem(p Position) bool {
	for _, e := range g.emblem {
		if e == p {
			return true
		}
	}
	return false
}

// fillHoles narrows open areas: a fully open interior cell whose neighbours
// show no corner walls around it keeps one random opening, and each other
// opening is closed when the cells on both sides stay connected without it.
// It returns the number of cells narrowed.
func (g *Generator) fillHoles() int {
	filled := 0
	for y := 1; y < g.grid.Height()-1; y++ {
		for x := 1; x < g.grid.Width()-1; x++ {
			p := Position{X: x, Y: y}
			if !g.isHole(p) {
				continue
			}

			keep := Directions[g.rng.Intn(len(Directions))]
			closed := false
			for _, d := range Directions {
				if d == keep {
					continue
				}
				n := p.Step(d)
				_ = g.grid.CloseWall(p, d)
				if g.grid.pathExists(p, n) {
					closed = true
					continue
				}
				_ = g.grid.OpenWall(p, d)
			}
			if closed {
				filled++
			}
		}
	}
	return filled
}

// isHole reports whether p is the fully open center of an open area: none of
// its neighbours has a wall running alongside p.
func (g *Generator) isHole(p Position) bool {
	if g.grid.At(p) != Open {
		return false
	}
	up := g.grid.At(p.Step(North))
	down := g.grid.At(p.Step(South))
	left := g.grid.At(p.Step(West))
	right := g.grid.At(p.Step(East))
	return !(up.HasWestWall() || up.HasEastWall()) &&
		!(down.HasWestWall() || down.HasEastWall()) &&
		!(left.HasNorthWall() || left.HasSouthWall()) &&
		!(right.HasNorthWall() || right.HasSouthWall())
}

// ensureLoop removes one wall between two connected cells when the maze
// reachable from the entry is still a tree. It returns the walls removed.
func (g *Generator) ensureLoop() int {
	reachable, count := g.grid.Reachable(g.entry)
	edges := 0
	type wall struct {
		p Position
		d Direction
	}
	var candidates []wall
	for y := 0; y < g.grid.Height(); y++ {
		for x := 0; x < g.grid.Width(); x++ {
			p := Position{X: x, Y: y}
			if !reachable[g.grid.index(p)] {
				continue
			}
			for _, d := range [...]Direction{East, South} {
				n, ok := g.grid.Neighbor(p, d)
				if !ok || !reachable[g.grid.index(n)] {
					continue
				}
				if g.grid.CanPass(p, d) {
					edges++
				} else {
					candidates = append(candidates, wall{p: p, d: d})
				}
			}
		}
	}

	if edges >= count || len(candidates) == 0 {
		return 0
	}
	c := candidates[g.rng.Intn(len(candidates))]
	_ = g.grid.OpenWall(c.p, c.d)
	return 1
}
