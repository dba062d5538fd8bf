// Package mazeapi provides the request and response bodies of the maze API.
package mazeapi

import (
	"github.com/beka-birhanu/amazeing/maze"
)

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func pointFrom(p maze.Position) Point {
	return Point{X: p.X, Y: p.Y}
}

func (p Point) position() maze.Position {
	return maze.Position{X: p.X, Y: p.Y}
}

// GenerateRequest mirrors the maze configuration file.
type GenerateRequest struct {
	Width   int     `json:"width" binding:"required"`
	Height  int     `json:"height" binding:"required"`
	Entry   Point   `json:"entry"`
	Exit    Point   `json:"exit"`
	Perfect bool    `json:"perfect"`
	Seed    *uint32 `json:"seed"`
	Shape   string  `json:"shape"`
}

func (r *GenerateRequest) config() maze.Config {
	return maze.Config{
		Width:   r.Width,
		Height:  r.Height,
		Entry:   r.Entry.position(),
		Exit:    r.Exit.position(),
		Perfect: r.Perfect,
		Seed:    r.Seed,
		Shape:   maze.Shape(r.Shape),
	}
}

// ArtifactResponse carries the fields of a maze artifact.
type ArtifactResponse struct {
	ID     string   `json:"id"`
	Maze   []string `json:"maze"`
	Entry  Point    `json:"entry"`
	Exit   Point    `json:"exit"`
	Path   string   `json:"path"`
	Solved bool     `json:"solved"`
	Cols   int      `json:"cols"`
	Rows   int      `json:"rows"`
	Seed   uint32   `json:"seed"`
}

func artifactResponse(a *maze.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:     a.ID().String(),
		Maze:   a.Lines(),
		Entry:  pointFrom(a.Entry()),
		Exit:   pointFrom(a.Exit()),
		Path:   a.Path(),
		Solved: a.Solved(),
		Cols:   a.Cols(),
		Rows:   a.Rows(),
		Seed:   a.Seed(),
	}
}

// GenerationReport tells what generation decided on its own.
type GenerationReport struct {
	Shape         string `json:"shape"`
	Perfect       bool   `json:"perfect"`
	EmblemStamped bool   `json:"emblem_stamped"`
	EntryMoved    bool   `json:"entry_moved"`
	ExitMoved     bool   `json:"exit_moved"`
	HolesFilled   int    `json:"holes_filled"`
	LoopsAdded    int    `json:"loops_added"`
	OpenEdges     int    `json:"open_edges"`
	Reachable     int    `json:"reachable_cells"`
}

// GenerateResponse is the body returned for a generated maze.
type GenerateResponse struct {
	ArtifactResponse
	Report GenerationReport `json:"report"`
}

func generateResponse(m *maze.Maze, a *maze.Artifact) *GenerateResponse {
	return &GenerateResponse{
		ArtifactResponse: artifactResponse(a),
		Report: GenerationReport{
			Shape:         string(m.Shape),
			Perfect:       m.Perfect,
			EmblemStamped: m.EmblemStamped,
			EntryMoved:    m.EntryMoved,
			ExitMoved:     m.ExitMoved,
			HolesFilled:   m.HolesFilled,
			LoopsAdded:    m.LoopsAdded,
			OpenEdges:     m.Grid.OpenEdges(),
			Reachable:     m.ReachableCells(),
		},
	}
}

// FieldErrorResponse is one configuration problem.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []FieldErrorResponse `json:"fields,omitempty"`
	Line   int                  `json:"line,omitempty"`
	Column int                  `json:"column,omitempty"`
}
