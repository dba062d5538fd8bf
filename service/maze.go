package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/amazeing/config"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service/i"
)

var _ i.MazeBuilder = &MazeService{}

var (
	ErrNilEncoder = errors.New("maze service needs an encoder")
	ErrNilStore   = errors.New("maze service needs an artifact store")
	ErrNilLogger  = errors.New("maze service needs a logger")
)

// Options tunes a MazeService.
type Options struct {
	MaxDimension int // Largest accepted width or height, unbounded when 0
}

// MazeService runs configuration through generation, solving, serialization
// and storage.
type MazeService struct {
	encoder i.Encoder
	store   i.ArtifactStore
	logger  i.Logger
	opts    *Options
}

// NewMazeService wires a MazeService.
func NewMazeService(encoder i.Encoder, store i.ArtifactStore, logger i.Logger, opts *Options) (i.MazeBuilder, error) {
	switch {
	case encoder == nil:
		return nil, ErrNilEncoder
	case store == nil:
		return nil, ErrNilStore
	case logger == nil:
		return nil, ErrNilLogger
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.MaxDimension < 0 {
		opts.MaxDimension = 0
	}

	return &MazeService{
		encoder: encoder,
		store:   store,
		logger:  logger,
		opts:    opts,
	}, nil
}

// Build implements i.MazeBuilder. Configuration problems, including a shape
// that leaves no room for the entry or exit, come back as *config.ConfigError
// before anything is carved.
func (ms *MazeService) Build(ctx context.Context, cfg maze.Config) (*maze.Maze, *maze.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := config.ValidateMaze(cfg, ms.opts.MaxDimension); err != nil {
		return nil, nil, err
	}

	gen, err := maze.NewGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	ms.logger.Debug(fmt.Sprintf("Generating %dx%d %s maze: seed=%d perfect=%t", cfg.Width, cfg.Height, shapeName(cfg.Shape), gen.Seed(), cfg.Perfect))

	m, err := gen.Generate()
	if err != nil {
		var shapeErr *maze.ShapeError
		if errors.As(err, &shapeErr) {
			return nil, nil, &config.ConfigError{Fields: []config.FieldError{{
				Field:   strings.ToUpper(shapeErr.Field),
				Message: shapeErr.Error(),
			}}}
		}
		return nil, nil, err
	}
	ms.report(m)

	a, err := m.Export()
	if err != nil {
		if errors.Is(err, maze.ErrUnsolvable) {
			ms.logger.Warning(fmt.Sprintf("Maze has no solution: seed=%d", m.Seed))
			return m, a, err
		}
		return nil, nil, err
	}

	ms.logger.Info(fmt.Sprintf("Maze generated: id=%s %dx%d seed=%d path=%d moves", a.ID(), a.Cols(), a.Rows(), a.Seed(), len(a.Path())))
	return m, a, nil
}

// report logs what generation decided on its own.
func (ms *MazeService) report(m *maze.Maze) {
	if m.EntryMoved {
		ms.logger.Info(fmt.Sprintf("Entry moved to %s to fit the %s shape", m.Entry, m.Shape))
	}
	if m.ExitMoved {
		ms.logger.Info(fmt.Sprintf("Exit moved to %s to fit the %s shape", m.Exit, m.Shape))
	}
	if !m.EmblemStamped {
		ms.logger.Warning(fmt.Sprintf("Emblem skipped: %dx%d %s maze has no room for it", m.Grid.Width(), m.Grid.Height(), m.Shape))
	}
	if m.HolesFilled > 0 || m.LoopsAdded > 0 {
		ms.logger.Debug(fmt.Sprintf("Post-carve passes: holes filled=%d loops added=%d", m.HolesFilled, m.LoopsAdded))
	}
}

// Encode implements i.MazeBuilder.
func (ms *MazeService) Encode(a *maze.Artifact) ([]byte, error) {
	data, err := ms.encoder.MarshalArtifact(a)
	if err != nil {
		ms.logger.Error(fmt.Sprintf("Failed to serialize artifact: %s", err))
		return nil, err
	}
	return data, nil
}

// Export implements i.MazeBuilder.
func (ms *MazeService) Export(ctx context.Context, a *maze.Artifact, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := ms.Encode(a)
	if err != nil {
		return err
	}
	if err := ms.store.Write(name, data); err != nil {
		ms.logger.Error(fmt.Sprintf("Failed to write artifact %s: %s", name, err))
		return err
	}

	ms.logger.Info(fmt.Sprintf("Artifact written: %s (%d bytes)", name, len(data)))
	return nil
}

// Resolve implements i.MazeBuilder. The returned artifact carries the freshly
// computed path; an unsolvable maze comes back unsolved together with an
// error wrapping maze.ErrUnsolvable.
func (ms *MazeService) Resolve(ctx context.Context, data []byte) (*maze.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := ms.encoder.UnmarshalArtifact(data)
	if err != nil {
		return nil, err
	}
	grid, err := parsed.Grid()
	if err != nil {
		return nil, err
	}

	path, err := maze.Solve(grid, parsed.Entry(), parsed.Exit())
	if err != nil && !errors.Is(err, maze.ErrUnsolvable) {
		return nil, err
	}
	solved := err == nil
	a := maze.NewArtifact(parsed.Lines(), parsed.Entry(), parsed.Exit(), path, solved, parsed.Seed())
	if !solved {
		ms.logger.Warning(fmt.Sprintf("Submitted maze has no solution: id=%s", a.ID()))
		return a, err
	}
	if parsed.Solved() && parsed.Path() != path {
		ms.logger.Debug(fmt.Sprintf("Submitted path differs from the computed one: id=%s", a.ID()))
	}
	return a, nil
}

func shapeName(s maze.Shape) string {
	if s == "" {
		return string(maze.Rectangle)
	}
	return strings.ToLower(string(s))
}
