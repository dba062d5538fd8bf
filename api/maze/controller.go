package mazeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/amazeing/config"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service/i"
	txt "github.com/beka-birhanu/amazeing/txt_encoder"
	"github.com/gin-gonic/gin"
)

const (
	maxArtifactBytes = 1 << 20
	textContentType  = "text/plain; charset=utf-8"
	artifactIDHeader = "X-Artifact-ID"
)

// MazeController serves maze generation and solving.
type MazeController struct {
	builder i.MazeBuilder
	logger  i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(builder i.MazeBuilder, logger i.Logger) (*MazeController, error) {
	if builder == nil {
		return nil, errors.New("maze controller needs a maze builder")
	}
	if logger == nil {
		return nil, errors.New("maze controller needs a logger")
	}
	return &MazeController{
		builder: builder,
		logger:  logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/export", mc.export)
		mazes.POST("/solve", mc.solve)
	}
}

// generate builds a maze and returns its artifact as JSON. An unsolvable maze
// is still a valid result and comes back with solved set to false.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	m, a, err := mc.builder.Build(ctx.Request.Context(), request.config())
	if err != nil && !errors.Is(err, maze.ErrUnsolvable) {
		mc.fail(ctx, err)
		return
	}

	ctx.Header(artifactIDHeader, a.ID().String())
	ctx.JSON(http.StatusOK, generateResponse(m, a))
}

// export builds a maze and returns the text artifact.
func (mc *MazeController) export(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	_, a, err := mc.builder.Build(ctx.Request.Context(), request.config())
	if err != nil && !errors.Is(err, maze.ErrUnsolvable) {
		mc.fail(ctx, err)
		return
	}
	data, err := mc.builder.Encode(a)
	if err != nil {
		mc.fail(ctx, err)
		return
	}

	ctx.Header(artifactIDHeader, a.ID().String())
	ctx.Data(http.StatusOK, textContentType, data)
}

// solve parses a text artifact from the body and solves it again.
func (mc *MazeController) solve(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxArtifactBytes)
	data, err := ctx.GetRawData()
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		ctx.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	a, err := mc.builder.Resolve(ctx.Request.Context(), data)
	if err != nil && !errors.Is(err, maze.ErrUnsolvable) {
		mc.fail(ctx, err)
		return
	}

	ctx.Header(artifactIDHeader, a.ID().String())
	ctx.JSON(http.StatusOK, artifactResponse(a))
}

// fail maps an error onto a status and body.
func (mc *MazeController) fail(ctx *gin.Context, err error) {
	var (
		cerr  *config.ConfigError
		serr  *txt.SerializationError
		shErr *maze.ShapeError
	)
	switch {
	case errors.As(err, &cerr):
		response := ErrorResponse{Error: "invalid configuration"}
		for _, f := range cerr.Fields {
			response.Fields = append(response.Fields, FieldErrorResponse{Field: f.Field, Message: f.Message})
		}
		ctx.JSON(http.StatusBadRequest, response)
	case errors.As(err, &serr):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: serr.Err.Error(), Line: serr.Line, Column: serr.Column})
	case errors.As(err, &shErr),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, maze.ErrSameEndpoints),
		errors.Is(err, maze.ErrInvalidShape),
		errors.Is(err, maze.ErrVoidCell):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		mc.logger.Error(fmt.Sprintf("Maze request failed: %s", err))
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "error while building maze"})
	}
}
