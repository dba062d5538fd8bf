package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/amazeing/api"
	api_i "github.com/beka-birhanu/amazeing/api/i"
	mazeapi "github.com/beka-birhanu/amazeing/api/maze"
	"github.com/beka-birhanu/amazeing/config"
	logger "github.com/beka-birhanu/amazeing/infrastruture/log"
	"github.com/beka-birhanu/amazeing/infrastruture/storage"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/beka-birhanu/amazeing/service/i"
	txt "github.com/beka-birhanu/amazeing/txt_encoder"
	"github.com/gin-gonic/gin"
)

var previewFlag = flag.Bool("preview", false, "Log an ASCII drawing of the generated maze")

// Global variables for dependencies
var (
	appLogger      *logger.Logger
	mazeService    i.MazeBuilder
	mazeController api_i.Controller
	router         *api.Router
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, config.LogColor(color), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	l.SetDebug(config.Envs.LogDebug)
	return l
}

func initMazeService(maxDimension int) {
	var err error
	mazeService, err = service.NewMazeService(
		&txt.Text{},
		storage.NewFileStore(""),
		newLogger("MAZE", config.ColorCyan),
		&service.Options{MaxDimension: maxDimension},
	)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, newLogger("MAZE-API", config.ColorMagenta))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{mazeController},
		Logger:      newLogger("HTTP", config.ColorBlue),
	})
	appLogger.Info("Router initialized")
}

// generate builds the maze described by the configuration file at path and
// writes its artifact to the configured output file.
func generate(ctx context.Context, path string) error {
	cfg, err := config.LoadMazeConfig(path)
	if err != nil {
		return err
	}

	m, a, err := mazeService.Build(ctx, cfg.Maze())
	if err != nil && !errors.Is(err, maze.ErrUnsolvable) {
		return err
	}
	if *previewFlag {
		appLogger.Info("Maze preview:\n" + m.Grid.String())
	}
	return mazeService.Export(ctx, a, cfg.OutputFile)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %[1]s [-preview] [config-file]\n  %[1]s serve\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger = newLogger("APP", config.ColorGreen)

	if flag.Arg(0) == "serve" {
		initMazeService(config.Envs.MaxDimension)
		initMazeController()
		initRouter()

		appLogger.Info(fmt.Sprintf("Listening on %s:%d", config.Envs.HostIP, config.Envs.RESTPort))
		if err := router.Run(); err != nil {
			appLogger.Error(fmt.Sprintf("Starting server: %v", err))
			os.Exit(1)
		}
		return
	}

	path := config.Envs.MazeConfig
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	initMazeService(0)
	if err := generate(ctx, path); err != nil {
		appLogger.Error(err.Error())
		os.Exit(1)
	}
}
