package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/beka-birhanu/amazeing/api/i"
	service_i "github.com/beka-birhanu/amazeing/service/i"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its dependencies.
type Router struct {
	addr        string
	baseURL     string
	controllers []i.Controller
	logger      service_i.Logger
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	Controllers []i.Controller
	Logger      service_i.Logger // Request log, gin's default logger when nil
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		controllers: config.Controllers,
		logger:      config.Logger,
	}
}

// Handler builds the gin engine with every controller registered under
// <baseURL>/v1.
func (r *Router) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	if r.logger != nil {
		router.Use(requestLogger(r.logger))
	} else {
		router.Use(gin.Logger())
	}

	api := router.Group(r.baseURL)
	{
		publicRoutes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterPublic(publicRoutes)
			}
		}
	}

	return router
}

// Run starts the HTTP server.
func (r *Router) Run() error {
	server := &http.Server{
		Addr:              r.addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

// requestLogger logs one line per request, as a warning for client errors and
// an error for server errors.
func requestLogger(logger service_i.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		msg := fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Microsecond))
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(msg)
		case status >= http.StatusBadRequest:
			logger.Warning(msg)
		default:
			logger.Info(msg)
		}
	}
}
