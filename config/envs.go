package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP       string // Host IP for the server
	RESTPort     int    // Port for the REST API
	GinMode      string // Mode for the Gin framework (e.g., release, debug, test)
	MazeConfig   string // Default maze configuration file for the CLI
	LogNoColor   bool   // Disables coloured log prefixes
	LogDebug     bool   // Enables debug entries
	MaxDimension int    // Largest width or height accepted over HTTP
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[APP] [INFO] .env file could not be loaded: %v", err)
	}

	return Config{
		HostIP:       getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:     getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:      getEnvWithDefault("GIN_MODE", "release"),
		MazeConfig:   getEnvWithDefault("MAZE_CONFIG", "config.txt"),
		LogNoColor:   getEnvAsBool("LOG_NO_COLOR"),
		LogDebug:     getEnvAsBool("LOG_DEBUG"),
		MaxDimension: getEnvAsIntWithDefault("MAX_DIMENSION", 200),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling
// back to defaultValue when it is unset or not a positive integer.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		log.Printf("[APP] [WARN] Environment variable %s must be a positive integer, using %d", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsBool reports whether key is set to a true value.
func getEnvAsBool(key string) bool {
	value, err := parseBool(os.Getenv(key))
	return err == nil && value
}
