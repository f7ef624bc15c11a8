// Package config holds the tuning variables of the snake host. They are read
// from the environment once at start up and serve as defaults for the command
// line flags.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Configuration variables. These aren't part of the game rules but shape how
// the host drives and publishes the game.
var (
	GridSize     = getEnvInt("SNAKE_GRID_SIZE", 15)
	TickInterval = time.Duration(getEnvInt("SNAKE_TICK_MS", 250)) * time.Millisecond
	MaxFrames    = getEnvInt("SNAKE_MAX_FRAMES", 1024)
	StreamRate   = rate.Limit(getEnvInt("SNAKE_STREAM_RPS", 30))
	StreamBurst  = getEnvInt("SNAKE_STREAM_BURST", 10)
)

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil || intVal <= 0 {
		return defaults
	}
	return int(intVal)
}
