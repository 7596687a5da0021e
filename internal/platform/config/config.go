package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	// DemoToday pins the request-scoped clock, so the demo dataset keeps its
	// deadline states stable across restarts. Zero means wall clock.
	DemoToday time.Time

	LogLevel string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	addr := os.Getenv("PORTAL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var demoToday time.Time
	if raw := os.Getenv("PORTAL_DEMO_TODAY"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Server{}, err
		}
		demoToday = parsed
	}

	level := os.Getenv("PORTAL_LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	return Server{
		Addr:      addr,
		DemoToday: demoToday,
		LogLevel:  level,
	}, nil
}
