// Package config loads runtime configuration from environment variables.
// Everything configurable here is a connection setting; show content is
// declared in code or in YAML show files, not in the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for both the MCP server and the
// compose CLI.
type Config struct {
	// ControllerURL is the base URL of the lighting controller's REST
	// API.
	ControllerURL string `env:"SHOWMCP_CONTROLLER_URL" envDefault:"http://127.0.0.1:8888"`
	// HTTPTimeout bounds each controller round trip.
	HTTPTimeout time.Duration `env:"SHOWMCP_HTTP_TIMEOUT" envDefault:"15s"`
	// JournalPath is the sqlite run-history file. Empty means the
	// default under the user config directory.
	JournalPath string `env:"SHOWMCP_JOURNAL_PATH"`
}

// Load parses the environment and fills in defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JournalPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving journal path: %w", err)
		}
		cfg.JournalPath = filepath.Join(dir, "showmcp", "journal.db")
	}
	return cfg, nil
}
