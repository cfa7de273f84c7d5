package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdlocal/internal/config"
)

// envPrefix marks the variables read by mdlocal.
const envPrefix = "MDLOCAL_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDLOCAL_CONFIG: config file name or path
	MediaDir   string        // MDLOCAL_MEDIA_DIR: asset directory
	Timeout    time.Duration // MDLOCAL_TIMEOUT: per-image download timeout
	UserAgent  string        // MDLOCAL_USER_AGENT: User-Agent header
	MaxSize    int64         // MDLOCAL_MAX_SIZE: download size limit in bytes
}

// knownEnvVars lists valid MDLOCAL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDLOCAL_CONFIG":     true,
	"MDLOCAL_MEDIA_DIR":  true,
	"MDLOCAL_TIMEOUT":    true,
	"MDLOCAL_USER_AGENT": true,
	"MDLOCAL_MAX_SIZE":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric values are reported to w and ignored.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDLOCAL_CONFIG"),
		MediaDir:   os.Getenv("MDLOCAL_MEDIA_DIR"),
		UserAgent:  os.Getenv("MDLOCAL_USER_AGENT"),
	}

	if timeout := os.Getenv("MDLOCAL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(w, "warning: ignoring MDLOCAL_TIMEOUT=%q (want a positive duration like 30s)\n", timeout)
		}
	}

	if size := os.Getenv("MDLOCAL_MAX_SIZE"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil && n > 0 {
			cfg.MaxSize = n
		} else {
			fmt.Fprintf(w, "warning: ignoring MDLOCAL_MAX_SIZE=%q (want a positive byte count)\n", size)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDLOCAL_* variables.
// Helps catch typos like MDLOCAL_MEDIADIR instead of MDLOCAL_MEDIA_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.MediaDir != "" {
		cfg.Media.Dir = env.MediaDir
	}
	if env.Timeout > 0 {
		cfg.Fetch.Timeout = env.Timeout.String()
	}
	if env.UserAgent != "" {
		cfg.Fetch.UserAgent = env.UserAgent
	}
	if env.MaxSize > 0 {
		cfg.Fetch.MaxSize = env.MaxSize
	}
}
