package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdlocal/internal/fileutil"
	"github.com/alnah/go-mdlocal/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxUserAgentLength = 256
	MaxExtensions      = 64
)

// AppName names the directory searched under the user config dir.
const AppName = "go-mdlocal"

// Defaults.
const (
	DefaultMediaDir  = "media"
	DefaultUserAgent = "go-mdlocal"
	DefaultMaxSize   = 50 << 20
)

// DefaultExtensions mirrors the library's recognized image set.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Config holds all settings of a localization run.
type Config struct {
	Media  MediaConfig  `yaml:"media"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Images ImagesConfig `yaml:"images"`
}

// MediaConfig defines where assets are stored.
type MediaConfig struct {
	Dir string `yaml:"dir"` // Asset directory (empty = "media")
}

// FetchConfig defines how remote assets are downloaded.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "30s" (empty = no timeout)
	UserAgent string `yaml:"userAgent"` // Sent with every request
	MaxSize   int64  `yaml:"maxSize"`   // bytes (0 = default)
	Refetch   bool   `yaml:"refetch"`   // Ignore cached assets
}

// ImagesConfig defines which references count as images.
type ImagesConfig struct {
	Extensions []string `yaml:"extensions"` // e.g. [".png", ".jpg"] (empty = defaults)
}

// TimeoutDuration parses Fetch.Timeout. An empty value means no timeout.
func (f FetchConfig) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(f.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: fetch.timeout: must be positive, got %s", ErrInvalidConfig, f.Timeout)
	}
	return d, nil
}

// Validate checks field values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("media.dir", c.Media.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}

	if _, err := c.Fetch.TimeoutDuration(); err != nil {
		return err
	}
	if c.Fetch.MaxSize < 0 {
		return fmt.Errorf("%w: fetch.maxSize: must not be negative, got %d", ErrInvalidConfig, c.Fetch.MaxSize)
	}

	if len(c.Images.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: images.extensions: %d entries, max %d", ErrInvalidConfig, len(c.Images.Extensions), MaxExtensions)
	}
	for i, ext := range c.Images.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			return fmt.Errorf("%w: images.extensions[%d]: empty extension", ErrInvalidConfig, i)
		}
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: images.extensions[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %w: %s (%d chars, max %d)", ErrInvalidConfig, ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Media: MediaConfig{Dir: DefaultMediaDir},
		Fetch: FetchConfig{
			UserAgent: DefaultUserAgent,
			MaxSize:   DefaultMaxSize,
		},
		Images: ImagesConfig{Extensions: append([]string(nil), DefaultExtensions...)},
	}
}

// ApplyDefaults fills empty fields with DefaultConfig values.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if strings.TrimSpace(c.Media.Dir) == "" {
		c.Media.Dir = def.Media.Dir
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = def.Fetch.UserAgent
	}
	if c.Fetch.MaxSize == 0 {
		c.Fetch.MaxSize = def.Fetch.MaxSize
	}
	if len(c.Images.Extensions) == 0 {
		c.Images.Extensions = def.Images.Extensions
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdlocal/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
