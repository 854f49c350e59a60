// Package config loads archdsl settings from .archdsl/config.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

const (
	// DirName is the per-repository settings directory
	DirName = ".archdsl"
	// FileName is the configuration file inside DirName
	FileName = "config.toml"
	// EnvPrefix prefixes environment overrides, e.g. ARCHDSL_LOGGING_LEVEL
	EnvPrefix = "ARCHDSL"
	// CurrentVersion is the supported configuration schema version
	CurrentVersion = 1
)

// Config represents the complete archdsl configuration
type Config struct {
	Version int           `toml:"version" mapstructure:"version"`
	Logging LoggingConfig `toml:"logging" mapstructure:"logging"`
	Scan    ScanConfig    `toml:"scan" mapstructure:"scan"`
	Render  RenderConfig  `toml:"render" mapstructure:"render"`
	Cache   CacheConfig   `toml:"cache" mapstructure:"cache"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `toml:"format" mapstructure:"format"` // "human" or "json"
	Level  string `toml:"level" mapstructure:"level"`
	File   string `toml:"file,omitempty" mapstructure:"file"`
}

// ScanConfig controls which sources are scanned for annotations
type ScanConfig struct {
	Roots            []string `toml:"roots" mapstructure:"roots"`
	Ignore           []string `toml:"ignore" mapstructure:"ignore"`
	Languages        []string `toml:"languages" mapstructure:"languages"`
	DirectivePrefix  string   `toml:"directivePrefix" mapstructure:"directivePrefix"`
	MaxFileSizeBytes int64    `toml:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	Manifests        []string `toml:"manifests" mapstructure:"manifests"`
}

// RenderConfig controls the rendered output
type RenderConfig struct {
	Workspace     bool   `toml:"workspace" mapstructure:"workspace"`
	WorkspaceName string `toml:"workspaceName" mapstructure:"workspaceName"`
	Description   string `toml:"description,omitempty" mapstructure:"description"`
	System        string `toml:"system" mapstructure:"system"`
	Container     string `toml:"container" mapstructure:"container"`
	Strict        bool   `toml:"strict" mapstructure:"strict"`
}

// CacheConfig contains scan cache configuration
type CacheConfig struct {
	Enabled bool   `toml:"enabled" mapstructure:"enabled"`
	Path    string `toml:"path" mapstructure:"path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		Scan: ScanConfig{
			Roots:            []string{"."},
			Ignore:           []string{"vendor", "node_modules", "testdata", ".git"},
			Languages:        []string{"go", "python"},
			DirectivePrefix:  "arch:",
			MaxFileSizeBytes: 1000000,
			Manifests:        []string{},
		},
		Render: RenderConfig{
			Workspace:     false,
			WorkspaceName: "Architecture",
			System:        "System",
			Container:     "Application",
			Strict:        false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(DirName, "cache.db"),
		},
	}
}

// Path returns the configuration file path for repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, DirName, FileName)
}

// LoadConfig loads configuration from .archdsl/config.toml. Missing files
// yield the defaults; ARCHDSL_* environment variables override both.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(repoRoot, DirName))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigError{Field: FileName, Message: err.Error()}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: FileName, Message: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every default so env overrides and partial files
// fall back to them key by key.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("scan.roots", d.Scan.Roots)
	v.SetDefault("scan.ignore", d.Scan.Ignore)
	v.SetDefault("scan.languages", d.Scan.Languages)
	v.SetDefault("scan.directivePrefix", d.Scan.DirectivePrefix)
	v.SetDefault("scan.maxFileSizeBytes", d.Scan.MaxFileSizeBytes)
	v.SetDefault("scan.manifests", d.Scan.Manifests)
	v.SetDefault("render.workspace", d.Render.Workspace)
	v.SetDefault("render.workspaceName", d.Render.WorkspaceName)
	v.SetDefault("render.description", d.Render.Description)
	v.SetDefault("render.system", d.Render.System)
	v.SetDefault("render.container", d.Render.Container)
	v.SetDefault("render.strict", d.Render.Strict)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.path", d.Cache.Path)
}

// Save writes the configuration to .archdsl/config.toml
func (c *Config) Save(repoRoot string) error {
	path := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", DirName, err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	if c.Scan.DirectivePrefix == "" {
		return &ConfigError{Field: "scan.directivePrefix", Message: "must not be empty"}
	}
	if c.Scan.MaxFileSizeBytes < 0 {
		return &ConfigError{Field: "scan.maxFileSizeBytes", Message: "must not be negative"}
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return &ConfigError{Field: "cache.path", Message: "required when the cache is enabled"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
