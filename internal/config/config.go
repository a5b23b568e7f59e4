// Package config loads newsletter-forge settings from embedded defaults, an optional
// YAML file, a .env file and NEWSLETTER_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lepinkainen/newsletter-forge/configs"
	"github.com/lepinkainen/newsletter-forge/pkg/filesystem"
	"github.com/lepinkainen/newsletter-forge/pkg/urlutils"
)

// EnvPrefix prefixes every environment variable the tool reads
const EnvPrefix = "NEWSLETTER"

// FeedEnvVar holds the feed URL
const FeedEnvVar = "NEWSLETTER_FEED"

// DefaultCacheFile is the snapshot database name used when cache.path is empty
const DefaultCacheFile = "newsletter-forge.db"

// Config holds the central application configuration
type Config struct {
	FeedURL      string        `mapstructure:"feed_url"`
	SiteURL      string        `mapstructure:"site_url"`
	OutputDir    string        `mapstructure:"output_dir"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	Strict       bool          `mapstructure:"strict"`
	ArchiveFeed  bool          `mapstructure:"archive_feed"`
	TemplatesDir string        `mapstructure:"templates_dir"`

	Cache struct {
		Path string        `mapstructure:"path"`
		TTL  time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
}

// Options selects the files Load reads. Empty fields use the defaults.
type Options struct {
	// ConfigFile is an optional YAML file; a missing file is not an error
	ConfigFile string
	// EnvFile is loaded into the environment before it is read; a missing file is not an error
	EnvFile string
}

// Load builds the configuration
func Load(opts Options) (*Config, error) {
	if opts.EnvFile == "" {
		opts.EnvFile = ".env"
	}
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := fs.ReadFile(configs.EmbeddedConfigs, configs.DefaultsFile)
	if err != nil {
		return nil, fmt.Errorf("reading embedded defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path := resolveConfigPath(opts.ConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		slog.Debug("Loaded config file", "path", path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("feed_url", FeedEnvVar); err != nil {
		return nil, fmt.Errorf("binding %s: %w", FeedEnvVar, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Cache.Path == "" {
		path, err := filesystem.GetDefaultPath(DefaultCacheFile)
		if err != nil {
			return nil, err
		}
		cfg.Cache.Path = path
	}

	return &cfg, nil
}

// Validate checks the settings a generator run depends on
func (c *Config) Validate() error {
	if c.FeedURL == "" {
		return fmt.Errorf("no feed URL configured: set %s or feed_url", FeedEnvVar)
	}
	if !urlutils.IsValidURL(c.FeedURL) {
		return fmt.Errorf("invalid feed URL %q", c.FeedURL)
	}
	if c.SiteURL != "" && !urlutils.IsValidURL(c.SiteURL) {
		return fmt.Errorf("invalid site URL %q", c.SiteURL)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}

// resolveConfigPath finds the config file in the working directory, then next to the executable.
// It returns "" when neither exists.
func resolveConfigPath(path string) string {
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if filepath.IsAbs(path) {
		return ""
	}

	execPath, err := filesystem.GetDefaultPath(path)
	if err != nil {
		return ""
	}
	if _, err := os.Stat(execPath); err == nil {
		return execPath
	}
	return ""
}
