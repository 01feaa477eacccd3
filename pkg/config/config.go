package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pixfetch/pkg/media"
)

// Config holds all configuration options for pixfetch
type Config struct {
	// Pexels API settings
	Pexels PexelsConfig `yaml:"pexels" json:"pexels"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Archive settings
	Archive ArchiveConfig `yaml:"archive" json:"archive"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PexelsConfig holds Pexels-specific configuration
type PexelsConfig struct {
	APIKey  string `yaml:"api_key" json:"api_key"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	ConcurrentDownloads int           `yaml:"concurrent_downloads" json:"concurrent_downloads"`
	RequestTimeout      time.Duration `yaml:"request_timeout" json:"request_timeout"`
	MaxRetries          int           `yaml:"max_retries" json:"max_retries"`
}

// ArchiveConfig holds defaults for the archive job
type ArchiveConfig struct {
	Resolution string `yaml:"resolution" json:"resolution"`
	Count      int    `yaml:"count" json:"count"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory         string `yaml:"directory" json:"directory"`
	OverwriteExisting bool   `yaml:"overwrite_existing" json:"overwrite_existing"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// MaxCount is the upper bound on images per search, mirroring the service cap
const MaxCount = 1000

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pexels: PexelsConfig{
			BaseURL: "https://api.pexels.com/v1",
		},
		Download: DownloadConfig{
			ConcurrentDownloads: 4,
			RequestTimeout:      10 * time.Second,
			MaxRetries:          2,
		},
		Archive: ArchiveConfig{
			Resolution: string(media.ResolutionOriginal),
			Count:      10,
		},
		Output: OutputConfig{
			Directory:         "./downloads",
			OverwriteExisting: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if key := os.Getenv("PIXFETCH_API_KEY"); key != "" {
		c.Pexels.APIKey = key
	} else if key := os.Getenv("PEXELS_API_KEY"); key != "" {
		c.Pexels.APIKey = key
	}
	if baseURL := os.Getenv("PIXFETCH_BASE_URL"); baseURL != "" {
		c.Pexels.BaseURL = baseURL
	}
	if concurrent := os.Getenv("PIXFETCH_CONCURRENT_DOWNLOADS"); concurrent != "" {
		var val int
		fmt.Sscanf(concurrent, "%d", &val)
		if val > 0 {
			c.Download.ConcurrentDownloads = val
		}
	}
	if outputDir := os.Getenv("PIXFETCH_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel := os.Getenv("PIXFETCH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".pixfetch.yaml",
		".pixfetch.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "pixfetch", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "pixfetch", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".pixfetch.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Pexels.BaseURL == "" {
		errs = append(errs, errors.New("pexels base URL is required"))
	}

	if c.Download.ConcurrentDownloads <= 0 {
		errs = append(errs, errors.New("concurrent downloads must be positive"))
	}
	if c.Download.ConcurrentDownloads > 8 {
		errs = append(errs, errors.New("concurrent downloads should not exceed 8"))
	}
	if c.Download.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.Download.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	if _, err := media.ParseResolution(c.Archive.Resolution); err != nil {
		errs = append(errs, err)
	}
	if c.Archive.Count < 1 || c.Archive.Count > MaxCount {
		errs = append(errs, fmt.Errorf("count must be between 1 and %d", MaxCount))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file can hold the API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Pexels.APIKey = apiKey
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if concurrent, ok := flags["concurrent"].(int); ok && concurrent > 0 {
		c.Download.ConcurrentDownloads = concurrent
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Download.RequestTimeout = timeout
	}
	if resolution, ok := flags["resolution"].(string); ok && resolution != "" {
		c.Archive.Resolution = resolution
	}
	if count, ok := flags["count"].(int); ok && count > 0 {
		c.Archive.Count = count
	}
	if overwrite, ok := flags["overwrite"].(bool); ok {
		c.Output.OverwriteExisting = overwrite
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pixfetch.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
