package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIgnoreFile is the per-directory ignore file honored during walks.
const DefaultIgnoreFile = ".lrcsyncignore"

// Config contains the program configuration
type Config struct {
	Root       string   `yaml:"root"`
	LrclibURL  string   `yaml:"lrclib_url"`
	Hidden     bool     `yaml:"hidden"`
	Force      bool     `yaml:"force"`
	Ignore     []string `yaml:"ignore"`
	Search     bool     `yaml:"search"`
	Tolerance  float64  `yaml:"tolerance"`
	IgnoreFile string   `yaml:"ignore_file"`
	Verbose    bool     `yaml:"verbose"`
	DryRun     bool     `yaml:"dry_run"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Root:       ".",
		LrclibURL:  "https://lrclib.net",
		Tolerance:  5.0,
		IgnoreFile: DefaultIgnoreFile,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Root = ExpandHome(cfg.Root)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./lrcsync.yaml",
		"./lrcsync.yml",
		filepath.Join(home, ".config", "lrcsync", "config.yaml"),
		filepath.Join(home, ".config", "lrcsync", "config.yml"),
		filepath.Join(home, ".lrcsync.yaml"),
		filepath.Join(home, ".lrcsync.yml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "lrcsync", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "lrcsync", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory cannot be empty")
	}
	if info, err := os.Stat(c.Root); err != nil {
		return fmt.Errorf("root directory does not exist: %s", c.Root)
	} else if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", c.Root)
	}

	if c.LrclibURL == "" {
		return fmt.Errorf("lrclib URL cannot be empty")
	}
	if !strings.HasPrefix(c.LrclibURL, "http://") && !strings.HasPrefix(c.LrclibURL, "https://") {
		return fmt.Errorf("lrclib URL must start with http:// or https://")
	}

	// Zero and negative tolerance are valid: they disable duration
	// filtering. Only non-finite values are rejected.
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("tolerance must be a finite number of seconds, got %v", c.Tolerance)
	}

	// An empty ignore_file disables ignore handling entirely.
	if c.IgnoreFile != "" && c.IgnoreFile != filepath.Base(c.IgnoreFile) {
		return fmt.Errorf("ignore_file must be a bare file name, got %q", c.IgnoreFile)
	}

	return nil
}
