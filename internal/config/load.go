package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and config dirs.
const FileName = "orbitcube.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the viewer cannot work with.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewer.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Viewer.Scale)
	}
	if c.Viewer.AutoRotationFrames < 0 {
		return fmt.Errorf("auto_rotation_frames must not be negative, got %d", c.Viewer.AutoRotationFrames)
	}
	if c.Viewer.WheelDivisor <= 0 {
		return fmt.Errorf("wheel_divisor must be positive, got %v", c.Viewer.WheelDivisor)
	}
	if c.Viewer.SphereResolution < 4 || c.Viewer.SphereResolution%2 != 0 {
		return fmt.Errorf("sphere_resolution must be even and at least 4, got %d", c.Viewer.SphereResolution)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "OrbitCube")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "OrbitCube")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "orbitcube")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "orbitcube")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
