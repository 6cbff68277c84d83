// Package config handles viewer configuration loading and management.
package config

// Config holds all orbitcube settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the drawing surface size in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewerConfig holds the interaction tuning of a view.
type ViewerConfig struct {
	Scale              float64 `yaml:"scale"`                // Initial uniform scale
	AutoRotationFrames int     `yaml:"auto_rotation_frames"` // Frames to reach a preset
	KeyStep            float64 `yaml:"key_step"`             // Pixels of drag per arrow key
	WheelDivisor       float64 `yaml:"wheel_divisor"`        // Wheel delta per unit of zoom
	SphereResolution   int     `yaml:"sphere_resolution"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
		},
		Viewer: ViewerConfig{
			Scale:              0.5,
			AutoRotationFrames: 60,
			KeyStep:            10,
			WheelDivisor:       500,
			SphereResolution:   32,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8090",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
