package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Viewport width")
	flagHeight = flag.Int("height", 0, "Viewport height")
	flagScale  = flag.Float64("scale", 0, "Initial scale")
	flagAddr   = flag.String("addr", "", "HTTP API listen address")
	flagLog    = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Viewport.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewport.Height = *flagHeight
	}
	if *flagScale > 0 {
		cfg.Viewer.Scale = *flagScale
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
