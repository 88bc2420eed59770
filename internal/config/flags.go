package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAddr    = flag.String("addr", "", "HTTP listen address")
	flagLogFile = flag.String("log-file", "", "Write logs to this rotating file")
	flagSeed    = flag.Uint64("seed", 0, "Particle random seed (0 = time based)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSeed != 0 {
		cfg.Generation.Seed = *flagSeed
	}
}
