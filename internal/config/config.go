// Package config loads server settings from YAML or TOML files and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/serverworld/internal/logger"
)

// Config holds all server settings.
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Generation GenerationConfig `yaml:"generation" toml:"generation"`
	Monitor    MonitorConfig    `yaml:"monitor" toml:"monitor"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	SeedDemo        bool     `yaml:"seed_demo" toml:"seed_demo"`
	SendBuffer      int      `yaml:"send_buffer" toml:"send_buffer"` // WebSocket queue per client
}

// GenerationConfig bounds procedural generation per request.
// Zero limits are unlimited.
type GenerationConfig struct {
	Seed            uint64 `yaml:"seed" toml:"seed"` // 0 seeds particles from the clock
	MaxSegments     int    `yaml:"max_segments" toml:"max_segments"`
	MaxSubdivisions int    `yaml:"max_subdivisions" toml:"max_subdivisions"`
	MaxTerrainSize  int    `yaml:"max_terrain_size" toml:"max_terrain_size"`
	MaxParticles    int    `yaml:"max_particles" toml:"max_particles"`
}

// MonitorConfig controls the server monitor feed.
type MonitorConfig struct {
	Interval Duration `yaml:"interval" toml:"interval"`
	Servers  int      `yaml:"servers" toml:"servers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			SeedDemo:        true,
			SendBuffer:      64,
		},
		Generation: GenerationConfig{
			MaxSegments:     256,
			MaxSubdivisions: 6,
			MaxTerrainSize:  512,
			MaxParticles:    100000,
		},
		Monitor: MonitorConfig{
			Interval: Duration(5 * time.Second),
			Servers:  5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.SendBuffer < 1 {
		errs = append(errs, fmt.Errorf("server.send_buffer %d must be at least 1", c.Server.SendBuffer))
	}
	if c.Monitor.Interval <= 0 {
		errs = append(errs, fmt.Errorf("monitor.interval %s must be positive", c.Monitor.Interval))
	}
	if c.Monitor.Servers < 0 {
		errs = append(errs, fmt.Errorf("monitor.servers %d is negative", c.Monitor.Servers))
	}
	g := c.Generation
	if g.MaxSegments < 0 || g.MaxSubdivisions < 0 || g.MaxTerrainSize < 0 || g.MaxParticles < 0 {
		errs = append(errs, errors.New("generation limits must not be negative"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	return errors.Join(errs...)
}

// Duration is a time.Duration written as "5s" in config files.
type Duration time.Duration

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
