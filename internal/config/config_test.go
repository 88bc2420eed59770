package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected addr :8000, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Std() != 15*time.Second {
		t.Errorf("expected read timeout 15s, got %v", cfg.Server.ReadTimeout)
	}
	if !cfg.Server.SeedDemo {
		t.Error("expected demo scene to be seeded by default")
	}
	if cfg.Generation.Seed != 0 {
		t.Errorf("expected time-based seed, got %d", cfg.Generation.Seed)
	}
	if cfg.Generation.MaxSegments != 256 {
		t.Errorf("expected max segments 256, got %d", cfg.Generation.MaxSegments)
	}
	if cfg.Monitor.Interval.Std() != 5*time.Second {
		t.Errorf("expected monitor interval 5s, got %v", cfg.Monitor.Interval)
	}
	if cfg.Monitor.Servers != 5 {
		t.Errorf("expected 5 monitored servers, got %d", cfg.Monitor.Servers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  addr: "127.0.0.1:9000"
  write_timeout: 45s
  seed_demo: false

generation:
  seed: 42
  max_particles: 5000

monitor:
  interval: 250ms

logging:
  level: "debug"
  log_file: "serverworld.log"
`)

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout.Std())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std(), "unset keys keep defaults")
	assert.False(t, cfg.Server.SeedDemo)
	assert.Equal(t, uint64(42), cfg.Generation.Seed)
	assert.Equal(t, 5000, cfg.Generation.MaxParticles)
	assert.Equal(t, 256, cfg.Generation.MaxSegments)
	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.Interval.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "serverworld.log", cfg.Logging.LogFile)
}

func TestLoadFromTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[server]
addr = ":9100"
shutdown_timeout = "3s"

[generation]
max_segments = 64

[monitor]
servers = 8
`)

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.Equal(t, 64, cfg.Generation.MaxSegments)
	assert.Equal(t, 8, cfg.Monitor.Servers)
	assert.Equal(t, 5*time.Second, cfg.Monitor.Interval.Std())
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"invalid yaml", func(t *testing.T) string {
			return writeFile(t, "bad.yaml", "server:\n  addr: [unclosed\n")
		}},
		{"invalid duration", func(t *testing.T) string {
			return writeFile(t, "bad.yaml", "monitor:\n  interval: soon\n")
		}},
		{"invalid toml", func(t *testing.T) string {
			return writeFile(t, "bad.toml", "[server\naddr = 1\n")
		}},
		{"unknown extension", func(t *testing.T) string {
			return writeFile(t, "config.json", "{}")
		}},
		{"missing file", func(t *testing.T) string {
			return "/nonexistent/path/config.yaml"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, loadFromFile(Default(), tt.path(t)))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero send buffer", func(c *Config) { c.Server.SendBuffer = 0 }},
		{"zero interval", func(c *Config) { c.Monitor.Interval = 0 }},
		{"negative limit", func(c *Config) { c.Generation.MaxParticles = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.toml", []byte("[server]\naddr = \":1\"\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.toml" {
		t.Errorf("expected ./config.toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "addr flag",
			setup: func() { *flagAddr = ":7000" },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":7000", cfg.Server.Addr)
			},
			teardown: func() { *flagAddr = "" },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "/var/log/sw.log" },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/var/log/sw.log", cfg.Logging.LogFile)
			},
			teardown: func() { *flagLogFile = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, uint64(7), cfg.Generation.Seed)
			},
			teardown: func() { *flagSeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  addr: ":8100"
logging:
  level: warn
`)

	*flagConfig = path
	*flagAddr = ":9200"
	defer func() {
		*flagConfig = ""
		*flagAddr = ""
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9200", cfg.Server.Addr, "flag beats file")
	assert.Equal(t, "warn", cfg.Logging.Level, "file beats default")
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Server.Addr = ":1234"
			cfg.Monitor.Interval = Duration(1500 * time.Millisecond)
			require.NoError(t, cfg.SaveTo(path))

			loaded := Default()
			require.NoError(t, loadFromFile(loaded, path))
			assert.Equal(t, cfg, loaded)
		})
	}

	assert.Error(t, Default().SaveTo(filepath.Join(t.TempDir(), "out.ini")))
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "config.yaml", "logging:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 8)
	require.NoError(t, Watch(ctx, path, func(c *Config) {
		select {
		case got <- c:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	// A truncating write can surface as two events; wait for the final one.
	timeout := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-got:
			if cfg.Logging.Level == "debug" {
				return
			}
		case <-timeout:
			t.Fatal("no reload after writing the config file")
		}
	}
}
