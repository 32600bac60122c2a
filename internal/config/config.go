package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"lifeupmcp/internal/logging"
)

// Config holds all lifeup-mcp configuration.
type Config struct {
	// LifeUp Cloud endpoint
	Server ServerConfig `yaml:"server"`

	// Startup reachability probe
	HealthCheck HealthCheckConfig `yaml:"health_check"`

	// Pacing of the task + subtasks batch
	Subtasks SubtasksConfig `yaml:"subtasks"`

	// Read fan-out
	Client ClientConfig `yaml:"client"`

	// Tool gating
	Mode ModeConfig `yaml:"mode"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig locates the LifeUp Cloud HTTP gateway on the device.
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	APIToken string `yaml:"api_token,omitempty"`
	Timeout  string `yaml:"timeout"`
}

// HealthCheckConfig bounds the startup probe.
type HealthCheckConfig struct {
	Retries int    `yaml:"retries"`
	Delay   string `yaml:"delay"`
}

// SubtasksConfig configures the sequential subtask batch.
type SubtasksConfig struct {
	Delay string `yaml:"delay"`
}

// ClientConfig configures read aggregation.
type ClientConfig struct {
	MaxParallelReads int `yaml:"max_parallel_reads"`
}

// ModeConfig selects which tools are exposed.
type ModeConfig struct {
	// Safe exposes only create and read tools.
	Safe bool `yaml:"safe"`
}

// Defaults that duration getters fall back to.
const (
	DefaultTimeout          = 10 * time.Second
	DefaultHealthCheckDelay = time.Second
	DefaultSubtaskDelay     = 50 * time.Millisecond
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    13276,
			Timeout: "10s",
		},
		HealthCheck: HealthCheckConfig{
			Retries: 3,
			Delay:   "1s",
		},
		Subtasks: SubtasksConfig{
			Delay: "50ms",
		},
		Client: ClientConfig{
			MaxParallelReads: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. Fields the file leaves empty take
// their defaults; environment variables override both. A missing file is not
// an error. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			logging.ConfigDebug("loaded config from %s", path)
		case errors.Is(err, os.ErrNotExist):
			logging.ConfigDebug("no config at %s, using defaults", path)
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := mergo.Merge(cfg, DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Unparseable values
// are ignored.
func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("LIFEUP_HOST"); host != "" {
		c.Server.Host = host
	}
	if raw := os.Getenv("LIFEUP_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			c.Server.Port = port
		} else {
			logging.ConfigDebug("ignoring LIFEUP_PORT=%q: %v", raw, err)
		}
	}
	if token := os.Getenv("LIFEUP_API_TOKEN"); token != "" {
		c.Server.APIToken = token
	}
	if raw := os.Getenv("LIFEUP_TIMEOUT"); raw != "" {
		// Bare numbers are milliseconds.
		if ms, err := strconv.Atoi(raw); err == nil {
			c.Server.Timeout = (time.Duration(ms) * time.Millisecond).String()
		} else {
			c.Server.Timeout = raw
		}
	}
	if raw := os.Getenv("LIFEUP_SAFE_MODE"); raw != "" {
		if safe, err := strconv.ParseBool(raw); err == nil {
			c.Mode.Safe = safe
		} else {
			logging.ConfigDebug("ignoring LIFEUP_SAFE_MODE=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("LIFEUP_DEBUG"); raw != "" {
		if debug, _ := strconv.ParseBool(raw); debug {
			c.Logging.Level = "debug"
		}
	}
}

// BaseURL returns the LifeUp Cloud root URL.
func (c *Config) BaseURL() string {
	host := strings.TrimSuffix(c.Server.Host, "/")
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return fmt.Sprintf("%s:%d", host, c.Server.Port)
}

// GetTimeout returns the HTTP timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.Server.Timeout, DefaultTimeout)
}

// GetHealthCheckDelay returns the delay between health probe attempts.
func (c *Config) GetHealthCheckDelay() time.Duration {
	return parseDuration(c.HealthCheck.Delay, DefaultHealthCheckDelay)
}

// GetSubtaskDelay returns the pause between consecutive subtask calls.
func (c *Config) GetSubtaskDelay() time.Duration {
	return parseDuration(c.Subtasks.Delay, DefaultSubtaskDelay)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host is required (set it in the config file or LIFEUP_HOST)")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d (must be 1-65535)", c.Server.Port)
	}
	for name, value := range map[string]string{
		"server.timeout":     c.Server.Timeout,
		"health_check.delay": c.HealthCheck.Delay,
		"subtasks.delay":     c.Subtasks.Delay,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return fmt.Errorf("invalid %s: %q", name, value)
		}
	}
	if c.HealthCheck.Retries < 1 {
		return fmt.Errorf("invalid health_check.retries: %d (must be at least 1)", c.HealthCheck.Retries)
	}
	if c.Client.MaxParallelReads < 1 {
		return fmt.Errorf("invalid client.max_parallel_reads: %d (must be at least 1)", c.Client.MaxParallelReads)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}
