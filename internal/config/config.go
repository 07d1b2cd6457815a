// Package config loads pokereval settings from an HCL file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Environment overrides, applied after the file.
const (
	EnvTables   = "POKEREVAL_TABLES"
	EnvLogLevel = "POKEREVAL_LOG_LEVEL"
	EnvWorkers  = "POKEREVAL_WORKERS"
	EnvAddr     = "POKEREVAL_ADDR"
)

// Config is the complete configuration.
type Config struct {
	TablesPath string            `hcl:"tables_path,optional"`
	LogLevel   string            `hcl:"log_level,optional"`
	Workers    int               `hcl:"workers,optional"`
	Server     *ServerSettings   `hcl:"server,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// ServerSettings configures the evaluation server.
type ServerSettings struct {
	Address      string `hcl:"address,optional"`
	ReadLimit    int64  `hcl:"read_limit,optional"`
	WriteTimeout string `hcl:"write_timeout,optional"`
}

// SimulationConfig holds equity simulation defaults.
type SimulationConfig struct {
	Samples int    `hcl:"samples,optional"`
	Seed    int64  `hcl:"seed,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers == 0 {
		c.Workers = min(runtime.NumCPU(), 8)
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.ReadLimit == 0 {
		c.Server.ReadLimit = 64 << 10
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Samples == 0 {
		c.Simulation.Samples = 100000
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = "1m"
	}
}

// Load reads filename, falling back to defaults when it does not exist, and
// then applies environment overrides.
func Load(filename string) (*Config, error) {
	cfg := &Config{}
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			if err := decodeFile(filename, cfg); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTables); ok {
		c.TablesPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks ranges and durations.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if c.Server.ReadLimit < 256 {
		return fmt.Errorf("invalid read_limit: %d", c.Server.ReadLimit)
	}
	if c.Simulation.Samples < 1 {
		return fmt.Errorf("invalid samples: %d", c.Simulation.Samples)
	}
	if _, err := c.Server.WriteTimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.Simulation.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// WriteTimeoutDuration parses WriteTimeout.
func (s *ServerSettings) WriteTimeoutDuration() (time.Duration, error) {
	return parseDuration("write_timeout", s.WriteTimeout)
}

// TimeoutDuration parses Timeout. Zero disables the limit.
func (s *SimulationConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", s.Timeout)
}

func parseDuration(field, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: negative", field, v)
	}
	return d, nil
}
