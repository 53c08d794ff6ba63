// Package config loads and validates proofsite configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"proofsite/internal/solver"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "proofsite.yaml"

// Config holds all proofsite configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Input/output locations
	Proofs ProofsConfig `yaml:"proofs"`
	Output OutputConfig `yaml:"output"`

	// Solver configuration published on pages
	Solver SolverConfig `yaml:"solver"`

	// Site presentation
	Site SiteConfig `yaml:"site"`

	// Preview server
	Serve ServeConfig `yaml:"serve"`

	// Build history store
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProofsConfig locates the theorem records.
type ProofsConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// SolverConfig configures the published solver parameters.
type SolverConfig struct {
	Backend              string `yaml:"backend"` // why3, z3, cvc4, alt-ergo
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	GenerateCertificates bool   `yaml:"generate_certificates"`
}

// SiteConfig configures page presentation.
type SiteConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Language string `yaml:"language"` // HTML lang attribute
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig configures the build history database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "proofsite",
		Version: "1.0.0",

		Proofs: ProofsConfig{Dir: "proofs"},
		Output: OutputConfig{Dir: "output"},

		Solver: SolverConfig{
			Backend:              solver.BackendWhy3,
			TimeoutSeconds:       30,
			GenerateCertificates: true,
		},

		Site: SiteConfig{
			Title:    "WHY3 Proof Solver",
			Subtitle: "Formal mathematical proofs",
			Language: "en",
		},

		Serve: ServeConfig{Addr: "localhost:8311"},

		Store: StoreConfig{Path: filepath.Join(".proofsite", "history.db")},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
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

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("PROOFSITE_PROOFS_DIR"); dir != "" {
		c.Proofs.Dir = dir
	}
	if dir := os.Getenv("PROOFSITE_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
	if backend := os.Getenv("PROOFSITE_SOLVER"); backend != "" {
		c.Solver.Backend = backend
	}
	if timeout := os.Getenv("PROOFSITE_SOLVER_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.Solver.TimeoutSeconds = secs
		}
	}
	if addr := os.Getenv("PROOFSITE_ADDR"); addr != "" {
		c.Serve.Addr = addr
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Proofs.Dir == "" {
		return fmt.Errorf("proofs directory not configured")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	if !solver.IsKnownBackend(c.Solver.Backend) {
		return fmt.Errorf("invalid solver backend: %s (valid: %v)", c.Solver.Backend, solver.Backends)
	}
	if c.Solver.TimeoutSeconds <= 0 {
		return fmt.Errorf("solver timeout must be positive, got %d", c.Solver.TimeoutSeconds)
	}
	return nil
}

// SolverContext returns the solver run context derived from the config.
func (c *Config) SolverContext() solver.Context {
	return solver.Context{
		Backend:              c.Solver.Backend,
		TimeoutSeconds:       c.Solver.TimeoutSeconds,
		GenerateCertificates: c.Solver.GenerateCertificates,
	}
}
