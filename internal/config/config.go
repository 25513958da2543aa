package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given and it exists
const DefaultPath = "treeslice.yaml"

// Measurement selects and tunes the diameter source
type Measurement struct {
	// Source is one of manual, simulated, gemini, ollama, openai
	Source         string        `yaml:"source"`
	Model          string        `yaml:"model"`
	Timeout        time.Duration `yaml:"timeout"`
	SimulatedMinCM float64       `yaml:"simulated_min_cm"`
	SimulatedMaxCM float64       `yaml:"simulated_max_cm"`
	Seed           uint64        `yaml:"seed"`
	OllamaURL      string        `yaml:"ollama_url"`
}

// Config is the runtime configuration for the server and CLI
type Config struct {
	Port              string      `yaml:"port"`
	MaxUploadMB       int         `yaml:"max_upload_mb"`
	DuplicateDistance int         `yaml:"duplicate_distance"`
	Measurement       Measurement `yaml:"measurement"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:              "8888",
		MaxUploadMB:       10,
		DuplicateDistance: 10,
		Measurement: Measurement{
			Source:         "manual",
			Timeout:        60 * time.Second,
			SimulatedMinCM: 10,
			SimulatedMaxCM: 60,
		},
	}
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides. An empty path reads DefaultPath when present.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TREESLICE_PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("TREESLICE_MEASUREMENT_SOURCE"); v != "" {
		c.Measurement.Source = v
	}
	if v := os.Getenv("TREESLICE_MEASUREMENT_MODEL"); v != "" {
		c.Measurement.Model = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.Measurement.OllamaURL = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"TREESLICE_MAX_UPLOAD_MB", &c.MaxUploadMB},
		{"TREESLICE_DUPLICATE_DISTANCE", &c.DuplicateDistance},
	}
	for _, i := range ints {
		v := os.Getenv(i.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", i.env, v, err)
		}
		*i.dst = n
	}

	return nil
}
