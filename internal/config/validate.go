package config

import (
	"errors"
	"fmt"
)

// Sources lists the accepted measurement source names
var Sources = []string{"manual", "simulated", "gemini", "ollama", "openai"}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB))
	}
	if c.DuplicateDistance < 0 || c.DuplicateDistance > 64 {
		errs = append(errs, fmt.Errorf("duplicate_distance must be between 0 and 64, got %d", c.DuplicateDistance))
	}

	known := false
	for _, s := range Sources {
		if c.Measurement.Source == s {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unknown measurement source %q (supported: %v)", c.Measurement.Source, Sources))
	}
	if c.Measurement.Source == "simulated" {
		if c.Measurement.SimulatedMinCM < 0 || c.Measurement.SimulatedMaxCM < c.Measurement.SimulatedMinCM {
			errs = append(errs, fmt.Errorf("invalid simulated range [%g, %g]", c.Measurement.SimulatedMinCM, c.Measurement.SimulatedMaxCM))
		}
	}
	if c.Measurement.Timeout < 0 {
		errs = append(errs, fmt.Errorf("measurement timeout must not be negative, got %s", c.Measurement.Timeout))
	}

	return errors.Join(errs...)
}

// MaxUploadBytes returns the per-file upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}
