// Package config loads the optional skpipe yaml configuration file and
// applies defaults. CLI flags override anything set here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"skpipe/internal/rfi"
	"skpipe/internal/sk"
	"skpipe/internal/spectral"
)

// Defaults applied when fields are absent from the config file. They
// match the historical stream/clean defaults.
const (
	DefaultM        = 64
	DefaultN        = 24
	DefaultD        = 1.0
	DefaultPFA      = 1e-3
	DefaultFBlock   = 8
	DefaultFlagMode = "separate"
)

// Config is the top-level skpipe configuration.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Stream StreamConfig `yaml:"stream"`
	Clean  CleanConfig  `yaml:"clean"`
}

// StreamConfig holds the stage-1 parameters.
type StreamConfig struct {
	// M is the number of spectra per SK block.
	M int `yaml:"m"`
	// N and D are the gamma shape and scale parameters of the SK theory.
	N int     `yaml:"n"`
	D float64 `yaml:"d"`
	// PFA is the one-sided probability of false alarm for thresholds.
	PFA float64 `yaml:"pfa"`
	// Start is the 0-based first time sample to process.
	Start int `yaml:"start"`
	// MaxSamples caps the samples processed after Start; 0 means all.
	MaxSamples int `yaml:"max_samples"`
}

// CleanConfig holds the stage-2 parameters.
type CleanConfig struct {
	// FBlock is the frequency block size for integration.
	FBlock int `yaml:"f_block"`
	// FlagMode is the polarization flag combination: separate | or | and.
	FlagMode string `yaml:"flag_mode"`
}

// Params converts the stream section to SK parameters.
func (s StreamConfig) Params() sk.Params {
	return sk.Params{M: s.M, N: s.N, D: s.D, PFA: s.PFA}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Stream: StreamConfig{
			M:   DefaultM,
			N:   DefaultN,
			D:   DefaultD,
			PFA: DefaultPFA,
		},
		Clean: CleanConfig{
			FBlock:   DefaultFBlock,
			FlagMode: DefaultFlagMode,
		},
	}
}

// Load reads path, overlays it on the defaults, and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parameter ranges and the flag mode spelling.
func (c Config) Validate() error {
	if err := c.Stream.Params().Validate(); err != nil {
		return err
	}
	if _, err := rfi.ParsePolicy(c.Clean.FlagMode); err != nil {
		return err
	}
	if c.Clean.FBlock <= 0 {
		return fmt.Errorf("%w: f_block=%d must be > 0", spectral.ErrConfig, c.Clean.FBlock)
	}
	return nil
}
