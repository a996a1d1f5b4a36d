// Package config resolves runtime settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file,
// BEEPERS_* environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present and no other file is named.
const DefaultFile = "beepers.yaml"

// Voice modes.
const (
	VoiceNotes = "notes"
	VoiceMute  = "mute"
)

// Config holds every tunable setting.
type Config struct {
	// DataPath is the pet collection. A .db or .sqlite suffix selects the
	// SQLite backend.
	DataPath  string `yaml:"data_path" env:"BEEPERS_DATA"`
	ReportDir string `yaml:"report_dir" env:"BEEPERS_REPORT_DIR"`
	AudioDir  string `yaml:"audio_dir" env:"BEEPERS_AUDIO_DIR"`
	Voice     string `yaml:"voice" env:"BEEPERS_VOICE"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"BEEPERS_SEED"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataPath:  "data/pets.json",
		ReportDir: "reports",
		AudioDir:  "audio_samples",
		Voice:     VoiceNotes,
	}
}

// Load resolves settings from path and the environment. A missing file is
// only an error when required is true.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the rest of the program cannot act on.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("config: data_path must not be empty")
	}
	switch c.Voice {
	case VoiceNotes, VoiceMute:
	default:
		return fmt.Errorf("config: voice must be %q or %q, got %q", VoiceNotes, VoiceMute, c.Voice)
	}
	return nil
}

// decodeYAML rejects unknown keys so typos do not silently fall back to
// defaults.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
