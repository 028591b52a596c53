package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// validASRProviders lists the known transcription provider names.
var validASRProviders = []string{"whisper-native", "openai", "mock"}

// defaultListenAddr is used when server.listen_addr is not set.
const defaultListenAddr = ":8000"

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaultListenAddr
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.LogFormat != "" && !cfg.Server.LogFormat.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_format %q is invalid; valid values: text, json", cfg.Server.LogFormat))
	}

	switch {
	case cfg.ASR.Name == "":
		slog.Warn("asr.name is empty; /process-video will be unavailable until a transcription provider is configured")
	case !slices.Contains(validASRProviders, cfg.ASR.Name):
		errs = append(errs, fmt.Errorf("asr.name %q is unknown; valid values: %v", cfg.ASR.Name, validASRProviders))
	case cfg.ASR.Name == "whisper-native" && cfg.ASR.ModelPath == "":
		errs = append(errs, errors.New("asr.model_path is required for the whisper-native provider"))
	case cfg.ASR.Name == "openai" && cfg.ASR.APIKey == "":
		errs = append(errs, errors.New("asr.api_key is required for the openai provider"))
	}

	if t := cfg.Correction.PhoneticThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("correction.phonetic_threshold %.2f is out of range [0, 1]", t))
	}
	if t := cfg.Correction.FuzzyThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("correction.fuzzy_threshold %.2f is out of range [0, 1]", t))
	}

	return errors.Join(errs...)
}
