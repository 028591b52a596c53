// Package config provides the configuration schema and loader for the
// n-atlas-scenapps service.
package config

// LogLevel controls log verbosity for the server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the slog handler used for server logs.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool {
	return f == LogText || f == LogJSON
}

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	ASR        ASRConfig        `yaml:"asr"`
	Correction CorrectionConfig `yaml:"correction"`
	Media      MediaConfig      `yaml:"media"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP server listens on (e.g., ":8000").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// LogFormat selects text (default, human-readable) or json (for log
	// aggregation) output.
	LogFormat LogFormat `yaml:"log_format"`
}

// ASRConfig selects and configures the transcription provider.
type ASRConfig struct {
	// Name selects the provider implementation: "whisper-native" or "openai".
	Name string `yaml:"name"`

	// Model selects a model within the provider (e.g., "whisper-1" for the
	// OpenAI provider).
	Model string `yaml:"model"`

	// ModelPath is the local model file for the whisper-native provider.
	ModelPath string `yaml:"model_path"`

	// APIKey authenticates hosted providers.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides a hosted provider's default API endpoint.
	BaseURL string `yaml:"base_url"`

	// Language is the expected speech language (e.g., "en"). Empty lets the
	// provider auto-detect when supported.
	Language string `yaml:"language"`
}

// CorrectionConfig controls the phonetic name-correction pass applied to raw
// ASR text before mention detection.
type CorrectionConfig struct {
	// Enabled turns the correction pass on. Off by default — detection then
	// runs on the raw transcript.
	Enabled bool `yaml:"enabled"`

	// PhoneticThreshold is the minimum similarity for phonetically-filtered
	// candidates. Zero means the matcher default (0.70).
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum similarity for the non-phonetic
	// fallback. Zero means the matcher default (0.85).
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// MediaConfig holds audio extraction settings.
type MediaConfig struct {
	// FFmpegPath is the ffmpeg binary used for audio extraction.
	// Empty means "ffmpeg" resolved from PATH.
	FFmpegPath string `yaml:"ffmpeg_path"`

	// TempDir is where extracted audio files are written. Empty means the
	// OS temp directory.
	TempDir string `yaml:"temp_dir"`
}
