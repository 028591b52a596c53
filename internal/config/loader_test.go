package config_test

import (
	"strings"
	"testing"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/config"
)

func TestLoadFromReader_Valid(t *testing.T) {
	t.Parallel()

	const doc = `
server:
  listen_addr: ":9090"
  log_level: debug
asr:
  name: whisper-native
  model_path: /models/ggml-base.bin
  language: en
correction:
  enabled: true
  phonetic_threshold: 0.75
media:
  temp_dir: /tmp/natlas
`
	cfg, err := config.LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":9090")
	}
	if cfg.ASR.Name != "whisper-native" || cfg.ASR.ModelPath != "/models/ggml-base.bin" {
		t.Errorf("ASR = %+v, want whisper-native with model path", cfg.ASR)
	}
	if !cfg.Correction.Enabled || cfg.Correction.PhoneticThreshold != 0.75 {
		t.Errorf("Correction = %+v, want enabled with threshold 0.75", cfg.Correction)
	}
}

func TestLoadFromReader_DefaultListenAddr(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader("asr:\n  name: mock\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}
	if cfg.Server.ListenAddr != ":8000" {
		t.Errorf("ListenAddr = %q, want default %q", cfg.Server.ListenAddr, ":8000")
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("serverr:\n  listen_addr: ':1'\n"))
	if err == nil {
		t.Fatal("LoadFromReader() with unknown field: want error")
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "bad log level",
			cfg:  config.Config{Server: config.ServerConfig{LogLevel: "loud"}},
			want: "log_level",
		},
		{
			name: "bad log format",
			cfg:  config.Config{Server: config.ServerConfig{LogFormat: "xml"}},
			want: "log_format",
		},
		{
			name: "unknown provider",
			cfg:  config.Config{ASR: config.ASRConfig{Name: "parrot"}},
			want: "asr.name",
		},
		{
			name: "whisper without model path",
			cfg:  config.Config{ASR: config.ASRConfig{Name: "whisper-native"}},
			want: "model_path",
		},
		{
			name: "openai without key",
			cfg:  config.Config{ASR: config.ASRConfig{Name: "openai"}},
			want: "api_key",
		},
		{
			name: "threshold out of range",
			cfg:  config.Config{Correction: config.CorrectionConfig{PhoneticThreshold: 1.5}},
			want: "phonetic_threshold",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := config.Validate(&tc.cfg)
			if err == nil {
				t.Fatal("Validate(): want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() error %q, want mention of %q", err, tc.want)
			}
		})
	}
}
