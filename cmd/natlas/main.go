// Command natlas is the verbal mention detection and transcript search
// service: it extracts audio from uploaded videos, transcribes them, detects
// which chat participants are mentioned by name, and searches transcript
// batches for the backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/app"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/config"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/observe"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr/mock"
	oaiasr "github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr/openai"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr/whisper"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "natlas: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "natlas: %v\n", err)
		}
		return 1
	}

	slog.SetDefault(newLogger(cfg.Server.LogLevel, cfg.Server.LogFormat))

	slog.Info("natlas starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"asr_provider", cfg.ASR.Name,
		"correction_enabled", cfg.Correction.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	provider, err := buildProvider(cfg.ASR)
	if err != nil {
		slog.Error("failed to build transcription provider", "name", cfg.ASR.Name, "err", err)
		return 1
	}
	if provider == nil {
		slog.Warn("no transcription provider configured — /process-video will answer 503")
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	application, err := app.New(cfg, provider)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	slog.Info("server ready — press Ctrl+C to shut down")

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	slog.Info("goodbye")
	return 0
}

// buildProvider instantiates the transcription provider named in cfg. An
// empty name returns a nil provider: the service still serves /search and
// health endpoints.
func buildProvider(cfg config.ASRConfig) (asr.Provider, error) {
	switch cfg.Name {
	case "":
		return nil, nil

	case "whisper-native":
		var opts []whisper.Option
		if cfg.Language != "" {
			opts = append(opts, whisper.WithLanguage(cfg.Language))
		}
		return whisper.New(cfg.ModelPath, opts...)

	case "openai":
		var opts []oaiasr.Option
		if cfg.BaseURL != "" {
			opts = append(opts, oaiasr.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Language != "" {
			opts = append(opts, oaiasr.WithLanguage(cfg.Language))
		}
		return oaiasr.New(cfg.APIKey, cfg.Model, opts...)

	case "mock":
		return &mock.Provider{}, nil

	default:
		return nil, fmt.Errorf("unknown asr provider %q", cfg.Name)
	}
}

func newLogger(level config.LogLevel, format config.LogFormat) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == config.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
