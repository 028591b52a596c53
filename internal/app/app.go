// Package app wires the service subsystems into a running HTTP server.
//
// New assembles the processing pipeline (extractor, ASR provider, optional
// name correction), the health and metrics endpoints, and the observability
// middleware. Run owns the http.Server lifecycle and blocks until the context
// is cancelled, then drains in-flight requests before returning.
//
// For testing, inject doubles via functional options (WithExtractor,
// WithMetrics). When an option is not provided, New creates real
// implementations from the config.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/api"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/config"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/health"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/media"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/observe"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/transcript"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
)

// Timeouts for the HTTP server. Video processing holds the connection for
// the duration of extraction + transcription, so the write timeout is long.
const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Minute
	shutdownTimeout   = 15 * time.Second
)

// App owns the HTTP server and its handler graph.
type App struct {
	cfg    *config.Config
	server *http.Server
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App, *collaborators)

// collaborators holds injectable pieces New would otherwise build from config.
type collaborators struct {
	extractor api.AudioExtractor
	metrics   *observe.Metrics
}

// WithExtractor injects an audio extractor instead of creating an ffmpeg one
// from config.
func WithExtractor(e api.AudioExtractor) Option {
	return func(_ *App, c *collaborators) { c.extractor = e }
}

// WithMetrics injects metrics instruments instead of using the global default.
func WithMetrics(m *observe.Metrics) Option {
	return func(_ *App, c *collaborators) { c.metrics = m }
}

// New assembles the application from cfg and the (possibly nil) transcription
// provider. A nil provider leaves /search and the health endpoints working
// while /process-video answers 503.
func New(cfg *config.Config, provider asr.Provider, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config must not be nil")
	}

	a := &App{cfg: cfg}
	var c collaborators
	for _, o := range opts {
		o(a, &c)
	}

	if c.extractor == nil {
		var extractorOpts []media.Option
		if cfg.Media.FFmpegPath != "" {
			extractorOpts = append(extractorOpts, media.WithFFmpegPath(cfg.Media.FFmpegPath))
		}
		if cfg.Media.TempDir != "" {
			extractorOpts = append(extractorOpts, media.WithTempDir(cfg.Media.TempDir))
		}
		c.extractor = media.NewExtractor(extractorOpts...)
	}
	if c.metrics == nil {
		c.metrics = observe.DefaultMetrics()
	}

	srv := api.New(api.Config{
		ASR:       provider,
		ASRName:   cfg.ASR.Name,
		Extractor: c.extractor,
		Corrector: buildCorrector(cfg.Correction),
		Metrics:   c.metrics,
	})

	mux := http.NewServeMux()
	srv.Register(mux)
	health.New(asrChecker(provider)).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           observe.Middleware(c.metrics)(mux),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	return a, nil
}

// Handler returns the fully-wired HTTP handler. Exposed for httptest.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails. On cancellation the server is shut down gracefully, draining
// in-flight requests for up to shutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: serve on %q: %w", a.server.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// buildCorrector creates the phonetic name corrector when the correction pass
// is enabled; nil disables the pass.
func buildCorrector(cfg config.CorrectionConfig) *transcript.Corrector {
	if !cfg.Enabled {
		return nil
	}
	var opts []transcript.MatcherOption
	if cfg.PhoneticThreshold > 0 {
		opts = append(opts, transcript.WithPhoneticThreshold(cfg.PhoneticThreshold))
	}
	if cfg.FuzzyThreshold > 0 {
		opts = append(opts, transcript.WithFuzzyThreshold(cfg.FuzzyThreshold))
	}
	return transcript.NewCorrector(transcript.NewNameMatcher(opts...))
}

// asrChecker reports readiness of the transcription provider. The service is
// not ready to process videos until a provider is configured.
func asrChecker(provider asr.Provider) health.Checker {
	return health.Checker{
		Name: "asr",
		Check: func(context.Context) error {
			if provider == nil {
				return errors.New("transcription provider not configured")
			}
			return nil
		},
	}
}
