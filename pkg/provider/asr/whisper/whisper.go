// Package whisper implements [asr.Provider] using the whisper.cpp CGO
// bindings. The whisper.cpp static library (libwhisper.a) and headers
// (whisper.h) must be available at link time via LIBRARY_PATH and
// C_INCLUDE_PATH environment variables.
//
// The model is loaded once at construction and shared across all Transcribe
// calls; each call creates its own whisper context, so concurrent
// transcription is safe.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
)

const (
	defaultLanguage = "en"

	// requiredSampleRate is the only sample rate whisper.cpp accepts; the
	// media extractor produces exactly this format.
	requiredSampleRate = 16000

	// chunkSeconds is the inference window size. Whisper models are trained
	// on 30-second windows.
	chunkSeconds = 30

	// minChunkSeconds: trailing chunks shorter than this are skipped — they
	// carry almost no speech and produce hallucinated output.
	minChunkSeconds = 1
)

// Compile-time assertion that Provider satisfies asr.Provider.
var _ asr.Provider = (*Provider)(nil)

// Provider transcribes audio files with a locally loaded whisper.cpp model.
type Provider struct {
	model    whisperlib.Model
	language string
}

// Option is a functional option for configuring a Provider.
type Option func(*Provider)

// WithLanguage sets the BCP-47 language code for transcription (e.g., "en",
// "yo", "ha"). Defaults to "en".
func WithLanguage(lang string) Option {
	return func(p *Provider) { p.language = lang }
}

// New creates a Provider that loads the whisper.cpp model from the given
// file path. The caller must call Close when the provider is no longer
// needed.
func New(modelPath string, opts ...Option) (*Provider, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}

	p := &Provider{
		model:    model,
		language: defaultLanguage,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Close releases the whisper model.
func (p *Provider) Close() error {
	if p.model != nil {
		return p.model.Close()
	}
	return nil
}

// Transcribe reads the WAV file at audioPath and runs chunked whisper
// inference over it. The audio is processed in 30-second windows; chunk
// texts are joined with single spaces. Trailing audio shorter than one
// second is skipped.
func (p *Provider) Transcribe(ctx context.Context, audioPath string) (*asr.Result, error) {
	samples, sampleRate, err := readWAV(audioPath)
	if err != nil {
		return nil, err
	}
	if sampleRate != requiredSampleRate {
		return nil, fmt.Errorf("whisper: sample rate mismatch: expected %d Hz, got %d Hz", requiredSampleRate, sampleRate)
	}

	duration := float64(len(samples)) / float64(sampleRate)
	chunkSize := chunkSeconds * sampleRate
	minSize := minChunkSeconds * sampleRate

	var parts []string
	for start := 0; start < len(samples); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("whisper: transcription cancelled: %w", err)
		}

		end := min(start+chunkSize, len(samples))
		if end-start < minSize {
			continue
		}

		text, err := p.infer(samples[start:end])
		if err != nil {
			return nil, err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return &asr.Result{
		Text:            strings.Join(parts, " "),
		DurationSeconds: duration,
		Language:        p.language,
	}, nil
}

// infer runs whisper.cpp inference over one chunk using a fresh context.
// Contexts are not thread-safe, but the shared model is.
func (p *Provider) infer(samples []float32) (string, error) {
	wctx, err := p.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper: create context: %w", err)
	}

	if err := wctx.SetLanguage(p.language); err != nil {
		return "", fmt.Errorf("whisper: set language %q: %w", p.language, err)
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper: read segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
