// Package asr defines the Provider interface for transcription backends.
//
// A transcription provider is an opaque collaborator: it accepts a path to an
// extracted audio file and returns plain transcript text or an error. The
// mention detection and search engines never see audio — they operate purely
// on the text a Provider returns.
//
// Implementations must be safe for concurrent use; the host service may
// process several videos at once.
package asr

import "context"

// Result is the outcome of a successful transcription.
type Result struct {
	// Text is the full transcript, chunk texts joined by single spaces.
	Text string

	// DurationSeconds is the length of the source audio.
	DurationSeconds float64

	// Language is the BCP-47 tag the provider recognised or was configured
	// with (e.g., "en-NG"). Empty when unknown.
	Language string
}

// Provider is the abstraction over any transcription backend.
type Provider interface {
	// Transcribe converts the audio file at audioPath (16 kHz mono s16le
	// WAV, as produced by the media extractor) into text.
	//
	// A transcript may legitimately be empty (silent audio); that is not an
	// error. Errors indicate the provider could not process the audio at
	// all. Implementations must respect ctx cancellation between chunks or
	// network calls.
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}
