// Package media handles video ingestion: extracting the audio track of an
// uploaded video into the 16 kHz mono WAV format the transcription providers
// expect, and cleaning the temporary file up afterwards.
//
// Extraction shells out to ffmpeg. The package has no algorithmic content —
// it is the thin boundary between the host's file storage and the
// transcription pipeline.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoAudioTrack is returned when the source video contains no audio stream.
var ErrNoAudioTrack = errors.New("media: video has no audio track")

// ffmpeg output format arguments: 16 kHz mono signed 16-bit little-endian
// PCM, the input format required by the ASR providers.
var outputArgs = []string{"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1"}

// Extractor extracts audio tracks from video files. Safe for concurrent use.
type Extractor struct {
	ffmpegPath string
	tempDir    string
}

// Option is a functional option for configuring an [Extractor].
type Option func(*Extractor)

// WithFFmpegPath sets the ffmpeg binary to invoke. Defaults to "ffmpeg"
// resolved from PATH.
func WithFFmpegPath(path string) Option {
	return func(e *Extractor) { e.ffmpegPath = path }
}

// WithTempDir sets the directory extracted audio files are written to.
// Defaults to the OS temp directory.
func WithTempDir(dir string) Option {
	return func(e *Extractor) { e.tempDir = dir }
}

// NewExtractor returns an Extractor configured with the supplied options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		tempDir:    os.TempDir(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ExtractAudio demuxes and resamples the audio track of the video at
// videoPath into "<tempDir>/<videoID>_audio.wav" and returns that path.
// Returns [ErrNoAudioTrack] when the video has no audio stream, or a wrapped
// ffmpeg error otherwise. The caller owns the returned file and should pass
// it to [Extractor.Cleanup] when done.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath, videoID string) (string, error) {
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("media: create temp dir %q: %w", e.tempDir, err)
	}

	audioPath := filepath.Join(e.tempDir, videoID+"_audio.wav")

	args := []string{"-y", "-i", videoPath}
	args = append(args, outputArgs...)
	args = append(args, audioPath)

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "does not contain any stream") {
			return "", ErrNoAudioTrack
		}
		return "", fmt.Errorf("media: ffmpeg failed for video %q: %w: %s", videoID, err, lastLine(stderr.String()))
	}

	return audioPath, nil
}

// Cleanup removes a temporary audio file. Failure to remove is logged, not
// returned — a leaked temp file must not fail the request it belongs to.
func (e *Extractor) Cleanup(audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.Remove(audioPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("media: cleanup failed", "path", audioPath, "err", err)
	}
}

// lastLine returns the final non-empty line of s; ffmpeg puts the actual
// failure reason there, below pages of banner output.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
