package media_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/media"
)

func TestExtractAudio_FFmpegMissing(t *testing.T) {
	t.Parallel()

	e := media.NewExtractor(
		media.WithFFmpegPath(filepath.Join(t.TempDir(), "no-such-ffmpeg")),
		media.WithTempDir(t.TempDir()),
	)

	_, err := e.ExtractAudio(context.Background(), "in.mp4", "v1")
	if err == nil {
		t.Fatal("ExtractAudio() with missing binary: want error")
	}
}

func TestCleanup_RemovesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "v1_audio.wav")
	if err := os.WriteFile(path, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	media.NewExtractor(media.WithTempDir(dir)).Cleanup(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Cleanup() left file in place, stat err = %v", err)
	}
}

func TestCleanup_MissingFileIsQuiet(t *testing.T) {
	t.Parallel()

	// Must not panic or log an error for an already-removed file.
	media.NewExtractor().Cleanup(filepath.Join(t.TempDir(), "gone.wav"))
	media.NewExtractor().Cleanup("")
}
