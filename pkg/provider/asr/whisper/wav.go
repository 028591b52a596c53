package whisper

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// readWAV decodes a 16-bit PCM WAV file into normalised float32 mono samples
// in [-1.0, 1.0] and returns them with the file's sample rate. Multi-channel
// audio is down-mixed by averaging all channels per frame.
func readWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("whisper: open audio %q: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, 0, errors.New("whisper: input is not a valid WAV file")
	}
	if decoder.BitDepth != 16 {
		return nil, 0, fmt.Errorf("whisper: unsupported bit depth %d, want 16", decoder.BitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("whisper: decode audio %q: %w", path, err)
	}

	channels := int(decoder.NumChans)
	if channels < 1 {
		channels = 1
	}

	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := range frames {
		var sum float32
		for ch := range channels {
			sum += float32(buf.Data[i*channels+ch]) / 32768.0
		}
		samples[i] = sum / float32(channels)
	}

	return samples, int(decoder.SampleRate), nil
}
