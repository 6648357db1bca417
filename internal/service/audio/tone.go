package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// Tone describes a sine beep.
type Tone struct {
	// FrequencyHz is the pitch.
	FrequencyHz float64
	// Duration is the length of the beep.
	Duration time.Duration
	// Volume is the linear gain in (0, 1].
	Volume float64
	// SampleRate is the number of samples per second.
	SampleRate int
}

const (
	defaultSampleRate = 44100
	bitsPerSample     = 16
	// fadeSamples smooths both ends of the beep to avoid clicks.
	fadeSamples = 256
	// MaxToneDuration bounds the rendered beep.
	MaxToneDuration = 10 * time.Second
)

// ErrToneTooLong is returned by WriteWAV for a duration above MaxToneDuration.
var ErrToneTooLong = errors.New("tone is too long")

// DefaultTone is the 880 Hz, 0.4 s beep at 0.08 gain.
func DefaultTone() Tone {
	return Tone{
		FrequencyHz: 880,
		Duration:    400 * time.Millisecond,
		Volume:      0.08,
		SampleRate:  defaultSampleRate,
	}
}

// WriteWAV renders the tone as a RIFF/WAVE stream.
func (t Tone) WriteWAV(w io.Writer) error {
	if t.Duration > MaxToneDuration {
		return fmt.Errorf("%w: %s", ErrToneTooLong, t.Duration)
	}

	rate := t.SampleRate
	if rate <= 0 || rate > defaultSampleRate {
		rate = defaultSampleRate
	}

	samples := int(t.Duration.Seconds() * float64(rate))
	dataSize := samples * bitsPerSample / 8

	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [4]byte
		Subchunk1ID   [4]byte
		Subchunk1Size uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Subchunk2ID   [4]byte
		Subchunk2Size uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + dataSize), //nolint:gosec // Bounded by MaxToneDuration.
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(rate),                     //nolint:gosec // Positive.
		ByteRate:      uint32(rate * bitsPerSample / 8), //nolint:gosec // Positive.
		BlockAlign:    bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataSize), //nolint:gosec // Bounded by MaxToneDuration.
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	pcm := make([]int16, samples)
	for i := range pcm {
		envelope := 1.0
		if fade := min(i, samples-1-i); fade < fadeSamples {
			envelope = float64(fade) / fadeSamples
		}

		value := math.Sin(2*math.Pi*t.FrequencyHz*float64(i)/float64(rate)) * t.Volume * envelope
		pcm[i] = int16(value * math.MaxInt16)
	}

	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}

	return nil
}
