// ABOUTME: Decoded PCM sample with lifecycle management
// ABOUTME: Samples are owned by the control thread and referenced by voices
package audio

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/noxengine/nox-audio/pkg/audio/decode"
)

// Sample is a fully decoded, interleaved 16-bit PCM buffer with metadata.
// Samples are created by Engine.LoadSample and must only be touched from
// the control thread; the mixer reads the buffer through voice assignments
// made under the engine lock.
type Sample struct {
	id        uuid.UUID
	engine    *Engine
	pcm       []int16
	rate      float64
	channels  int
	destroyed bool
}

// LoadSample decodes a compressed audio blob (WAV, MP3, Ogg Vorbis or FLAC)
// eagerly into a new Sample at its native sample rate and channel count.
func (e *Engine) LoadSample(data []byte) (*Sample, error) {
	pcm, err := decode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load sample: %w", err)
	}

	s := &Sample{
		id:       uuid.New(),
		engine:   e,
		pcm:      pcm.Data,
		rate:     float64(pcm.SampleRate),
		channels: pcm.Channels,
	}

	log.Printf("Loaded sample %s: %dHz, %d channels, %d PCM values",
		s.id, pcm.SampleRate, pcm.Channels, len(pcm.Data))

	return s, nil
}

// ID returns the sample's load-time identifier.
func (s *Sample) ID() uuid.UUID { return s.id }

// SampleRate returns the native sample rate in Hz.
func (s *Sample) SampleRate() float64 { return s.rate }

// Channels returns the channel count (1 or 2 for playable samples).
func (s *Sample) Channels() int { return s.channels }

// Frames returns the number of interleaved PCM values in the buffer.
// A mono frame is one value, a stereo frame two.
func (s *Sample) Frames() int { return len(s.pcm) }

// Valid reports whether the sample has not been destroyed.
func (s *Sample) Valid() bool { return !s.destroyed }

// Length returns the sample duration in seconds.
func (s *Sample) Length() (float64, error) {
	if s.destroyed {
		return 0, ErrSampleDestroyed
	}
	if s.channels != 1 && s.channels != 2 {
		return 0, ErrInvalidChannelCount
	}
	return float64(len(s.pcm)) / float64(s.channels) / s.rate, nil
}

// Destroy stops every voice referencing the sample, releases the PCM buffer
// and marks the sample destroyed. Destroying an already-destroyed sample is
// a no-op. Safe to call while the sample is playing: voices are detached
// under the engine lock before the buffer is released, so the mixer never
// reads a freed buffer.
func (s *Sample) Destroy() {
	if s.destroyed {
		return
	}

	s.engine.StopSample(s)
	s.destroyed = true
	s.pcm = nil

	log.Printf("Destroyed sample %s", s.id)
}
