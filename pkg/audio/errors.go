// ABOUTME: Sentinel errors for the audio engine
// ABOUTME: All per-call failures are recoverable by the caller
package audio

import "errors"

var (
	// ErrNoFreeVoice is returned by Play when all 32 voices are in use.
	ErrNoFreeVoice = errors.New("audio: no free voice")

	// ErrInvalidVoiceIndex is returned for voice indices outside [1, NumVoices].
	ErrInvalidVoiceIndex = errors.New("audio: voice index out of range")

	// ErrSampleDestroyed is returned for operations on a destroyed sample.
	ErrSampleDestroyed = errors.New("audio: sample destroyed")

	// ErrInvalidChannelCount is returned when a sample is neither mono nor stereo.
	ErrInvalidChannelCount = errors.New("audio: sample must be mono or stereo")
)
