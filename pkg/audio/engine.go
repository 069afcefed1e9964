// ABOUTME: Voice pool manager and engine context object
// ABOUTME: All operations here run on the control thread under the shared lock
package audio

import "sync"

// NumVoices is the fixed size of the voice pool.
const NumVoices = 32

// voice is one slot of the playback pool. A slot is Free when both sample
// and held are nil, Assigned while sample is set, and Finished once the
// mixer has cleared sample but held still pins the originating Sample.
type voice struct {
	sample  *Sample // read by the mixer; only the mixer clears it
	held    *Sample // strong reference token, dropped only by Purge
	pos     float64 // fractional position in interleaved PCM values
	gain    float64
	pitch   float64
	pan     float64
	looping bool
}

// Engine is the audio context object. It is constructed explicitly and
// passed to every operation so that tests can run multiple instances.
type Engine struct {
	mu         sync.Mutex
	voices     [NumVoices]voice
	gain       float64
	sampleRate int
}

// NewEngine creates an engine mixing at the given output sample rate.
func NewEngine(sampleRate int) *Engine {
	return &Engine{
		gain:       1.0,
		sampleRate: sampleRate,
	}
}

// SampleRate returns the output sample rate in Hz.
func (e *Engine) SampleRate() int { return e.sampleRate }

// PlayOptions holds per-playback parameters. Out-of-range values are
// clamped by Play: gain to [0,1], pitch to [0.5,2], pan to [-1,1].
type PlayOptions struct {
	Gain    float64
	Pitch   float64
	Pan     float64
	Looping bool
}

// DefaultPlayOptions returns full gain, natural pitch, centered pan.
func DefaultPlayOptions() PlayOptions {
	return PlayOptions{Gain: 1.0, Pitch: 1.0}
}

// Play assigns the sample to the first free voice and returns the 1-based
// voice index. Fails with ErrNoFreeVoice when the pool is exhausted and
// ErrSampleDestroyed when the sample is no longer valid.
func (e *Engine) Play(s *Sample, opts PlayOptions) (int, error) {
	if s == nil || s.destroyed {
		return 0, ErrSampleDestroyed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.voices {
		v := &e.voices[i]
		if v.sample != nil || v.held != nil {
			continue
		}

		v.gain = clamp(opts.Gain, 0.0, 1.0)
		v.pitch = clamp(opts.Pitch, 0.5, 2.0)
		v.pan = clamp(opts.Pan, -1.0, 1.0)
		v.looping = opts.Looping
		v.pos = 0
		v.held = s
		// Published last: the slot becomes visible to the mixer only
		// once every other field is in place.
		v.sample = s

		return i + 1, nil
	}

	return 0, ErrNoFreeVoice
}

// StopVoice stops the voice at the given 1-based index. Stopping an
// already-free voice is a no-op; cancellation is immediate.
func (e *Engine) StopVoice(index int) error {
	if index < 1 || index > NumVoices {
		return ErrInvalidVoiceIndex
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopVoiceLocked(index - 1)
	return nil
}

// StopAll stops every voice.
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.voices {
		e.stopVoiceLocked(i)
	}
}

// StopSample stops every voice currently referencing s, including finished
// voices still holding a reference. Required before a sample that may be
// playing is destroyed.
func (e *Engine) StopSample(s *Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.voices {
		v := &e.voices[i]
		if v.sample == s || v.held == s {
			e.stopVoiceLocked(i)
		}
	}
}

func (e *Engine) stopVoiceLocked(i int) {
	e.voices[i].sample = nil
	e.voices[i].held = nil
}

// VoicePlaying reports whether the voice at the 1-based index has a sample
// assigned.
func (e *Engine) VoicePlaying(index int) (bool, error) {
	if index < 1 || index > NumVoices {
		return false, ErrInvalidVoiceIndex
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.voices[index-1].sample != nil, nil
}

// SamplePlaying reports whether any voice is assigned to s.
func (e *Engine) SamplePlaying(s *Sample) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.voices {
		if e.voices[i].sample == s {
			return true
		}
	}
	return false
}

// Purge releases the reference held by every finished voice, returning the
// slot to the free pool. Must be called once per frame on the control
// thread, before other per-frame work, so that reclamation never runs on
// the audio thread.
func (e *Engine) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.voices {
		v := &e.voices[i]
		if v.sample == nil && v.held != nil {
			v.held = nil
		}
	}
}

// Gain returns the global output gain.
func (e *Engine) Gain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gain
}

// SetGain sets the global output gain, clamped to [0,1].
func (e *Engine) SetGain(gain float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gain = clamp(gain, 0.0, 1.0)
}

// VoiceState is a control-thread diagnostic snapshot of one voice slot.
type VoiceState struct {
	Index    int // 1-based
	Playing  bool
	Finished bool // waiting for Purge
	Position float64
	Gain     float64
	Pitch    float64
	Pan      float64
	Looping  bool
}

// Voices returns a snapshot of all voice slots. Diagnostic only; not for
// use from the audio thread.
func (e *Engine) Voices() []VoiceState {
	e.mu.Lock()
	defer e.mu.Unlock()

	states := make([]VoiceState, NumVoices)
	for i := range e.voices {
		v := &e.voices[i]
		states[i] = VoiceState{
			Index:    i + 1,
			Playing:  v.sample != nil,
			Finished: v.sample == nil && v.held != nil,
			Position: v.pos,
			Gain:     v.gain,
			Pitch:    v.pitch,
			Pan:      v.pan,
			Looping:  v.looping,
		}
	}
	return states
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
