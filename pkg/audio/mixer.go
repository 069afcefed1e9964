// ABOUTME: Real-time mixer callback body
// ABOUTME: Runs on the audio thread; never allocates, logs or blocks beyond the shared lock
package audio

// Mix fills dst with interleaved stereo float32 frames, advancing every
// assigned voice. The audio device calls this from its playback thread at a
// fixed buffer cadence.
//
// Sample-rate conversion is truncating nearest-sample: the fractional voice
// position advances by rate/outputRate*pitch per output frame (doubled for
// stereo sources, whose frames occupy two PCM values) and indexes the
// buffer with its integer part. No interpolation is performed.
//
// A voice whose position passes the end of its buffer wraps to exactly 0
// when looping, otherwise it clears its sample assignment and waits for the
// control thread's Purge. The summed output is scaled by the global gain
// and hard-clipped to [-1, 1].
func (e *Engine) Mix(dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	outRate := float64(e.sampleRate)

	for i := 0; i+1 < len(dst); i += 2 {
		var left, right float64

		for j := range e.voices {
			v := &e.voices[j]
			s := v.sample
			if s == nil {
				continue
			}

			pos := int(v.pos)

			switch s.channels {
			case 1:
				if pos < len(s.pcm) {
					// Pan is stored but not applied; mono sources
					// feed both channels equally.
					f := float64(s.pcm[pos]) / 32768.0 * v.gain
					left += f
					right += f
					v.pos += s.rate / outRate * v.pitch
					continue
				}
			case 2:
				if pos+1 < len(s.pcm) {
					left += float64(s.pcm[pos]) / 32768.0 * v.gain
					right += float64(s.pcm[pos+1]) / 32768.0 * v.gain
					v.pos += s.rate / outRate * v.pitch * 2.0
					continue
				}
			}

			// Past the end (or unplayable channel layout).
			if v.looping && (s.channels == 1 || s.channels == 2) {
				v.pos = 0
			} else {
				v.sample = nil // Finished; reclaimed later by Purge
			}
		}

		left *= e.gain
		right *= e.gain

		dst[i] = float32(clamp(left, -1.0, 1.0))
		dst[i+1] = float32(clamp(right, -1.0, 1.0))
	}
}
