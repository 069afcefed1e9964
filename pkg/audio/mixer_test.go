// ABOUTME: Tests for the real-time mixing algorithm
// ABOUTME: Covers summing, clipping, stepping, looping and the pan gap
package audio

import (
	"math"
	"testing"
)

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < 1e-6
}

func TestMixSilenceWhenIdle(t *testing.T) {
	e := NewEngine(48000)

	buf := make([]float32, 64)
	for i := range buf {
		buf[i] = 99 // must be overwritten
	}
	e.Mix(buf)

	for i, f := range buf {
		if f != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, f)
		}
	}
}

func TestMixMonoFeedsBothChannels(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 100, 16384) // 0.5 full scale

	if _, err := e.Play(s, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 8)
	e.Mix(buf)

	want := float32(16384.0 / 32768.0)
	for i := 0; i < len(buf); i += 2 {
		if !almostEqual(buf[i], want) || !almostEqual(buf[i+1], want) {
			t.Fatalf("frame %d: got (%v, %v), want (%v, %v)", i/2, buf[i], buf[i+1], want, want)
		}
	}
}

func TestMixStereoSeparation(t *testing.T) {
	e := NewEngine(48000)

	pcm := make([]int16, 200)
	for i := 0; i < len(pcm); i += 2 {
		pcm[i] = 8192    // left: 0.25
		pcm[i+1] = -8192 // right: -0.25
	}
	s := newTestSample(e, pcm, 2, 48000)

	if _, err := e.Play(s, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 8)
	e.Mix(buf)

	for i := 0; i < len(buf); i += 2 {
		if !almostEqual(buf[i], 0.25) {
			t.Fatalf("left[%d] = %v, want 0.25", i/2, buf[i])
		}
		if !almostEqual(buf[i+1], -0.25) {
			t.Fatalf("right[%d] = %v, want -0.25", i/2, buf[i+1])
		}
	}
}

func TestMixTwoFullScaleVoicesClip(t *testing.T) {
	e := NewEngine(48000)
	loud := monoSample(e, 100, 32767)
	quietNeg := monoSample(e, 100, -32768)

	if _, err := e.Play(loud, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Play(loud, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 8)
	e.Mix(buf)

	// Two full-amplitude voices sum close to 2.0 and must clip to
	// exactly 1.0, not pass through.
	for i, f := range buf {
		if f != 1.0 {
			t.Fatalf("buf[%d] = %v, want exactly 1.0", i, f)
		}
	}

	e.StopAll()
	if _, err := e.Play(quietNeg, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Play(quietNeg, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	e.Mix(buf)
	for i, f := range buf {
		if f != -1.0 {
			t.Fatalf("buf[%d] = %v, want exactly -1.0", i, f)
		}
	}
}

func TestMixAppliesGlobalGain(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 100, 16384)

	if _, err := e.Play(s, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}
	e.SetGain(0.5)

	buf := make([]float32, 4)
	e.Mix(buf)

	want := float32(16384.0 / 32768.0 * 0.5)
	if !almostEqual(buf[0], want) {
		t.Errorf("got %v, want %v", buf[0], want)
	}
}

func TestMixAppliesVoiceGain(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 100, 16384)

	if _, err := e.Play(s, PlayOptions{Gain: 0.25, Pitch: 1.0}); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 4)
	e.Mix(buf)

	want := float32(16384.0 / 32768.0 * 0.25)
	if !almostEqual(buf[0], want) {
		t.Errorf("got %v, want %v", buf[0], want)
	}
}

func TestMixPanNotApplied(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 100, 16384)

	// Hard-left pan is accepted but deliberately not applied to the mix;
	// both channels must still carry the full signal.
	if _, err := e.Play(s, PlayOptions{Gain: 1.0, Pitch: 1.0, Pan: -1.0}); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 4)
	e.Mix(buf)

	if !almostEqual(buf[0], buf[1]) {
		t.Errorf("pan altered the mix: left %v, right %v", buf[0], buf[1])
	}
	if buf[0] == 0 {
		t.Error("expected signal on both channels")
	}
}

func TestMixRateConversionDuplicatesFrames(t *testing.T) {
	e := NewEngine(48000)

	pcm := []int16{1000, 2000, 3000, 4000}
	s := newTestSample(e, pcm, 1, 24000) // half the output rate

	if _, err := e.Play(s, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 16)
	e.Mix(buf)

	// Step is 0.5, truncating position: each source value appears in two
	// consecutive output frames.
	for i, v := range pcm {
		want := float32(v) / 32768.0
		a := buf[i*4]
		b := buf[i*4+2]
		if !almostEqual(a, want) || !almostEqual(b, want) {
			t.Fatalf("source %d: got %v and %v, want %v twice", i, a, b, want)
		}
	}
}

func TestMixStereoStepDoubled(t *testing.T) {
	e := NewEngine(48000)

	pcm := make([]int16, 64)
	s := newTestSample(e, pcm, 2, 48000)

	index, err := e.Play(s, DefaultPlayOptions())
	if err != nil {
		t.Fatal(err)
	}

	const frames = 10
	buf := make([]float32, frames*2)
	e.Mix(buf)

	// Equal rates: stereo advances two PCM values per output frame.
	got := e.voices[index-1].pos
	if got != frames*2 {
		t.Errorf("position: got %v, want %v", got, frames*2)
	}
}

func TestMixLoopWrapsToZero(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 4, 16384)

	index, err := e.Play(s, PlayOptions{Gain: 1.0, Pitch: 1.0, Looping: true})
	if err != nil {
		t.Fatal(err)
	}

	// Five output frames: four mixed, then the wrap frame resets the
	// position to exactly 0 without producing output.
	buf := make([]float32, 10)
	e.Mix(buf)

	v := &e.voices[index-1]
	if v.pos != 0 {
		t.Errorf("position after wrap: got %v, want 0", v.pos)
	}
	if v.sample == nil {
		t.Error("looping voice finished instead of wrapping")
	}
	if buf[8] != 0 {
		t.Errorf("wrap frame produced output: %v", buf[8])
	}

	playing, err := e.VoicePlaying(index)
	if err != nil {
		t.Fatal(err)
	}
	if !playing {
		t.Error("looping voice stopped playing")
	}
}

func TestMixNonLoopingFinishes(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 4, 16384)

	index, err := e.Play(s, DefaultPlayOptions())
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 20)
	e.Mix(buf)

	playing, err := e.VoicePlaying(index)
	if err != nil {
		t.Fatal(err)
	}
	if playing {
		t.Error("voice still playing past the end of its sample")
	}

	// Frames past the end are silent.
	for i := 8; i < len(buf); i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %v, want silence after sample end", i, buf[i])
		}
	}
}

func TestMixEmptyAndOddBuffers(t *testing.T) {
	e := NewEngine(48000)
	s := monoSample(e, 100, 16384)

	if _, err := e.Play(s, DefaultPlayOptions()); err != nil {
		t.Fatal(err)
	}

	e.Mix(nil) // must not panic

	odd := make([]float32, 5)
	odd[4] = 42
	e.Mix(odd)
	if odd[4] != 42 {
		t.Error("trailing element of an odd buffer was written")
	}
}
