// ABOUTME: Package documentation for the voice-pool audio engine
// ABOUTME: Describes the control-thread / audio-thread split

// Package audio implements a real-time voice-pool mixing engine.
//
// An Engine owns a fixed pool of 32 voices, a global output gain and the
// output sample rate. Decoded samples are started on voices from the
// application's control thread; an audio device pulls mixed stereo float32
// frames from Engine.Mix on its own real-time thread.
//
// The two threads share only the voice array and the global gain, guarded
// by a single short-lived mutex. All allocation, decoding and reference
// bookkeeping happens on the control thread. Voices whose playback finished
// on the audio thread are reclaimed by Purge, which the application must
// call once per frame before its other per-frame work.
//
// A typical control loop:
//
//	engine := audio.NewEngine(48000)
//	out, _ := device.Open(engine)
//	out.Start()
//	for range ticker.C {
//		engine.Purge()
//		// handle events, run per-frame logic, start/stop sounds
//	}
package audio
