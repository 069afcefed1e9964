// ABOUTME: Audio output device using the oto library
// ABOUTME: Pulls mixed frames from the engine on oto's playback thread
package device

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/noxengine/nox-audio/pkg/audio"
)

// Output is the real audio device. It owns the oto context and player and
// serves oto's pull requests by mixing directly into a pre-allocated
// scratch buffer, so the playback thread never allocates.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	engine *audio.Engine
	buf    []float32
}

// Open opens the audio device at the engine's sample rate, requesting
// 2-channel 32-bit float output. Failure to open is fatal to startup and
// is not retried; the returned error wraps the device failure.
func Open(engine *audio.Engine) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   engine.SampleRate(),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	<-ready

	o := &Output{
		ctx:    ctx,
		engine: engine,
		buf:    make([]float32, 4096),
	}
	o.player = ctx.NewPlayer(o)

	log.Printf("Audio device opened: %dHz, 2 channels, float32", engine.SampleRate())

	return o, nil
}

// Read implements io.Reader for oto. It runs on the device's playback
// thread and must not allocate on the steady path.
func (o *Output) Read(p []byte) (int, error) {
	n := len(p) / 4
	n -= n % 2 // whole stereo frames only

	if len(o.buf) < n {
		// Only if oto asks for more than the initial scratch size.
		o.buf = make([]float32, n)
	}
	buf := o.buf[:n]

	o.engine.Mix(buf)

	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Start begins pulling audio from the engine.
func (o *Output) Start() {
	o.player.Play()
}

// Close stops playback and suspends the device context.
func (o *Output) Close() {
	if o.player != nil {
		_ = o.player.Close()
		o.player = nil
	}
	if o.ctx != nil {
		_ = o.ctx.Suspend()
	}
}
