// ABOUTME: WAV decoding via go-audio
// ABOUTME: Rescales 8/24/32-bit PCM to 16-bit
package decode

import (
	"bytes"
	"fmt"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func decodeWAV(data []byte) (*PCM, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("decode wav: no audio frames")
	}

	return &PCM{
		Data:       intBufferToPCM16(buf, int(dec.BitDepth)),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

// intBufferToPCM16 rescales go-audio's int samples to 16-bit.
func intBufferToPCM16(buf *gaudio.IntBuffer, bits int) []int16 {
	pcm := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch bits {
		case 8:
			// 8-bit WAV is unsigned
			pcm[i] = int16(v-128) << 8
		case 24:
			pcm[i] = int16(v >> 8)
		case 32:
			pcm[i] = int16(v >> 16)
		default:
			pcm[i] = int16(v)
		}
	}
	return pcm
}
