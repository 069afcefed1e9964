// ABOUTME: MP3 decoding via go-mp3
// ABOUTME: go-mp3 always emits 16-bit little-endian stereo
package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

func decodeMP3(data []byte) (*PCM, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	if len(raw) < 2 {
		return nil, fmt.Errorf("decode mp3: no audio frames")
	}

	pcm := make([]int16, len(raw)/2)
	for i := range pcm {
		pcm[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return &PCM{
		Data:       pcm,
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}, nil
}
