// ABOUTME: Ogg Vorbis decoding via jfreymuth/oggvorbis
// ABOUTME: Converts the library's float output to 16-bit with saturation
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

func decodeVorbis(data []byte) (*PCM, error) {
	r, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode vorbis: %w", err)
	}

	var pcm []int16
	buf := make([]float32, 4096)
	for {
		n, err := r.Read(buf)
		for _, f := range buf[:n] {
			pcm = append(pcm, floatToInt16(f))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("decode vorbis: no audio frames")
	}

	return &PCM{
		Data:       pcm,
		SampleRate: r.SampleRate(),
		Channels:   r.Channels(),
	}, nil
}
