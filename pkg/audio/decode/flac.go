// ABOUTME: FLAC decoding via mewkiz/flac
// ABOUTME: Interleaves per-channel subframes and rescales to 16-bit
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

func decodeFLAC(data []byte) (*PCM, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}

	info := stream.Info
	shift := 16 - int(info.BitsPerSample)

	var pcm []int16
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode flac: %w", err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for _, sub := range frame.Subframes {
				v := sub.Samples[i]
				if shift > 0 {
					v <<= uint(shift)
				} else if shift < 0 {
					v >>= uint(-shift)
				}
				pcm = append(pcm, int16(v))
			}
		}
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("decode flac: no audio frames")
	}

	return &PCM{
		Data:       pcm,
		SampleRate: int(info.SampleRate),
		Channels:   int(info.NChannels),
	}, nil
}
