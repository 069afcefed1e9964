// ABOUTME: Container sniffing and eager blob decoding
// ABOUTME: Dispatches to WAV, MP3, Ogg Vorbis and FLAC backends
package decode

import (
	"bytes"
	"errors"
)

// PCM is a fully decoded audio blob: interleaved 16-bit samples at the
// source's native rate and channel count.
type PCM struct {
	Data       []int16
	SampleRate int
	Channels   int
}

var (
	// ErrEmptyData is returned when the blob contains no bytes.
	ErrEmptyData = errors.New("decode: empty audio data")

	// ErrUnknownFormat is returned when no container magic matches.
	ErrUnknownFormat = errors.New("decode: unrecognized audio format")
)

// Decode sniffs the container format from its magic bytes and decodes the
// whole blob into PCM. There is no streaming path: decoding happens once,
// eagerly, at load time.
func Decode(data []byte) (*PCM, error) {
	switch {
	case len(data) == 0:
		return nil, ErrEmptyData
	case bytes.HasPrefix(data, []byte("RIFF")):
		return decodeWAV(data)
	case bytes.HasPrefix(data, []byte("OggS")):
		return decodeVorbis(data)
	case bytes.HasPrefix(data, []byte("fLaC")):
		return decodeFLAC(data)
	case bytes.HasPrefix(data, []byte("ID3")) || (len(data) > 1 && data[0] == 0xFF && data[1]&0xE0 == 0xE0):
		return decodeMP3(data)
	default:
		return nil, ErrUnknownFormat
	}
}

// floatToInt16 converts a [-1,1] float sample with saturation.
func floatToInt16(f float32) int16 {
	if f > 1.0 {
		f = 1.0
	}
	if f < -1.0 {
		f = -1.0
	}
	return int16(f * 32767.0)
}
