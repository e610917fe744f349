package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DefaultSampleRate is the rate assumed for raw provider PCM output.
const DefaultSampleRate = 24000

// PCM is decoded, playback-ready audio: normalized mono float samples.
type PCM struct {
	Samples    []float32
	SampleRate int
}

// Duration reports the playback length at rate 1.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(p.Samples)) / float64(p.SampleRate) * float64(time.Second))
}

// DecodeAudio turns raw provider bytes into playable samples. It tries
// container decoding first (providers deliver MP3 via URL); when that
// fails the bytes are interpreted as raw signed 16-bit little-endian
// PCM at fallbackRate.
func DecodeAudio(raw []byte, fallbackRate int) (*PCM, error) {
	if len(raw) == 0 {
		return nil, errors.New("audio buffer is empty")
	}
	if pcm, err := decodeMP3(raw); err == nil {
		return pcm, nil
	}
	if fallbackRate <= 0 {
		fallbackRate = DefaultSampleRate
	}
	return decodePCM16(raw, fallbackRate), nil
}

func decodeMP3(raw []byte) (*PCM, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	// go-mp3 emits 16-bit little-endian stereo; fold to mono.
	frames := len(data) / 4
	if frames == 0 {
		return nil, errors.New("mp3 stream contained no frames")
	}
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(data[i*4:]))
		r := int16(binary.LittleEndian.Uint16(data[i*4+2:]))
		samples[i] = (float32(l) + float32(r)) / 2 / 32768
	}
	return &PCM{Samples: samples, SampleRate: dec.SampleRate()}, nil
}

func decodePCM16(raw []byte, rate int) *PCM {
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768
	}
	return &PCM{Samples: samples, SampleRate: rate}
}

// Resample converts samples between rates while applying a playback
// speed multiplier, using linear interpolation.
func Resample(p *PCM, dstRate int, speed float64) []float32 {
	if len(p.Samples) == 0 || dstRate <= 0 {
		return nil
	}
	if speed <= 0 {
		speed = 1
	}
	step := speed * float64(p.SampleRate) / float64(dstRate)
	if step == 1 {
		out := make([]float32, len(p.Samples))
		copy(out, p.Samples)
		return out
	}
	outLen := int(float64(len(p.Samples)) / step)
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(p.Samples)-1 {
			out[i] = p.Samples[len(p.Samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = p.Samples[idx]*(1-frac) + p.Samples[idx+1]*frac
	}
	return out
}
