package media

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	oto "github.com/ebitengine/oto/v3"
)

// Speaker plays decoded audio through the platform output via oto. The
// underlying context is created lazily on first play and reused; oto
// allows only one per process.
type Speaker struct {
	sampleRate int

	once sync.Once
	ctx  *oto.Context
	err  error
}

// NewSpeaker builds a Sink emitting at the given rate (sources at other
// rates are resampled).
func NewSpeaker(sampleRate int) *Speaker {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Speaker{sampleRate: sampleRate}
}

// Play starts playback at the requested speed and returns immediately;
// it never blocks other resolutions.
func (s *Speaker) Play(pcm *PCM, rate float64) error {
	s.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   s.sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			s.err = fmt.Errorf("open audio output: %w", err)
			return
		}
		<-ready
		s.ctx = ctx
	})
	if s.err != nil {
		return s.err
	}

	samples := Resample(pcm, s.sampleRate, rate)
	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*32767)))
	}

	player := s.ctx.NewPlayer(bytes.NewReader(buf))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(50 * time.Millisecond)
		}
		_ = player.Close()
	}()
	return nil
}
