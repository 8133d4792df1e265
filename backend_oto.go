package main

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

const otoMaxChannels = 2

// otoBackend plays through an oto v3 context. Oto cannot enumerate
// devices and mixes down to at most stereo, so the channel query reports
// a fixed stereo maximum. Unlike PortAudio's push of device buffers into
// our callback, oto pulls interleaved bytes through an io.Reader.
type otoBackend struct{}

func (*otoBackend) MaxOutputChannels() (int, error) {
	return otoMaxChannels, nil
}

func (*otoBackend) OpenStream(channels, sampleRate int, cb renderCallback) (outputStream, error) {
	if channels > otoMaxChannels {
		channels = otoMaxChannels
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	reader := &otoPullReader{channels: channels, cb: cb}
	return &otoStream{player: ctx.NewPlayer(reader)}, nil
}

// otoPullReader renders planar blocks on demand and interleaves them
// into the little-endian float32 byte layout oto expects. The planar
// buffers are reused between reads; oto serializes Read calls so no
// locking is needed here.
type otoPullReader struct {
	channels int
	cb       renderCallback
	planar   [][]float32
}

func (r *otoPullReader) Read(p []byte) (int, error) {
	bytesPerFrame := 4 * r.channels
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	if len(r.planar) != r.channels {
		r.planar = make([][]float32, r.channels)
	}
	for c := range r.planar {
		if cap(r.planar[c]) < frames {
			r.planar[c] = make([]float32, frames)
		}
		r.planar[c] = r.planar[c][:frames]
	}

	r.cb(r.planar)

	for f := 0; f < frames; f++ {
		for c := 0; c < r.channels; c++ {
			off := f*bytesPerFrame + c*4
			binary.LittleEndian.PutUint32(p[off:], math.Float32bits(r.planar[c][f]))
		}
	}
	return frames * bytesPerFrame, nil
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Start() error {
	s.player.Play()
	return nil
}

func (s *otoStream) Stop() error {
	s.player.Pause()
	return nil
}

func (s *otoStream) Close() error {
	return s.player.Close()
}
