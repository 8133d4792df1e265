package main

import (
	"fmt"
	"strings"
)

// renderCallback fills a planar output block, one []float32 per channel,
// all slices the same length. It is invoked from the backend's audio
// context and must finish within the block's real-time deadline.
type renderCallback func(out [][]float32)

// outputBackend abstracts the host audio subsystem: a channel-count
// query for the default output device plus a callback-driven output
// stream.
type outputBackend interface {
	MaxOutputChannels() (int, error)
	OpenStream(channels, sampleRate int, cb renderCallback) (outputStream, error)
}

type outputStream interface {
	Start() error
	Stop() error
	Close() error
}

func newOutputBackend(name string) (outputBackend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "portaudio":
		return portAudioBackend{}, nil
	case "oto":
		return &otoBackend{}, nil
	case "headless":
		return newHeadlessBackend(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (want portaudio, oto, or headless)", name)
	}
}
