package main

import (
	"errors"
	"sync"
	"time"
)

// headlessBackend renders into discarded buffers on a wall-clock ticker.
// It stands in for real hardware in tests and on machines without an
// audio device.
type headlessBackend struct {
	maxChannels int
	blockFrames int
	queryErr    error
	openErr     error
}

func newHeadlessBackend() *headlessBackend {
	return &headlessBackend{maxChannels: 2, blockFrames: 512}
}

func (hb *headlessBackend) MaxOutputChannels() (int, error) {
	if hb.queryErr != nil {
		return 0, hb.queryErr
	}
	return hb.maxChannels, nil
}

func (hb *headlessBackend) OpenStream(channels, sampleRate int, cb renderCallback) (outputStream, error) {
	if hb.openErr != nil {
		return nil, hb.openErr
	}
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, hb.blockFrames)
	}
	interval := time.Duration(hb.blockFrames) * time.Second / time.Duration(sampleRate)
	return &headlessStream{cb: cb, out: out, interval: interval}, nil
}

type headlessStream struct {
	cb       renderCallback
	out      [][]float32
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (hs *headlessStream) Start() error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if hs.stop != nil {
		return errors.New("headless stream already started")
	}
	hs.stop = make(chan struct{})
	hs.done = make(chan struct{})
	go hs.run(hs.stop, hs.done)
	return nil
}

func (hs *headlessStream) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(hs.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			hs.cb(hs.out)
		}
	}
}

// Stop joins the ticker goroutine, so no callback runs after it returns.
func (hs *headlessStream) Stop() error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if hs.stop == nil {
		return nil
	}
	close(hs.stop)
	<-hs.done
	hs.stop = nil
	hs.done = nil
	return nil
}

func (hs *headlessStream) Close() error {
	return hs.Stop()
}
