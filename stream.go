package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// StreamState is the playback lifecycle state, observable by polling.
type StreamState int32

const (
	StreamIdle StreamState = iota
	StreamStarting
	StreamPlaying
	StreamStopping
)

func (s StreamState) String() string {
	switch s {
	case StreamIdle:
		return "idle"
	case StreamStarting:
		return "starting"
	case StreamPlaying:
		return "playing"
	case StreamStopping:
		return "stopping"
	}
	return "unknown"
}

const stopPollInterval = 100 * time.Millisecond

// streamDriver owns the output stream and the goroutine that keeps it
// alive. start is fire-and-forget: open and runtime errors are logged
// and recorded for polling through Status, never returned to the
// caller.
type streamDriver struct {
	store      *channelStore
	backend    outputBackend
	sampleRate int

	state   atomic.Int32
	stopReq atomic.Bool

	mu      sync.Mutex
	done    chan struct{}
	lastErr error
}

func newStreamDriver(store *channelStore, backend outputBackend, sampleRate int) *streamDriver {
	return &streamDriver{store: store, backend: backend, sampleRate: sampleRate}
}

func (sd *streamDriver) currentState() StreamState {
	return StreamState(sd.state.Load())
}

func (sd *streamDriver) setState(s StreamState) {
	sd.state.Store(int32(s))
}

// Status reports the lifecycle state and the last error recorded by the
// playback goroutine, if any.
func (sd *streamDriver) Status() (StreamState, error) {
	sd.mu.Lock()
	defer sd.mu.Unlock()
	return sd.currentState(), sd.lastErr
}

func (sd *streamDriver) recordErr(err error) {
	sd.mu.Lock()
	sd.lastErr = err
	sd.mu.Unlock()
}

func (sd *streamDriver) start() {
	sd.mu.Lock()
	defer sd.mu.Unlock()

	switch sd.currentState() {
	case StreamStarting, StreamPlaying:
		logInfof("Already playing")
		return
	case StreamStopping:
		logInfof("Still stopping, ignoring start")
		return
	}

	sd.stopReq.Store(false)
	sd.lastErr = nil
	sd.setState(StreamStarting)
	done := make(chan struct{})
	sd.done = done
	go sd.run(done)
}

func (sd *streamDriver) run(done chan struct{}) {
	defer close(done)
	defer sd.setState(StreamIdle)

	channels := sd.store.available()
	var frameIndex int64

	stream, err := sd.backend.OpenStream(channels, sd.sampleRate, func(out [][]float32) {
		// A panic here would abort the host audio subsystem's thread,
		// so a bad cycle degrades to a logged, dropped block instead.
		defer func() {
			if r := recover(); r != nil {
				logWarnf("Recovered from audio callback panic: %v", r)
			}
		}()
		snap := sd.store.snapshot()
		renderInto(snap, frameIndex, sd.sampleRate, out)
		if len(out) > 0 {
			frameIndex += int64(len(out[0]))
		}
	})
	if err != nil {
		logWarnf("Error opening audio stream: %v", err)
		sd.recordErr(err)
		return
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		logWarnf("Error starting audio stream: %v", err)
		sd.recordErr(err)
		return
	}
	sd.setState(StreamPlaying)
	logInfof("Playing on %d channels at %d Hz", channels, sd.sampleRate)

	for !sd.stopReq.Load() {
		time.Sleep(stopPollInterval)
	}

	if err := stream.Stop(); err != nil {
		logWarnf("Error stopping audio stream: %v", err)
		sd.recordErr(err)
	}
	logInfof("Audio stream stopped")
}

// stop requests shutdown and blocks until the playback goroutine has
// fully exited, so no render callback runs after it returns. Calling it
// while idle, or twice in a row, is a no-op.
func (sd *streamDriver) stop() {
	sd.mu.Lock()
	done := sd.done
	if st := sd.currentState(); st == StreamStarting || st == StreamPlaying {
		sd.setState(StreamStopping)
	}
	sd.mu.Unlock()

	sd.stopReq.Store(true)
	if done != nil {
		<-done
	}
	sd.setState(StreamIdle)
}
