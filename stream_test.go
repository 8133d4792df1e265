package main

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingBackend wraps the headless backend so tests can observe how
// many streams were opened and how many callback cycles ran, and whether
// any rendered sample was NaN.
type countingBackend struct {
	inner     *headlessBackend
	opens     atomic.Int64
	callbacks atomic.Int64
	sawNaN    atomic.Bool
}

func newCountingBackend(maxChannels, blockFrames int) *countingBackend {
	return &countingBackend{inner: &headlessBackend{maxChannels: maxChannels, blockFrames: blockFrames}}
}

func (b *countingBackend) MaxOutputChannels() (int, error) {
	return b.inner.MaxOutputChannels()
}

func (b *countingBackend) OpenStream(channels, sampleRate int, cb renderCallback) (outputStream, error) {
	b.opens.Add(1)
	return b.inner.OpenStream(channels, sampleRate, func(out [][]float32) {
		cb(out)
		for c := range out {
			for _, s := range out[c] {
				if math.IsNaN(float64(s)) {
					b.sawNaN.Store(true)
				}
			}
		}
		b.callbacks.Add(1)
	})
}

func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out after %v waiting for %s", timeout, what)
}

func TestStartRendersBlocksUntilStop(t *testing.T) {
	backend := newCountingBackend(8, 441) // ~100 callbacks/sec at 44100
	gen := NewSineGenerator(4, 44100, backend)

	gen.Start()
	waitFor(t, 2*time.Second, "stream to start playing", func() bool {
		state, _ := gen.Status()
		return state == StreamPlaying
	})
	waitFor(t, 2*time.Second, "render callbacks", func() bool {
		return backend.callbacks.Load() >= 5
	})

	gen.Stop()

	state, err := gen.Status()
	if state != StreamIdle {
		t.Errorf("state after Stop = %s, want idle", state)
	}
	if err != nil {
		t.Errorf("unexpected playback error: %v", err)
	}
}

func TestNoCallbackAfterStopReturns(t *testing.T) {
	backend := newCountingBackend(8, 64)
	gen := NewSineGenerator(2, 44100, backend)

	gen.Start()
	waitFor(t, 2*time.Second, "render callbacks", func() bool {
		return backend.callbacks.Load() > 0
	})

	gen.Stop()
	after := backend.callbacks.Load()
	time.Sleep(50 * time.Millisecond)

	if got := backend.callbacks.Load(); got != after {
		t.Errorf("callbacks advanced from %d to %d after Stop returned", after, got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	backend := newCountingBackend(8, 441)
	gen := NewSineGenerator(2, 44100, backend)

	// Stop before any Start is a no-op.
	gen.Stop()

	gen.Start()
	waitFor(t, 2*time.Second, "stream to start playing", func() bool {
		state, _ := gen.Status()
		return state == StreamPlaying
	})

	gen.Stop()
	gen.Stop()

	if state, _ := gen.Status(); state != StreamIdle {
		t.Errorf("state = %s, want idle", state)
	}
}

func TestStartWhilePlayingOpensNoSecondStream(t *testing.T) {
	backend := newCountingBackend(8, 441)
	gen := NewSineGenerator(2, 44100, backend)

	gen.Start()
	waitFor(t, 2*time.Second, "stream to start playing", func() bool {
		state, _ := gen.Status()
		return state == StreamPlaying
	})
	gen.Start()
	defer gen.Stop()

	if got := backend.opens.Load(); got != 1 {
		t.Errorf("streams opened = %d, want 1", got)
	}
}

func TestStreamOpenErrorReturnsToIdle(t *testing.T) {
	openErr := errors.New("device busy")
	backend := &headlessBackend{maxChannels: 2, blockFrames: 64, openErr: openErr}
	gen := NewSineGenerator(2, 44100, backend)

	gen.Start()
	waitFor(t, 2*time.Second, "driver to settle idle with error", func() bool {
		state, err := gen.Status()
		return state == StreamIdle && err != nil
	})

	if _, err := gen.Status(); !errors.Is(err, openErr) {
		t.Errorf("recorded error = %v, want %v", err, openErr)
	}

	// A later Start must be possible once the failure cleared.
	backend.openErr = nil
	gen.Start()
	waitFor(t, 2*time.Second, "stream to recover", func() bool {
		state, _ := gen.Status()
		return state == StreamPlaying
	})
	gen.Stop()
}

func TestDeviceQueryFailureFallsBackToStereo(t *testing.T) {
	backend := &headlessBackend{blockFrames: 64, queryErr: errors.New("no such device")}
	gen := NewSineGenerator(8, 44100, backend)

	info := gen.ChannelInfo()
	if info.AvailableChannels != fallbackChannels {
		t.Errorf("AvailableChannels = %d, want %d", info.AvailableChannels, fallbackChannels)
	}
	if info.NumChannels != 8 {
		t.Errorf("NumChannels = %d, want 8", info.NumChannels)
	}
}

func TestSetChannelsRequeriesDevice(t *testing.T) {
	backend := newCountingBackend(2, 64)
	gen := NewSineGenerator(8, 44100, backend)

	if info := gen.ChannelInfo(); info.AvailableChannels != 2 {
		t.Fatalf("AvailableChannels = %d, want 2", info.AvailableChannels)
	}

	backend.inner.maxChannels = 16
	gen.SetChannels(6)

	info := gen.ChannelInfo()
	if info.NumChannels != 6 || info.AvailableChannels != 6 {
		t.Errorf("after SetChannels(6): num=%d available=%d, want 6/6", info.NumChannels, info.AvailableChannels)
	}
}

// Hammers the control API from one goroutine while the render loop runs
// on another. The race detector is the main oracle; the NaN check
// catches torn float reads reaching the output.
// Run with: go test -race -run TestConcurrentRetuneWhilePlaying
func TestConcurrentRetuneWhilePlaying(t *testing.T) {
	backend := newCountingBackend(8, 441)
	gen := NewSineGenerator(8, 44100, backend)

	gen.Start()
	waitFor(t, 2*time.Second, "stream to start playing", func() bool {
		state, _ := gen.Status()
		return state == StreamPlaying
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ch := i % 8
			gen.SetFrequency(ch, 100+float64(i%800))
			gen.SetAmplitude(ch, float64(i%10)/10)
			freq := 440.0
			gen.UpdateChannel(ch, &freq, nil)
			if i%100 == 0 {
				gen.UpdateAllChannels([]float64{200, 300, 400, 500}, nil)
			}
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = gen.ChannelInfo()
			_, _ = gen.Status()
		}
	}()
	wg.Wait()

	waitFor(t, 2*time.Second, "render callbacks under load", func() bool {
		return backend.callbacks.Load() >= 10
	})
	gen.Stop()

	if backend.sawNaN.Load() {
		t.Error("rendered output contained NaN samples")
	}
	if state, _ := gen.Status(); state != StreamIdle {
		t.Errorf("state = %s, want idle", state)
	}
}
