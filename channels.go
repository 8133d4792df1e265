package main

import "sync"

const (
	defaultFrequency = 440.0
	defaultAmplitude = 0.5
	fallbackChannels = 2
)

// channelResolver reports how many output channels can actually be
// driven for a requested channel count.
type channelResolver func(requested int) int

// channelStore holds the per-channel frequency/amplitude table shared
// between the control side and the render callback. Every read and
// write goes through the same mutex; each critical section is O(N) in
// the channel count so the lock is never held long enough to starve the
// real-time callback.
type channelStore struct {
	mu                sync.Mutex
	numChannels       int
	availableChannels int
	frequencies       []float64
	amplitudes        []float64
}

// ChannelInfo is a point-in-time copy of the per-channel state, safe to
// read without further synchronization.
type ChannelInfo struct {
	NumChannels       int
	AvailableChannels int
	Frequencies       []float64
	Amplitudes        []float64
}

// channelSnapshot is the renderer's view of the store: a detached copy,
// never aliased to the live slices.
type channelSnapshot struct {
	availableChannels int
	frequencies       []float64
	amplitudes        []float64
}

func newChannelStore(numChannels int, resolve channelResolver) *channelStore {
	cs := &channelStore{}
	cs.configure(numChannels, resolve)
	return cs
}

// configure resets every slot to 440 Hz at 0.5 amplitude and re-resolves
// how many channels the device can drive. The device query runs before
// the lock is taken so the render callback is never blocked on a device
// call.
func (cs *channelStore) configure(numChannels int, resolve channelResolver) {
	if numChannels < 0 {
		numChannels = 0
	}
	available := resolve(numChannels)
	if available > numChannels {
		available = numChannels
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.numChannels = numChannels
	cs.availableChannels = available
	cs.frequencies = make([]float64, numChannels)
	cs.amplitudes = make([]float64, numChannels)
	for i := 0; i < numChannels; i++ {
		cs.frequencies[i] = defaultFrequency
		cs.amplitudes[i] = defaultAmplitude
	}
}

// setFrequency retunes one channel in Hz. Out-of-range channels are
// silently ignored so a sloppy control call can never disturb playback.
func (cs *channelStore) setFrequency(channel int, hz float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if channel < 0 || channel >= cs.numChannels {
		return
	}
	cs.frequencies[channel] = hz
}

// setAmplitude rescales one channel. Out-of-range channels are silently
// ignored. Values are taken as given; anything outside [0, 1] simply
// clips or stays inaudible downstream.
func (cs *channelStore) setAmplitude(channel int, amplitude float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if channel < 0 || channel >= cs.numChannels {
		return
	}
	cs.amplitudes[channel] = amplitude
}

// updateChannel applies frequency and/or amplitude to one channel as a
// single atomic unit. Nil leaves that field alone. Out-of-range channels
// are ignored.
func (cs *channelStore) updateChannel(channel int, frequency, amplitude *float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if channel < 0 || channel >= cs.numChannels {
		return
	}
	if frequency != nil {
		cs.frequencies[channel] = *frequency
	}
	if amplitude != nil {
		cs.amplitudes[channel] = *amplitude
	}
}

// updateAllChannels bulk-replaces the frequency and/or amplitude table.
// Inputs longer than the channel count are truncated. Shorter inputs
// replace only the prefix they cover and leave the remaining slots at
// their previous values, so callers wanting a full replacement must pass
// full-length slices.
func (cs *channelStore) updateAllChannels(frequencies, amplitudes []float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if frequencies != nil {
		copy(cs.frequencies, frequencies)
	}
	if amplitudes != nil {
		copy(cs.amplitudes, amplitudes)
	}
}

func (cs *channelStore) snapshot() channelSnapshot {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	snap := channelSnapshot{
		availableChannels: cs.availableChannels,
		frequencies:       make([]float64, len(cs.frequencies)),
		amplitudes:        make([]float64, len(cs.amplitudes)),
	}
	copy(snap.frequencies, cs.frequencies)
	copy(snap.amplitudes, cs.amplitudes)
	return snap
}

func (cs *channelStore) info() ChannelInfo {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	info := ChannelInfo{
		NumChannels:       cs.numChannels,
		AvailableChannels: cs.availableChannels,
		Frequencies:       make([]float64, len(cs.frequencies)),
		Amplitudes:        make([]float64, len(cs.amplitudes)),
	}
	copy(info.Frequencies, cs.frequencies)
	copy(info.Amplitudes, cs.amplitudes)
	return info
}

func (cs *channelStore) available() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.availableChannels
}
