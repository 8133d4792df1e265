package main

const defaultSampleRate = 44100

// SineGenerator streams an additive multi-channel sine signal to the
// output device and lets callers retune any channel while playback
// continues. All mutable state lives in the channel store; the playback
// goroutine only ever sees detached snapshots of it.
type SineGenerator struct {
	store   *channelStore
	driver  *streamDriver
	backend outputBackend
}

// NewSineGenerator sizes the generator to initialChannels slots, each
// defaulting to 440 Hz at 0.5 amplitude. A sampleRate of zero or less
// selects 44100 Hz.
func NewSineGenerator(initialChannels, sampleRate int, backend outputBackend) *SineGenerator {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	g := &SineGenerator{backend: backend}
	g.store = newChannelStore(initialChannels, g.resolve)
	g.driver = newStreamDriver(g.store, backend, sampleRate)
	return g
}

func (g *SineGenerator) resolve(requested int) int {
	return resolveOutputChannels(g.backend, requested)
}

// Start begins playback on a background goroutine. Failures to open the
// device are logged and surfaced through Status, not returned; starting
// while already playing logs a notice and does nothing.
func (g *SineGenerator) Start() {
	g.driver.start()
}

// Stop halts playback and waits for the background goroutine to exit.
func (g *SineGenerator) Stop() {
	g.driver.stop()
}

// Status reports the stream state and the last playback error, if any.
func (g *SineGenerator) Status() (StreamState, error) {
	return g.driver.Status()
}

// SetFrequency retunes one channel in Hz. Out-of-range channels are
// ignored.
func (g *SineGenerator) SetFrequency(channel int, hz float64) {
	g.store.setFrequency(channel, hz)
}

// SetAmplitude rescales one channel. Out-of-range channels are ignored.
func (g *SineGenerator) SetAmplitude(channel int, amplitude float64) {
	g.store.setAmplitude(channel, amplitude)
}

// UpdateChannel applies frequency and/or amplitude to one channel as a
// single atomic update. Nil leaves that field unchanged.
func (g *SineGenerator) UpdateChannel(channel int, frequency, amplitude *float64) {
	g.store.updateChannel(channel, frequency, amplitude)
}

// UpdateAllChannels bulk-replaces the frequency and/or amplitude tables.
// Over-long inputs are truncated; short inputs replace only the prefix
// they cover.
func (g *SineGenerator) UpdateAllChannels(frequencies, amplitudes []float64) {
	g.store.updateAllChannels(frequencies, amplitudes)
}

// SetChannels reconfigures the generator to numChannels slots, resetting
// every channel to defaults and re-querying the device channel limit. A
// running stream keeps its previous channel count until restarted.
func (g *SineGenerator) SetChannels(numChannels int) {
	g.store.configure(numChannels, g.resolve)
}

// ChannelInfo returns a copy of the current per-channel state.
func (g *SineGenerator) ChannelInfo() ChannelInfo {
	return g.store.info()
}
