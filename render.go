package main

import "math"

// renderInto fills a planar block (one []float32 per output channel, all
// the same length) with sine samples from the snapshot. startFrame is
// the absolute index of the block's first frame, which keeps phase
// continuous across consecutive blocks; a parameter change between
// blocks therefore lands as a phase jump at the block boundary rather
// than a smoothed ramp. Channels at or beyond the snapshot's available
// count are written as silence.
func renderInto(snap channelSnapshot, startFrame int64, sampleRate int, out [][]float32) {
	for c := range out {
		buf := out[c]
		if c >= snap.availableChannels || c >= len(snap.frequencies) {
			for i := range buf {
				buf[i] = 0
			}
			continue
		}
		freq := snap.frequencies[c]
		amp := snap.amplitudes[c]
		for i := range buf {
			t := float64(startFrame + int64(i))
			buf[i] = float32(amp * math.Sin(2*math.Pi*freq*t/float64(sampleRate)))
		}
	}
}

// renderBlock allocates and renders a planar block. The real-time path
// uses renderInto with the device-owned buffers; this variant serves the
// pull-style backends and tests.
func renderBlock(snap channelSnapshot, startFrame int64, frames, sampleRate, channels int) [][]float32 {
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
	}
	renderInto(snap, startFrame, sampleRate, out)
	return out
}
