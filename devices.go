package main

// resolveOutputChannels clamps a requested channel count to what the
// default output device supports. A failed device query falls back to
// stereo so playback can still proceed on whatever is there.
func resolveOutputChannels(backend outputBackend, requested int) int {
	deviceMax, err := backend.MaxOutputChannels()
	if err != nil {
		logWarnf("Error querying audio devices, falling back to %d channels: %v", fallbackChannels, err)
		return fallbackChannels
	}
	return min(requested, deviceMax)
}
