package main

import (
	"os"
	"strconv"
	"strings"
)

func positiveIntFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logWarnf("Invalid %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return n
}

func initialChannelsFromEnv() int {
	return positiveIntFromEnv("CHANNELS", 4)
}

func sampleRateFromEnv() int {
	return positiveIntFromEnv("SAMPLE_RATE", defaultSampleRate)
}

func playSecondsFromEnv() int {
	return positiveIntFromEnv("PLAY_SECONDS", 10)
}

func logFileFromEnv() string {
	path := strings.TrimSpace(os.Getenv("LOG_FILE"))
	if path == "" {
		return "signal_generator.log"
	}
	return path
}

func audioBackendFromEnv() string {
	return os.Getenv("AUDIO_BACKEND")
}

func presetFileFromEnv() string {
	return strings.TrimSpace(os.Getenv("PRESET_FILE"))
}
