package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	setLogLevelFromEnv()

	// Log to the file and stdout
	logFile, err := os.OpenFile(logFileFromEnv(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	mw := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(mw)

	backend, err := newOutputBackend(audioBackendFromEnv())
	if err != nil {
		logWarnf("%v", err)
		return
	}

	generator := NewSineGenerator(initialChannelsFromEnv(), sampleRateFromEnv(), backend)
	generator.Start()

	if path := presetFileFromEnv(); path != "" {
		preset, err := loadPreset(path)
		if err != nil {
			logWarnf("Error loading preset file: %v", err)
		} else {
			preset.apply(generator)
			logInfof("Applied preset from %s", path)
		}
	} else {
		// Retune a few channels so the default output is not a unison A4.
		freq, amp := 440.0, 0.8
		generator.UpdateChannel(0, &freq, &amp)
		octave := 880.0
		generator.UpdateChannel(1, &octave, nil)
		generator.UpdateAllChannels([]float64{200, 300, 400, 500}, nil)
	}

	info := generator.ChannelInfo()
	logInfof("Channels: %d requested, %d available", info.NumChannels, info.AvailableChannels)
	logDebugf("Frequencies: %v, amplitudes: %v", info.Frequencies, info.Amplitudes)

	playSeconds := playSecondsFromEnv()
	logInfof("Playing for up to %d seconds. Press CTRL-C to exit early.", playSeconds)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	select {
	case <-sc:
		logInfof("Interrupt received.")
	case <-time.After(time.Duration(playSeconds) * time.Second):
	}

	logInfof("Stopping playback.")
	generator.Stop()

	if state, err := generator.Status(); err != nil {
		logWarnf("Playback ended with state %s: %v", state, err)
	}
}
