package main

import (
	"github.com/gordonklaus/portaudio"
)

// portAudioBackend drives the default output device through PortAudio's
// non-interleaved float32 callback API. PortAudio reference-counts
// Initialize/Terminate pairs, so the query and the stream each hold
// their own initialization.
type portAudioBackend struct{}

func (portAudioBackend) MaxOutputChannels() (int, error) {
	if err := portaudio.Initialize(); err != nil {
		return 0, err
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return 0, err
	}
	logDebugf("Default output device %q, max %d output channels", dev.Name, dev.MaxOutputChannels)
	return dev.MaxOutputChannels, nil
}

func (portAudioBackend) OpenStream(channels, sampleRate int, cb renderCallback) (outputStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), portaudio.FramesPerBufferUnspecified,
		func(out [][]float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
			if flags&portaudio.OutputUnderflow != 0 {
				logWarnf("PortAudio output underflow")
			}
			cb(out)
		})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return &portAudioStream{stream: stream}, nil
}

type portAudioStream struct {
	stream *portaudio.Stream
}

func (ps *portAudioStream) Start() error { return ps.stream.Start() }

func (ps *portAudioStream) Stop() error { return ps.stream.Stop() }

func (ps *portAudioStream) Close() error {
	err := ps.stream.Close()
	portaudio.Terminate()
	return err
}
