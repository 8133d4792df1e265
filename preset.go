package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a tone table loaded from YAML and applied channel by
// channel at startup.
type Preset struct {
	Channels []PresetChannel `yaml:"channels"`
}

type PresetChannel struct {
	Frequency float64 `yaml:"frequency"`
	Amplitude float64 `yaml:"amplitude"`
}

func loadPreset(filename string) (*Preset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", filename, err)
	}
	return &p, nil
}

// apply retunes the generator from the preset. Entries beyond the
// generator's channel count fall into the store's out-of-range no-op.
func (p *Preset) apply(gen *SineGenerator) {
	for i := range p.Channels {
		ch := p.Channels[i]
		gen.UpdateChannel(i, &ch.Frequency, &ch.Amplitude)
	}
}
