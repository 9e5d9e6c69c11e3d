package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tiltball/internal/tilt"
)

// Entry is one scripted sample, optionally repeated.
type Entry struct {
	tilt.Sample `yaml:",inline"`
	Repeat      int `yaml:"repeat,omitempty"`
}

type Script struct {
	Name    string  `yaml:"name,omitempty"`
	Samples []Entry `yaml:"samples"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, e := range s.Samples {
		if e.Repeat < 0 {
			return nil, fmt.Errorf("parse script: sample %d: negative repeat %d", i, e.Repeat)
		}
	}
	return &s, nil
}

// Expand flattens repeats into the delivered sample order.
func (s *Script) Expand() []tilt.Sample {
	out := make([]tilt.Sample, 0, len(s.Samples))
	for _, e := range s.Samples {
		n := e.Repeat
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			out = append(out, e.Sample)
		}
	}
	return out
}
