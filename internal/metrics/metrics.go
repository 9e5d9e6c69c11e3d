// Package metrics summarises a session trace. Every metric is a
// session.Observer and can be attached to a live or replayed session.
package metrics

import "github.com/san-kum/tiltball/internal/tilt"

type Metric interface {
	Name() string
	OnStep(s tilt.State, step int)
	Value() float64
	Reset()
}

// Defaults returns the metrics reported after a replay.
func Defaults(b tilt.Bounds) []Metric {
	return []Metric{
		NewPeakSpeed(),
		NewDistance(),
		NewReversals(),
		NewContact(b.Clamp),
	}
}

// Collect reads every metric into a name-keyed map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Replay feeds a recorded trace through the metrics. states[0] is the rest
// state and is not a step.
func Replay(states []tilt.State, ms []Metric) {
	for i := 1; i < len(states); i++ {
		for _, m := range ms {
			m.OnStep(states[i], i)
		}
	}
}
