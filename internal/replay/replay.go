package replay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/tiltball/internal/session"
	"github.com/san-kum/tiltball/internal/tilt"
)

type Result struct {
	States []tilt.State
	Steps  int
}

type recorder struct {
	states []tilt.State
}

func (r *recorder) OnStep(s tilt.State, step int) {
	r.states = append(r.states, s)
}

// Run drives a fresh session through the samples in order. States[0] is
// the rest state; each later entry follows one sample. Extra observers see
// every step after the trace is recorded.
func Run(ctx context.Context, integ *tilt.Integrator, samples []tilt.Sample, logger *slog.Logger, observers ...session.Observer) (*Result, error) {
	if integ == nil {
		return nil, fmt.Errorf("replay: integrator is nil")
	}

	feed := session.NewFeed()
	s := session.New(integ, feed, nil, logger)
	defer s.Close()

	rec := &recorder{states: make([]tilt.State, 0, len(samples)+1)}
	rec.states = append(rec.states, s.Snapshot())
	s.AddObserver(rec)
	for _, o := range observers {
		s.AddObserver(o)
	}

	if p := s.RequestPermission(ctx); p != session.Granted {
		return nil, fmt.Errorf("replay: permission %s", p)
	}

	result := &Result{}
	for _, sample := range samples {
		select {
		case <-ctx.Done():
			result.States = rec.states
			result.Steps = s.Steps()
			return result, ctx.Err()
		default:
		}
		feed.Emit(sample)
	}

	result.States = rec.states
	result.Steps = s.Steps()
	return result, nil
}

// Series extracts one component of the trace: x, y, vx or vy.
func (r *Result) Series(name string) ([]float64, error) {
	var pick func(tilt.State) float64
	switch name {
	case "x":
		pick = func(s tilt.State) float64 { return s.Position.X }
	case "y":
		pick = func(s tilt.State) float64 { return s.Position.Y }
	case "vx":
		pick = func(s tilt.State) float64 { return s.Velocity.X }
	case "vy":
		pick = func(s tilt.State) float64 { return s.Velocity.Y }
	default:
		return nil, fmt.Errorf("unknown series: %s", name)
	}

	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = pick(s)
	}
	return out, nil
}

func (r *Result) Final() tilt.State {
	if len(r.States) == 0 {
		return tilt.DefaultState()
	}
	return r.States[len(r.States)-1]
}
