package tilt

import "fmt"

// Integrator runs a full simulation step under fixed configuration.
type Integrator struct {
	props  Properties
	bounds Bounds
}

func NewIntegrator(p Properties, b Bounds) (*Integrator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}
	return &Integrator{props: p, bounds: b}, nil
}

func (i *Integrator) Properties() Properties { return i.props }
func (i *Integrator) Bounds() Bounds         { return i.bounds }

// Step consumes one sample: velocity first, then position from the new
// velocity. The input state is not modified.
func (i *Integrator) Step(s State, sample Sample) State {
	in := Normalize(sample)
	vel := IntegrateVelocity(s.Position, s.Velocity, in, i.props, i.bounds)
	return State{
		Position: IntegratePosition(s.Position, vel, i.bounds),
		Velocity: vel,
	}
}
