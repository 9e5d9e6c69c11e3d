package tilt

import "fmt"

const (
	DefaultX = 50.0
	DefaultY = 50.0

	DefaultRadius      = 50.0
	DefaultWidth       = 50.0
	DefaultHeight      = 50.0
	DefaultColor       = "#1070a3"
	DefaultFriction    = 0.5
	DefaultMaxVelocity = 3.0

	// TiltScale converts degrees of tilt into per-sample velocity change.
	TiltScale = 100.0
)

type Coordinate struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
}

// State is the full mutable record of the simulation.
type State struct {
	Position Coordinate `json:"position"`
	Velocity Coordinate `json:"velocity"`
}

func DefaultState() State {
	return State{
		Position: Coordinate{X: DefaultX, Y: DefaultY},
	}
}

// Properties is the per-session ball configuration. Only Friction and
// MaxVelocity feed the dynamics; the rest is for presentation.
type Properties struct {
	Radius      float64
	Width       float64
	Height      float64
	Color       string
	Friction    float64
	MaxVelocity float64
}

func DefaultProperties() Properties {
	return Properties{
		Radius:      DefaultRadius,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Color:       DefaultColor,
		Friction:    DefaultFriction,
		MaxVelocity: DefaultMaxVelocity,
	}
}

func (p Properties) Validate() error {
	if !(p.Friction >= 0 && p.Friction <= 1) {
		return fmt.Errorf("%w: got %g", ErrFrictionRange, p.Friction)
	}
	if !(p.MaxVelocity > 0) {
		return fmt.Errorf("%w: got %g", ErrMaxVelocity, p.MaxVelocity)
	}
	return nil
}

// Range is a closed interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v float64) float64 {
	return max(r.Min, min(r.Max, v))
}

type Box struct {
	X Range `yaml:"x"`
	Y Range `yaml:"y"`
}

func (b Box) Clamp(c Coordinate) Coordinate {
	return Coordinate{X: b.X.Clamp(c.X), Y: b.Y.Clamp(c.Y)}
}

// Bounds holds the two boxes the integrators test against. Reflect is
// probed by the velocity bounce check, Clamp confines position. The
// default reflect box stops at 90 on x so the ball's width stays on
// screen at the right edge.
type Bounds struct {
	Reflect Box
	Clamp   Box
}

func DefaultBounds() Bounds {
	return Bounds{
		Reflect: Box{X: Range{0, 90}, Y: Range{0, 100}},
		Clamp:   Box{X: Range{0, 100}, Y: Range{0, 100}},
	}
}

func (b Bounds) Validate() error {
	for name, r := range map[string]Range{
		"reflect.x": b.Reflect.X,
		"reflect.y": b.Reflect.Y,
		"clamp.x":   b.Clamp.X,
		"clamp.y":   b.Clamp.Y,
	} {
		if !(r.Min <= r.Max) {
			return fmt.Errorf("%w: %s min %g, max %g", ErrBounds, name, r.Min, r.Max)
		}
	}
	return nil
}
