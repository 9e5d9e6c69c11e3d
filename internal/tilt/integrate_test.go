package tilt

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestIntegrateVelocity(t *testing.T) {
	props := Properties{Friction: 0.5, MaxVelocity: 3}
	bounds := DefaultBounds()

	tests := []struct {
		name string
		pos  Coordinate
		vel  Coordinate
		in   Tilt
		want Coordinate
	}{
		{"at rest", Coordinate{50, 50}, Coordinate{}, Tilt{}, Coordinate{}},
		{"front tilt", Coordinate{50, 50}, Coordinate{}, Tilt{FrontToBack: 50}, Coordinate{0, 0.5}},
		{"left tilt", Coordinate{50, 50}, Coordinate{}, Tilt{LeftToRight: -30}, Coordinate{-0.3, 0}},
		{"clamp high", Coordinate{50, 50}, Coordinate{2.9, 2.9}, Tilt{90, 90}, Coordinate{3, 3}},
		{"clamp low", Coordinate{50, 50}, Coordinate{-2.9, -2.9}, Tilt{-90, -90}, Coordinate{-3, -3}},
		{"right wall", Coordinate{95, 50}, Coordinate{8, 0}, Tilt{}, Coordinate{-1.5, 0}},
		{"left wall", Coordinate{1, 50}, Coordinate{-2, 0}, Tilt{}, Coordinate{1, 0}},
		{"bottom wall", Coordinate{50, 99}, Coordinate{0, 2}, Tilt{}, Coordinate{0, -1}},
		{"top wall", Coordinate{50, 0.5}, Coordinate{0, -1}, Tilt{}, Coordinate{0, 0.5}},
		{"x skew at 90", Coordinate{89, 50}, Coordinate{2, 0}, Tilt{}, Coordinate{-1, 0}},
		{"on the edge", Coordinate{88, 100}, Coordinate{2, 0}, Tilt{}, Coordinate{2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntegrateVelocity(tt.pos, tt.vel, tt.in, props, bounds)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("IntegrateVelocity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntegrateVelocity_UsesPreviousVelocityForProbe(t *testing.T) {
	props := Properties{Friction: 0.5, MaxVelocity: 3}

	// Tilt pushes the new velocity past the wall, but the previous one
	// keeps the probe inside, so no bounce yet.
	got := IntegrateVelocity(Coordinate{89, 50}, Coordinate{0.5, 0}, Tilt{LeftToRight: 90}, props, DefaultBounds())
	if math.Abs(got.X-1.4) > 1e-12 {
		t.Errorf("expected vx 1.4, got %v", got.X)
	}
}

func TestIntegrateVelocity_SymmetricBounds(t *testing.T) {
	props := Properties{Friction: 0.5, MaxVelocity: 3}
	b := DefaultBounds()
	b.Reflect.X.Max = 100

	got := IntegrateVelocity(Coordinate{89, 50}, Coordinate{2, 0}, Tilt{}, props, b)
	if got.X != 2 {
		t.Errorf("expected no bounce with x bound 100, got vx %v", got.X)
	}
}

func TestIntegratePosition(t *testing.T) {
	b := DefaultBounds()

	tests := []struct {
		pos, vel, want Coordinate
	}{
		{Coordinate{50, 50}, Coordinate{0, 0.5}, Coordinate{50, 50.5}},
		{Coordinate{99, 1}, Coordinate{3, -3}, Coordinate{100, 0}},
		{Coordinate{0, 100}, Coordinate{-1, 1}, Coordinate{0, 100}},
		{Coordinate{93, 40}, Coordinate{-1.5, 2}, Coordinate{91.5, 42}},
	}

	for _, tt := range tests {
		if got := IntegratePosition(tt.pos, tt.vel, b); got != tt.want {
			t.Errorf("IntegratePosition(%v, %v) = %v, want %v", tt.pos, tt.vel, got, tt.want)
		}
	}
}

func TestIntegratePosition_ClampIdempotent(t *testing.T) {
	b := DefaultBounds()
	once := IntegratePosition(Coordinate{98, 2}, Coordinate{5, -5}, b)
	twice := IntegratePosition(once, Coordinate{}, b)
	if once != twice {
		t.Errorf("clamp not idempotent: %v then %v", once, twice)
	}
}

func TestStep_EndToEnd(t *testing.T) {
	integ, err := NewIntegrator(DefaultProperties(), DefaultBounds())
	if err != nil {
		t.Fatalf("new integrator: %v", err)
	}

	s := integ.Step(DefaultState(), Sample{Beta: Degrees(50), Gamma: Degrees(0)})

	if s.Velocity != (Coordinate{0, 0.5}) {
		t.Errorf("velocity = %v, want (0, 0.5)", s.Velocity)
	}
	if s.Position != (Coordinate{50, 50.5}) {
		t.Errorf("position = %v, want (50, 50.5)", s.Position)
	}
}

func TestStep_BoundaryReflection(t *testing.T) {
	integ, err := NewIntegrator(Properties{Friction: 0.5, MaxVelocity: 3}, DefaultBounds())
	if err != nil {
		t.Fatalf("new integrator: %v", err)
	}

	start := State{Position: Coordinate{95, 50}, Velocity: Coordinate{8, 0}}
	s := integ.Step(start, Sample{Alpha: Degrees(0), Beta: Degrees(0), Gamma: Degrees(0)})

	if s.Velocity.X != -1.5 {
		t.Errorf("vx = %v, want -1.5", s.Velocity.X)
	}
	if s.Position.X != 93.5 {
		t.Errorf("x = %v, want 93.5", s.Position.X)
	}
}

func TestStep_ZeroInputStable(t *testing.T) {
	integ, _ := NewIntegrator(DefaultProperties(), DefaultBounds())
	zero := Sample{Degrees(0), Degrees(0), Degrees(0)}

	s := DefaultState()
	for i := 0; i < 100; i++ {
		s = integ.Step(s, zero)
	}
	if s != DefaultState() {
		t.Errorf("state drifted at rest: %+v", s)
	}
}

func TestStep_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	props := DefaultProperties()
	bounds := DefaultBounds()
	integ, _ := NewIntegrator(props, bounds)

	s := DefaultState()
	for i := 0; i < 10000; i++ {
		in := Tilt{FrontToBack: rng.Float64()*360 - 180, LeftToRight: rng.Float64()*180 - 90}

		limit := Range{-props.MaxVelocity, props.MaxVelocity}
		vx := limit.Clamp(s.Velocity.X + in.LeftToRight/TiltScale)
		vy := limit.Clamp(s.Velocity.Y + in.FrontToBack/TiltScale)
		if math.Abs(vx) > props.MaxVelocity || math.Abs(vy) > props.MaxVelocity {
			t.Fatalf("step %d: pre-reflection velocity out of range (%v, %v)", i, vx, vy)
		}

		s = integ.Step(s, Sample{Beta: Degrees(in.FrontToBack), Gamma: Degrees(in.LeftToRight)})

		if !bounds.Clamp.X.Contains(s.Position.X) || !bounds.Clamp.Y.Contains(s.Position.Y) {
			t.Fatalf("step %d: position out of canvas %v", i, s.Position)
		}
		if math.Abs(s.Velocity.X) > props.MaxVelocity || math.Abs(s.Velocity.Y) > props.MaxVelocity {
			t.Fatalf("step %d: velocity exceeds clamp %v", i, s.Velocity)
		}
	}
}

func TestNewIntegrator_Validation(t *testing.T) {
	tests := []struct {
		name   string
		props  Properties
		bounds Bounds
		want   error
	}{
		{"negative friction", Properties{Friction: -0.1, MaxVelocity: 3}, DefaultBounds(), ErrFrictionRange},
		{"friction above one", Properties{Friction: 1.5, MaxVelocity: 3}, DefaultBounds(), ErrFrictionRange},
		{"zero max velocity", Properties{Friction: 0.5}, DefaultBounds(), ErrMaxVelocity},
		{"nan max velocity", Properties{Friction: 0.5, MaxVelocity: math.NaN()}, DefaultBounds(), ErrMaxVelocity},
		{"nan friction", Properties{Friction: math.NaN(), MaxVelocity: 3}, DefaultBounds(), ErrFrictionRange},
		{"inverted bounds", DefaultProperties(), Bounds{Reflect: Box{X: Range{90, 0}}}, ErrBounds},
		{"nan reflect max", DefaultProperties(), Bounds{Reflect: Box{X: Range{0, math.NaN()}}}, ErrBounds},
		{"nan clamp min", DefaultProperties(), Bounds{Clamp: Box{Y: Range{math.NaN(), 100}}}, ErrBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIntegrator(tt.props, tt.bounds)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
