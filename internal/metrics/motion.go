package metrics

import (
	"math"

	"github.com/san-kum/tiltball/internal/tilt"
)

type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) OnStep(s tilt.State, step int) {
	p.peak = math.Max(p.peak, math.Hypot(s.Velocity.X, s.Velocity.Y))
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// Distance is the path length travelled by the ball.
type Distance struct {
	last    tilt.Coordinate
	started bool
	sum     float64
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) OnStep(s tilt.State, step int) {
	if d.started {
		d.sum += math.Hypot(s.Position.X-d.last.X, s.Position.Y-d.last.Y)
	} else {
		// first observed step moved from the rest position
		rest := tilt.DefaultState().Position
		d.sum += math.Hypot(s.Position.X-rest.X, s.Position.Y-rest.Y)
		d.started = true
	}
	d.last = s.Position
}

func (d *Distance) Value() float64 { return d.sum }

func (d *Distance) Reset() {
	d.sum = 0
	d.started = false
}

// Reversals counts velocity sign flips on either axis. Wall bounces show
// up here along with tilt reversals.
type Reversals struct {
	last  tilt.Coordinate
	count int
}

func NewReversals() *Reversals { return &Reversals{} }

func (r *Reversals) Name() string { return "reversals" }

func (r *Reversals) OnStep(s tilt.State, step int) {
	if s.Velocity.X*r.last.X < 0 {
		r.count++
	}
	if s.Velocity.Y*r.last.Y < 0 {
		r.count++
	}
	r.last = s.Velocity
}

func (r *Reversals) Value() float64 { return float64(r.count) }

func (r *Reversals) Reset() {
	r.count = 0
	r.last = tilt.Coordinate{}
}

// Contact is the fraction of steps spent pressed against the canvas edge.
type Contact struct {
	box      tilt.Box
	touching int
	samples  int
}

func NewContact(box tilt.Box) *Contact { return &Contact{box: box} }

func (c *Contact) Name() string { return "wall_contact" }

func (c *Contact) OnStep(s tilt.State, step int) {
	c.samples++
	p := s.Position
	if p.X <= c.box.X.Min || p.X >= c.box.X.Max || p.Y <= c.box.Y.Min || p.Y >= c.box.Y.Max {
		c.touching++
	}
}

func (c *Contact) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.touching) / float64(c.samples)
}

func (c *Contact) Reset() {
	c.touching = 0
	c.samples = 0
}
