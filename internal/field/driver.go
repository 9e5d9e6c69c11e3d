package field

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/tiltball/internal/session"
	"github.com/san-kum/tiltball/internal/tilt"
)

// Driver feeds orientation samples from a source into a world's gravity.
type Driver struct {
	world World

	mu          sync.Mutex
	gravity     mgl64.Vec2
	unsubscribe func()
}

func NewDriver(w World) *Driver {
	return &Driver{world: w}
}

func (d *Driver) Attach(src session.Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unsubscribe != nil {
		return
	}
	d.unsubscribe = src.Subscribe(d.OnSample)
}

func (d *Driver) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

func (d *Driver) OnSample(s tilt.Sample) {
	g := GravityFromTilt(tilt.Normalize(s))

	d.mu.Lock()
	d.gravity = g
	d.mu.Unlock()

	d.world.SetGravity(g)
}

func (d *Driver) Gravity() mgl64.Vec2 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gravity
}

func (d *Driver) Poke(at mgl64.Vec2) int {
	return Repel(d.world, at)
}
