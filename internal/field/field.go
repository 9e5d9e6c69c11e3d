// Package field is the contract toward an external rigid-body engine:
// pointer repulsion and tilt-driven gravity. The engine itself owns bodies,
// collisions and rendering.
package field

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/tiltball/internal/tilt"
)

const (
	RepelRadius    = 50.0
	RepelMagnitude = 0.1

	// GravityTilt is the tilt in degrees that maps to unit gravity.
	GravityTilt = 90.0
)

type Body interface {
	Position() mgl64.Vec2
	ApplyForce(at, force mgl64.Vec2)
}

type World interface {
	Bodies() []Body
	SetGravity(g mgl64.Vec2)
}

// RepelForce is the push a body at pos receives from a pointer at at. It
// falls off linearly to zero at RepelRadius. Coincident points get none.
func RepelForce(at, pos mgl64.Vec2) mgl64.Vec2 {
	d := pos.Sub(at)
	dist := d.Len()
	if dist == 0 || dist >= RepelRadius {
		return mgl64.Vec2{}
	}
	return d.Mul(1 / dist).Mul(RepelMagnitude * (1 - dist/RepelRadius))
}

// Repel applies RepelForce to every body near at and returns how many were
// pushed.
func Repel(w World, at mgl64.Vec2) int {
	n := 0
	for _, b := range w.Bodies() {
		pos := b.Position()
		f := RepelForce(at, pos)
		if f.Len() == 0 {
			continue
		}
		b.ApplyForce(pos, f)
		n++
	}
	return n
}

func GravityFromTilt(t tilt.Tilt) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(t.LeftToRight/GravityTilt, -1, 1),
		mgl64.Clamp(t.FrontToBack/GravityTilt, -1, 1),
	}
}
