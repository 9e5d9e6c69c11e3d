package tilt

// IntegrateVelocity applies tilt as acceleration, clamps each component to
// MaxVelocity and bounces off the reflect box. The bounce test projects the
// previous position by the previous (unclamped) velocity, so the wall is
// detected one step early.
func IntegrateVelocity(prevPos, prevVel Coordinate, in Tilt, p Properties, b Bounds) Coordinate {
	limit := Range{-p.MaxVelocity, p.MaxVelocity}

	v := Coordinate{
		X: limit.Clamp(prevVel.X + in.LeftToRight/TiltScale),
		Y: limit.Clamp(prevVel.Y + in.FrontToBack/TiltScale),
	}

	probe := prevPos.Add(prevVel)
	if !b.Reflect.Y.Contains(probe.Y) {
		v.Y = -v.Y * p.Friction
	}
	if !b.Reflect.X.Contains(probe.X) {
		v.X = -v.X * p.Friction
	}
	return v
}

// IntegratePosition advances prevPos by vel and clamps into the canvas.
// Overshoot is dropped; it never feeds back into velocity.
func IntegratePosition(prevPos, vel Coordinate, b Bounds) Coordinate {
	return b.Clamp.Clamp(prevPos.Add(vel))
}
