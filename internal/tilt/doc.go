// Package tilt implements the discrete-time 2D ball dynamics driven by
// device orientation samples.
//
// One step of the simulation is:
//
//   - [Normalize]: raw orientation [Sample] to a [Tilt]
//   - [IntegrateVelocity]: tilt to acceleration, speed clamp, edge bounce
//   - [IntegratePosition]: advance by velocity, clamp into the canvas
//
// Positions live in percentage-of-viewport space, [0,100] on both axes.
//
// # Example
//
//	integ, _ := tilt.NewIntegrator(tilt.DefaultProperties(), tilt.DefaultBounds())
//	s := tilt.DefaultState()
//	s = integ.Step(s, tilt.Sample{Beta: tilt.Degrees(50)})
//
// # Thread Safety
//
// Functions in this package are pure. [State] values are plain data; the
// session package owns the mutable copy.
package tilt
