// Package viz is the terminal presentation for a tilt session, built on
// Bubble Tea.
//
//   - [Model]: Bubble Tea model that feeds keyboard tilt into a session
//   - [Canvas]: Braille-based pixel canvas the ball is drawn on
//
// # Key Bindings
//
//	P       - Request sensor permission (resets the ball)
//	Y / N   - Answer a pending permission prompt
//	Arrows  - Tilt the device (h/j/k/l also work)
//	0       - Level the device
//	Space   - Pause/Resume sampling
//	T       - Cycle color themes
//	Q       - Quit
package viz
