// Package session owns the live simulation state for one viewer.
//
// A [Session] resolves sensor permission through a [Gate], subscribes to a
// [Source] only once permission is granted, and applies every accepted
// sample to its state as a single step. It is the only writer of that
// state; readers take copies through [Session.Snapshot].
//
// Failure modes never surface on the sample path. A missing source or a
// denied permission leaves the ball at rest at its default position, and
// [Session.Err] reports why.
package session
