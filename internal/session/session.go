package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/tiltball/internal/tilt"
)

// Observer is notified after every applied step while the session lock is
// held. Implementations must not call back into the session.
type Observer interface {
	OnStep(s tilt.State, step int)
}

type Session struct {
	integ  *tilt.Integrator
	source Source
	gate   Gate
	logger *slog.Logger

	mu          sync.Mutex
	state       tilt.State
	phase       Phase
	perm        Permission
	outcome     string
	err         error
	steps       int
	unsubscribe func()
	observers   []Observer
}

// New creates a session at rest. A nil source means the host has no
// orientation support; a nil gate means no permission is required.
func New(integ *tilt.Integrator, source Source, gate Gate, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		integ:  integ,
		source: source,
		gate:   gate,
		logger: logger,
		state:  tilt.DefaultState(),
		phase:  PhaseUninitialized,
		perm:   NotRequested,
	}
}

func (s *Session) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// RequestPermission runs the user-initiated permission flow. On grant the
// session subscribes to its source; in every case the state returns to
// defaults once the request resolves. A request made while another is
// pending, or after Close, changes nothing.
func (s *Session) RequestPermission(ctx context.Context) Permission {
	s.mu.Lock()
	if s.phase == PhaseClosed || s.perm == Pending {
		p := s.perm
		s.mu.Unlock()
		return p
	}

	if s.source == nil {
		s.err = ErrMissingCapability
		s.resetLocked()
		s.mu.Unlock()
		s.logger.Warn("orientation source unavailable, staying at rest")
		return NotRequested
	}

	if s.gate == nil {
		s.grantLocked(OutcomeGranted)
		s.resetLocked()
		s.mu.Unlock()
		return Granted
	}

	prev := s.perm
	s.perm = Pending
	s.mu.Unlock()

	s.logger.Debug("requesting orientation permission", "previous", prev.String())
	outcome, err := s.gate.Request(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		s.logger.Debug("permission resolved after close, ignoring", "outcome", outcome)
		s.perm = Denied
		return s.perm
	}

	switch {
	case err != nil:
		s.logger.Warn("permission request failed", "err", err)
		s.denyLocked(outcome, fmt.Errorf("%w: %w", ErrPermissionDenied, err))
	case outcome == OutcomeGranted:
		s.grantLocked(outcome)
	default:
		s.denyLocked(outcome, ErrPermissionDenied)
	}
	s.resetLocked()
	return s.perm
}

func (s *Session) grantLocked(outcome string) {
	s.perm = Granted
	s.outcome = outcome
	s.err = nil
	if s.unsubscribe == nil {
		s.unsubscribe = s.source.Subscribe(s.Handle)
	}
	s.logger.Info("orientation permission granted")
}

func (s *Session) denyLocked(outcome string, err error) {
	s.perm = Denied
	s.outcome = outcome
	s.err = err
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.logger.Info("orientation permission denied", "outcome", outcome)
}

// Handle applies one sample. Samples arriving without a grant or after
// Close are dropped.
func (s *Session) Handle(sample tilt.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed || s.perm != Granted {
		return
	}

	s.state = s.integ.Step(s.state, sample)
	s.phase = PhaseActive
	s.steps++

	for _, o := range s.observers {
		o.OnStep(s.state, s.steps)
	}
}

func (s *Session) resetLocked() {
	s.state = tilt.DefaultState()
	s.phase = PhaseReset
}

// Close detaches from the source. Later samples and permission
// resolutions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseClosed {
		return
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.phase = PhaseClosed
	s.logger.Debug("session closed", "steps", s.steps)
}

func (s *Session) Snapshot() tilt.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perm
}

// Outcome is the raw string the gate last resolved to.
func (s *Session) Outcome() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

func (s *Session) Properties() tilt.Properties {
	return s.integ.Properties()
}
