package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tiltball/internal/session"
	"github.com/san-kum/tiltball/internal/tilt"
)

type failingGate struct{ err error }

func (g failingGate) Request(ctx context.Context) (string, error) { return "", g.err }

type stepRecorder struct {
	states []tilt.State
	steps  []int
}

func (r *stepRecorder) OnStep(s tilt.State, step int) {
	r.states = append(r.states, s)
	r.steps = append(r.steps, step)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newIntegrator() *tilt.Integrator {
	integ, err := tilt.NewIntegrator(tilt.DefaultProperties(), tilt.DefaultBounds())
	Expect(err).NotTo(HaveOccurred())
	return integ
}

var _ = Describe("Session", func() {
	var (
		feed *session.Feed
		ctx  context.Context
	)

	BeforeEach(func() {
		feed = session.NewFeed()
		ctx = context.Background()
	})

	Context("before permission is requested", func() {
		It("starts at rest and uninitialized", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			Expect(s.Snapshot()).To(Equal(tilt.DefaultState()))
			Expect(s.Phase()).To(Equal(session.PhaseUninitialized))
			Expect(s.Permission()).To(Equal(session.NotRequested))
			Expect(feed.Subscribers()).To(BeZero())
		})

		It("drops samples delivered directly", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			s.Handle(tilt.Sample{Beta: tilt.Degrees(50)})
			Expect(s.Snapshot()).To(Equal(tilt.DefaultState()))
			Expect(s.Steps()).To(BeZero())
		})
	})

	Context("without a gate", func() {
		It("subscribes immediately and integrates samples", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			Expect(s.RequestPermission(ctx)).To(Equal(session.Granted))
			Expect(s.Phase()).To(Equal(session.PhaseReset))
			Expect(feed.Subscribers()).To(Equal(1))

			feed.Emit(tilt.Sample{Beta: tilt.Degrees(50), Gamma: tilt.Degrees(0)})

			st := s.Snapshot()
			Expect(st.Velocity).To(Equal(tilt.Coordinate{X: 0, Y: 0.5}))
			Expect(st.Position).To(Equal(tilt.Coordinate{X: 50, Y: 50.5}))
			Expect(s.Phase()).To(Equal(session.PhaseActive))
			Expect(s.Steps()).To(Equal(1))
		})

		It("does not subscribe twice on repeated requests", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			s.RequestPermission(ctx)
			s.RequestPermission(ctx)
			Expect(feed.Subscribers()).To(Equal(1))
		})

		It("resets state on re-acquisition", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			s.RequestPermission(ctx)
			for i := 0; i < 5; i++ {
				feed.Emit(tilt.Sample{Gamma: tilt.Degrees(40)})
			}
			Expect(s.Snapshot()).NotTo(Equal(tilt.DefaultState()))

			s.RequestPermission(ctx)
			Expect(s.Snapshot()).To(Equal(tilt.DefaultState()))
			Expect(s.Phase()).To(Equal(session.PhaseReset))
		})
	})

	Context("with a synchronous allow gate", func() {
		It("grants and records the outcome", func() {
			s := session.New(newIntegrator(), feed, session.AllowGate{}, quiet)
			Expect(s.RequestPermission(ctx)).To(Equal(session.Granted))
			Expect(s.Outcome()).To(Equal(session.OutcomeGranted))
			Expect(s.Err()).NotTo(HaveOccurred())
		})
	})

	Context("with a prompt gate", func() {
		var gate *session.PromptGate

		BeforeEach(func() {
			gate = session.NewPromptGate()
		})

		It("stays pending until the user answers", func() {
			s := session.New(newIntegrator(), feed, gate, quiet)
			done := make(chan session.Permission, 1)
			go func() { done <- s.RequestPermission(ctx) }()

			Eventually(gate.Waiting).Should(BeTrue())
			Expect(s.Permission()).To(Equal(session.Pending))
			Expect(s.RequestPermission(ctx)).To(Equal(session.Pending))

			Expect(gate.Answer(session.OutcomeGranted)).To(BeTrue())
			Eventually(done).Should(Receive(Equal(session.Granted)))
			Expect(feed.Subscribers()).To(Equal(1))
		})

		It("leaves the consumer detached on denial", func() {
			s := session.New(newIntegrator(), feed, gate, quiet)
			done := make(chan session.Permission, 1)
			go func() { done <- s.RequestPermission(ctx) }()

			Eventually(gate.Waiting).Should(BeTrue())
			gate.Answer(session.OutcomeDenied)
			Eventually(done).Should(Receive(Equal(session.Denied)))

			Expect(feed.Subscribers()).To(BeZero())
			Expect(s.Err()).To(MatchError(session.ErrPermissionDenied))
			Expect(s.Outcome()).To(Equal(session.OutcomeDenied))

			feed.Emit(tilt.Sample{Beta: tilt.Degrees(90)})
			Expect(s.Snapshot()).To(Equal(tilt.DefaultState()))
		})

		It("treats a cancelled request as denied", func() {
			s := session.New(newIntegrator(), feed, gate, quiet)
			cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
			defer cancel()

			Expect(s.RequestPermission(cctx)).To(Equal(session.Denied))
			Expect(errors.Is(s.Err(), context.DeadlineExceeded)).To(BeTrue())
			Expect(s.Err()).To(MatchError(session.ErrPermissionDenied))
		})

		It("ignores a resolution that arrives after close", func() {
			s := session.New(newIntegrator(), feed, gate, quiet)
			done := make(chan session.Permission, 1)
			go func() { done <- s.RequestPermission(ctx) }()

			Eventually(gate.Waiting).Should(BeTrue())
			s.Close()
			gate.Answer(session.OutcomeGranted)

			Eventually(done).Should(Receive(Equal(session.Denied)))
			Expect(s.Permission()).To(Equal(session.Denied))
			Expect(feed.Subscribers()).To(BeZero())
			Expect(s.Phase()).To(Equal(session.PhaseClosed))
		})
	})

	Context("with a failing gate", func() {
		It("degrades to denied without panicking", func() {
			boom := errors.New("boom")
			s := session.New(newIntegrator(), feed, failingGate{err: boom}, quiet)
			Expect(s.RequestPermission(ctx)).To(Equal(session.Denied))
			Expect(s.Err()).To(MatchError(boom))
		})
	})

	Context("without an orientation source", func() {
		It("stays a static display", func() {
			s := session.New(newIntegrator(), nil, session.AllowGate{}, quiet)
			Expect(s.RequestPermission(ctx)).To(Equal(session.NotRequested))
			Expect(s.Err()).To(MatchError(session.ErrMissingCapability))
			Expect(s.Snapshot()).To(Equal(tilt.DefaultState()))
		})
	})

	Describe("reset", func() {
		It("happens only through a fresh permission request", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			s.RequestPermission(ctx)
			feed.Emit(tilt.Sample{Beta: tilt.Degrees(30), Gamma: tilt.Degrees(-20)})
			Expect(s.Snapshot()).NotTo(Equal(tilt.DefaultState()))

			s.RequestPermission(ctx)
			once := s.Snapshot()
			s.RequestPermission(ctx)
			Expect(s.Snapshot()).To(Equal(once))
			Expect(once).To(Equal(tilt.State{Position: tilt.Coordinate{X: 50, Y: 50}}))
			Expect(s.Phase()).To(Equal(session.PhaseReset))
			Expect(feed.Subscribers()).To(Equal(1))
		})
	})

	Describe("Close", func() {
		It("unsubscribes and drops later samples", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			s.RequestPermission(ctx)
			s.Close()

			Expect(feed.Subscribers()).To(BeZero())
			s.Handle(tilt.Sample{Beta: tilt.Degrees(50)})
			Expect(s.Steps()).To(BeZero())
			Expect(s.RequestPermission(ctx)).To(Equal(session.Granted))
			Expect(feed.Subscribers()).To(BeZero())
		})
	})

	Describe("observers", func() {
		It("see every step in delivery order", func() {
			s := session.New(newIntegrator(), feed, nil, quiet)
			rec := &stepRecorder{}
			s.AddObserver(rec)
			s.RequestPermission(ctx)

			for i := 0; i < 3; i++ {
				feed.Emit(tilt.Sample{Beta: tilt.Degrees(10)})
			}

			Expect(rec.steps).To(Equal([]int{1, 2, 3}))
			Expect(rec.states[2]).To(Equal(s.Snapshot()))
			Expect(rec.states[0].Velocity.Y).To(BeNumerically("~", 0.1, 1e-12))
			Expect(rec.states[2].Velocity.Y).To(BeNumerically("~", 0.3, 1e-12))
		})
	})
})
