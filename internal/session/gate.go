package session

import (
	"context"
	"sync"
)

const (
	OutcomeGranted = "granted"
	OutcomeDenied  = "denied"
)

// Gate resolves whether orientation events may be consumed. Any outcome
// other than OutcomeGranted counts as a denial. A nil Gate means the host
// needs no permission.
type Gate interface {
	Request(ctx context.Context) (string, error)
}

// AllowGate grants synchronously.
type AllowGate struct{}

func (AllowGate) Request(ctx context.Context) (string, error) {
	return OutcomeGranted, nil
}

// PromptGate blocks each request until the user answers through Answer.
type PromptGate struct {
	mu      sync.Mutex
	waiting chan string
}

func NewPromptGate() *PromptGate {
	return &PromptGate{}
}

func (g *PromptGate) Request(ctx context.Context) (string, error) {
	ch := make(chan string, 1)

	g.mu.Lock()
	g.waiting = ch
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		if g.waiting == ch {
			g.waiting = nil
		}
		g.mu.Unlock()
	}()

	select {
	case outcome := <-ch:
		return outcome, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Waiting reports whether a request is blocked on the user.
func (g *PromptGate) Waiting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting != nil
}

// Answer resolves the outstanding request, if any.
func (g *PromptGate) Answer(outcome string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.waiting == nil {
		return false
	}
	g.waiting <- outcome
	g.waiting = nil
	return true
}
