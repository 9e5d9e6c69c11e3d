package session

import (
	"sync"

	"github.com/san-kum/tiltball/internal/tilt"
)

// Source delivers orientation samples in order. Subscribe must not invoke
// the handler before it returns.
type Source interface {
	Subscribe(handler func(tilt.Sample)) (unsubscribe func())
}

// Feed is an in-process Source. Emit delivers to every subscriber on the
// caller's goroutine.
type Feed struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(tilt.Sample)
	order    []int
}

func NewFeed() *Feed {
	return &Feed{handlers: make(map[int]func(tilt.Sample))}
}

func (f *Feed) Subscribe(handler func(tilt.Sample)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.handlers[id] = handler
	f.order = append(f.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.handlers, id)
			for i, v := range f.order {
				if v == id {
					f.order = append(f.order[:i], f.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (f *Feed) Emit(s tilt.Sample) {
	f.mu.Lock()
	handlers := make([]func(tilt.Sample), 0, len(f.order))
	for _, id := range f.order {
		handlers = append(handlers, f.handlers[id])
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(s)
	}
}

func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.order)
}
