package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/ioc/di"
)

// Event is one observer callback captured by RecordingObserver.
type Event struct {
	Kind        string // "start", "end" or "constructed"
	Key         di.Key
	Found       bool
	Target      string
	Constructor string
	Err         error
}

// RecordingObserver is a di.Observer that keeps every event in order.
type RecordingObserver struct {
	mu     sync.Mutex
	events []Event
}

var _ di.Observer = (*RecordingObserver)(nil)

// ResolveStart records a start event.
func (o *RecordingObserver) ResolveStart(ctx context.Context, key di.Key) context.Context {
	o.add(Event{Kind: "start", Key: key})
	return ctx
}

// ResolveEnd records an end event.
func (o *RecordingObserver) ResolveEnd(_ context.Context, key di.Key, found bool, err error) {
	o.add(Event{Kind: "end", Key: key, Found: found, Err: err})
}

// Constructed records a constructed event.
func (o *RecordingObserver) Constructed(_ context.Context, target, constructor string, _ time.Duration, err error) {
	o.add(Event{Kind: "constructed", Target: target, Constructor: constructor, Err: err})
}

func (o *RecordingObserver) add(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

// Events returns a copy of the recorded events.
func (o *RecordingObserver) Events() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

// Constructions returns the constructor names that ran, in order.
func (o *RecordingObserver) Constructions() []string {
	var out []string
	for _, e := range o.Events() {
		if e.Kind == "constructed" {
			out = append(out, e.Constructor)
		}
	}
	return out
}

// Clear drops recorded events.
func (o *RecordingObserver) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = nil
}
