package events

import (
	"context"
	"sync"
)

// Recorder is an EventHandler that keeps every event it receives. It is
// used by tests that assert on what a service published.
type Recorder struct {
	mu     sync.Mutex
	events []*Event
	err    error
}

var _ EventHandler = (*Recorder)(nil)

// NewRecorder creates a Recorder. A non-nil err is returned from every
// HandleEvent call after the event is recorded.
func NewRecorder(err error) *Recorder {
	return &Recorder{err: err}
}

// HandleEvent records the event.
func (r *Recorder) HandleEvent(_ context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

// Events returns the recorded events in arrival order.
func (r *Recorder) Events() []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(eventType string) []*Event {
	var out []*Event
	for _, e := range r.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
