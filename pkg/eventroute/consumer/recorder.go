package consumer

import (
	"context"
	"sync"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
)

// Delivery is one event received by a Recorder.
type Delivery struct {
	Event   eventroute.Event
	Context eventroute.EventContext
}

// Recorder keeps every event it receives in memory.
// Useful in tests and for debugging consumers.
type Recorder struct {
	mu         sync.Mutex
	deliveries []Delivery
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Callback returns the callback to register.
func (r *Recorder) Callback() eventroute.Callback {
	return eventroute.Bound((*Recorder).record, r)
}

func (r *Recorder) record(_ context.Context, evt eventroute.Event, ec eventroute.EventContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, Delivery{Event: evt, Context: ec})
	return nil
}

// Deliveries returns a copy of everything received so far.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

// Names returns the event names received so far, in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.deliveries))
	for i, d := range r.deliveries {
		out[i] = d.Event.Name
	}
	return out
}

// Len returns the number of events received.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.deliveries)
}

// Reset discards everything received.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}
