package eventroute

import (
	"context"
	"sync"
)

// call is one recorded callback invocation.
type call struct {
	consumer string
	event    Event
	context  EventContext
}

// recorder collects invocations across consumers.
type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) callback(id string) Callback {
	return Func(func(_ context.Context, evt Event, ec EventContext) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, call{consumer: id, event: evt, context: ec})
		return nil
	})
}

func (r *recorder) consumers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.consumer
	}
	return out
}

func (r *recorder) count(id string) int {
	n := 0
	for _, c := range r.consumers() {
		if c == id {
			n++
		}
	}
	return n
}

func staticProvider(f Fields) ContextProvider {
	return func() (Fields, error) { return f, nil }
}
