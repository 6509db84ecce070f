package eventroute

import "maps"

// Fields is a flat key/value structure used for event metadata and context.
type Fields map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Event is the descriptor handed to consumers. It is built once per dispatch
// and every consumer receives its own copy.
type Event struct {
	// Name is the human-readable event name (e.g. "Rule Updated").
	Name string `json:"name"`

	// Type is the tag the event was emitted under.
	Type string `json:"type"`

	// Level is the severity the event was emitted at.
	Level Level `json:"level"`

	// Metadata carries producer-supplied data. Never nil.
	Metadata Fields `json:"metadata"`
}

// EventContext is the ambient context merged from every registered
// application and user context provider at dispatch time.
type EventContext struct {
	Application Fields `json:"application"`
	User        Fields `json:"user"`
}

func (e Event) clone() Event {
	e.Metadata = e.Metadata.Clone()
	return e
}

func (c EventContext) clone() EventContext {
	return EventContext{
		Application: c.Application.Clone(),
		User:        c.User.Clone(),
	}
}
