package eventroute

import (
	"fmt"
	"maps"
	"slices"
)

// RegisterEvents merges machine-name → human-name pairs into the event
// catalog, keyed by tag. Every tag is also registered with RegisterTags.
// Existing names under a tag are kept unless overwritten by the same key.
//
// The catalog is descriptive only; it does not affect routing.
//
// Example:
//
//	svc.RegisterEvents(map[string]map[string]string{
//	    "user": {"LOGGED_IN": "Logged In", "LOGGED_OUT": "Logged Out"},
//	})
func (s *Service) RegisterEvents(events map[string]map[string]string) {
	tags := slices.Sorted(maps.Keys(events))
	s.RegisterTags(tags...)

	for _, tag := range tags {
		if tag == "" {
			continue
		}
		names := events[tag]
		s.events.Update(tag, func(cur map[string]string, _ bool) map[string]string {
			merged := make(map[string]string, len(cur)+len(names))
			maps.Copy(merged, cur)
			maps.Copy(merged, names)
			return merged
		})
	}
}

// EventName returns the human-readable name registered for machine under tag.
func (s *Service) EventName(tag, machine string) (string, bool) {
	names, ok := s.events.Get(tag)
	if !ok {
		return "", false
	}
	name, ok := names[machine]
	return name, ok
}

// MustEventName is like EventName but panics when the event is unknown.
// Use it for names seeded at startup.
func (s *Service) MustEventName(tag, machine string) string {
	name, ok := s.EventName(tag, machine)
	if !ok {
		panic(fmt.Sprintf("%v: %s.%s", ErrUnknownEvent, tag, machine))
	}
	return name
}

// Events returns a copy of the names registered under tag.
func (s *Service) Events(tag string) map[string]string {
	names, ok := s.events.Get(tag)
	if !ok {
		return nil
	}
	return maps.Clone(names)
}

// Catalog returns a deep copy of the whole event catalog.
func (s *Service) Catalog() map[string]map[string]string {
	out := make(map[string]map[string]string, s.events.Len())
	s.events.Range(func(tag string, names map[string]string) bool {
		out[tag] = maps.Clone(names)
		return true
	})
	return out
}
