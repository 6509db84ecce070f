package eventroute

import (
	"context"
	"slices"

	"github.com/randalmurphal/eventroute/pkg/eventroute/observability"
)

// Register subscribes a consumer to every (level, tag) pair in levels × tags.
//
// Duplicate levels or tags within one call are collapsed. Unknown levels are
// skipped. Every tag is added to the tag catalog. The callback is stored under
// id, replacing any previous callback for that id.
//
// If WithEnvironments is given and the service environment is not listed,
// Register records nothing and returns nil.
//
// Registering the same id twice for overlapping pairs appends the id to those
// cells again, so the consumer is invoked once per entry on dispatch. Callers
// that re-register should Unregister first.
func (s *Service) Register(id string, cb Callback, levels []Level, tags []string, opts ...ConsumerOption) error {
	if id == "" {
		return ErrEmptyConsumerID
	}
	levels = uniqueOrdered(levels)
	if len(levels) == 0 {
		return ErrNoLevels
	}
	tags = uniqueOrdered(tags)
	if len(tags) == 0 {
		return ErrNoTags
	}
	if slices.Contains(tags, "") {
		return ErrEmptyTag
	}

	var cfg consumerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()
	if len(cfg.environments) > 0 && !slices.Contains(cfg.environments, s.environment) {
		observability.LogRegisterSkipped(s.logger, id, s.environment, cfg.environments)
		s.metrics.RecordRegistration(ctx, id, false)
		return nil
	}

	s.mu.Lock()
	s.registerTagsLocked(tags)
	for _, level := range levels {
		cells, ok := s.routes[level]
		if !ok {
			continue
		}
		for _, tag := range tags {
			cells[tag] = append(cells[tag], id)
		}
	}
	s.callbacks[id] = cb
	// Send snapshots providers under s.mu, so they must change with the
	// callback.
	s.RegisterApplicationContext(id, cfg.appContext)
	s.RegisterUserContext(id, cfg.userContext)
	s.mu.Unlock()

	observability.LogRegister(s.logger, id, levelNames(levels), tags)
	s.metrics.RecordRegistration(ctx, id, true)
	return nil
}

// Unregister removes every routing entry for id, its callback and both of its
// context providers. Unknown ids are ignored.
func (s *Service) Unregister(id string) {
	s.mu.Lock()
	for _, cells := range s.routes {
		for tag, ids := range cells {
			if slices.Contains(ids, id) {
				cells[tag] = slices.DeleteFunc(slices.Clone(ids), func(c string) bool { return c == id })
			}
		}
	}
	delete(s.callbacks, id)
	s.appContext.Delete(id)
	s.userContext.Delete(id)
	s.mu.Unlock()

	observability.LogUnregister(s.logger, id)
}

// RegisterTags adds tags to the catalog, creating an empty consumer list for
// each new tag under every level. Known tags and empty strings are ignored.
func (s *Service) RegisterTags(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerTagsLocked(tags)
}

// registerTagsLocked must be called with s.mu held for writing.
func (s *Service) registerTagsLocked(tags []string) {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		for _, cells := range s.routes {
			if _, ok := cells[tag]; !ok {
				cells[tag] = []string{}
			}
		}
		if !s.tags.Has(tag) {
			s.tags.Register(tag, struct{}{})
		}
	}
}

// Tags returns every known tag in the order it was first registered.
func (s *Service) Tags() []string {
	return s.tags.Keys()
}

// HasTag reports whether tag is in the catalog.
func (s *Service) HasTag(tag string) bool {
	return s.tags.Has(tag)
}

// Consumers returns a copy of the consumer ids routed for (level, tag), in
// dispatch order. It returns nil for unknown levels or tags.
func (s *Service) Consumers(level Level, tag string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cells, ok := s.routes[level]
	if !ok {
		return nil
	}
	ids, ok := cells[tag]
	if !ok {
		return nil
	}
	return slices.Clone(ids)
}

// IsRegistered reports whether id has a stored callback.
func (s *Service) IsRegistered(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.callbacks[id]
	return ok
}

func uniqueOrdered[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func levelNames(levels []Level) []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}
	return names
}
