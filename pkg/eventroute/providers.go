package eventroute

import (
	"maps"

	"github.com/randalmurphal/eventroute/pkg/eventroute/registry"
)

// ContextProvider supplies ambient fields merged into every dispatched event.
// It is called once per dispatch with no arguments; cache expensive lookups.
type ContextProvider func() (Fields, error)

const (
	scopeApplication = "application"
	scopeUser        = "user"
)

// RegisterApplicationContext stores an application context provider under
// id, replacing any provider already registered under that id.
func (s *Service) RegisterApplicationContext(id string, p ContextProvider) {
	if p == nil {
		return
	}
	s.appContext.Register(id, p)
}

// RegisterUserContext stores a user context provider under id, replacing any
// provider already registered under that id.
func (s *Service) RegisterUserContext(id string, p ContextProvider) {
	if p == nil {
		return
	}
	s.userContext.Register(id, p)
}

// UnregisterApplicationContext removes the application provider for id.
func (s *Service) UnregisterApplicationContext(id string) {
	s.appContext.Delete(id)
}

// UnregisterUserContext removes the user provider for id.
func (s *Service) UnregisterUserContext(id string) {
	s.userContext.Delete(id)
}

// HasContextProvider reports whether id has an application or user provider.
func (s *Service) HasContextProvider(id string) bool {
	return s.appContext.Has(id) || s.userContext.Has(id)
}

// ApplicationContext computes the merged application context now.
func (s *Service) ApplicationContext() (Fields, error) {
	return s.aggregate(scopeApplication)
}

// UserContext computes the merged user context now.
func (s *Service) UserContext() (Fields, error) {
	return s.aggregate(scopeUser)
}

// providerEntry is one provider captured for a dispatch.
type providerEntry struct {
	id       string
	provider ContextProvider
}

// contextSnapshot holds the providers captured alongside the dispatch
// targets.
type contextSnapshot struct {
	app  []providerEntry
	user []providerEntry
}

// snapshotProviders captures both provider lists in registration order.
// Send calls it with s.mu held so the lists match the resolved targets.
func (s *Service) snapshotProviders() contextSnapshot {
	return contextSnapshot{
		app:  entries(s.appContext),
		user: entries(s.userContext),
	}
}

func entries(r *registry.Ordered[string, ContextProvider]) []providerEntry {
	out := make([]providerEntry, 0, r.Len())
	r.Range(func(id string, p ContextProvider) bool {
		out = append(out, providerEntry{id: id, provider: p})
		return true
	})
	return out
}

// build invokes every captured provider once, in registration order.
func (c contextSnapshot) build() (EventContext, error) {
	app, err := merge(scopeApplication, c.app)
	if err != nil {
		return EventContext{}, err
	}
	user, err := merge(scopeUser, c.user)
	if err != nil {
		return EventContext{}, err
	}
	return EventContext{Application: app, User: user}, nil
}

func (s *Service) aggregate(scope string) (Fields, error) {
	providers := s.appContext
	if scope == scopeUser {
		providers = s.userContext
	}
	return merge(scope, entries(providers))
}

// merge shallow-merges provider results; later providers win on
// conflicting keys. Provider errors are returned, not swallowed.
func merge(scope string, providers []providerEntry) (Fields, error) {
	merged := Fields{}
	for _, e := range providers {
		fields, err := e.provider()
		if err != nil {
			return nil, &ProviderError{Scope: scope, ProviderID: e.id, Err: err}
		}
		maps.Copy(merged, fields)
	}
	return merged, nil
}
