package eventroute

import (
	"log/slog"
	"sync"

	"github.com/randalmurphal/eventroute/pkg/eventroute/observability"
	"github.com/randalmurphal/eventroute/pkg/eventroute/registry"
)

// Service routes events from producers to subscribed consumers.
//
// A Service owns its routing table, callback table, tag catalog, event
// catalog and context providers. Create one with New and pass it to
// producers and bootstrap code; there is no package-level instance.
//
// All methods are safe for concurrent use. Dispatch runs consumer callbacks
// with no lock held, so callbacks may register or unregister consumers.
type Service struct {
	environment string
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager

	mu        sync.RWMutex
	routes    map[Level]map[string][]string // level -> tag -> consumer ids
	callbacks map[string]Callback

	tags        *registry.Ordered[string, struct{}]
	events      *registry.Ordered[string, map[string]string]
	appContext  *registry.Ordered[string, ContextProvider]
	userContext *registry.Ordered[string, ContextProvider]
}

// New creates a Service with empty tables.
//
// Example:
//
//	svc := eventroute.New(
//	    eventroute.WithEnvironment("production"),
//	    eventroute.WithLogger(slog.Default()),
//	)
func New(opts ...Option) *Service {
	s := &Service{
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
		routes:      make(map[Level]map[string][]string, len(allLevels)),
		callbacks:   make(map[string]Callback),
		tags:        registry.New[string, struct{}](),
		events:      registry.New[string, map[string]string](),
		appContext:  registry.New[string, ContextProvider](),
		userContext: registry.New[string, ContextProvider](),
	}
	for _, level := range allLevels {
		s.routes[level] = make(map[string][]string)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Environment returns the environment consumers are gated against.
func (s *Service) Environment() string {
	return s.environment
}
