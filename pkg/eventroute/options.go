package eventroute

import (
	"log/slog"

	"github.com/randalmurphal/eventroute/pkg/eventroute/observability"
)

// Option configures a Service.
type Option func(*Service)

// WithEnvironment sets the environment consumers are gated against
// (e.g. "development", "test", "production").
func WithEnvironment(env string) Option {
	return func(s *Service) {
		s.environment = env
	}
}

// WithLogger sets the structured logger used for debug records.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics recording for dispatch and
// registration. Uses the global OTel meter provider.
//
// Example:
//
//	svc := eventroute.New(eventroute.WithMetrics(true))
func WithMetrics(enabled bool) Option {
	return func(s *Service) {
		if enabled {
			s.metrics = observability.NewMetricsRecorder()
		} else {
			s.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder installs a specific recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracing enables an OpenTelemetry span per non-empty dispatch.
// Uses the global OTel tracer provider.
func WithTracing(enabled bool) Option {
	return func(s *Service) {
		if enabled {
			s.spans = observability.NewSpanManager()
		} else {
			s.spans = observability.NoopSpanManager{}
		}
	}
}

// consumerConfig holds the optional parts of a consumer registration.
type consumerConfig struct {
	environments []string
	appContext   ContextProvider
	userContext  ContextProvider
}

// ConsumerOption configures a single Register call.
type ConsumerOption func(*consumerConfig)

// WithEnvironments restricts the consumer to the given environments.
// If the service environment is not listed, Register does nothing.
func WithEnvironments(envs ...string) ConsumerOption {
	return func(c *consumerConfig) {
		c.environments = append(c.environments, envs...)
	}
}

// WithApplicationContext registers an application context provider under the
// consumer's id.
func WithApplicationContext(p ContextProvider) ConsumerOption {
	return func(c *consumerConfig) {
		c.appContext = p
	}
}

// WithUserContext registers a user context provider under the consumer's id.
func WithUserContext(p ContextProvider) ConsumerOption {
	return func(c *consumerConfig) {
		c.userContext = p
	}
}
