/*
Package eventroute provides an in-process event router that forwards
application events and errors to pluggable consumers.

# Overview

Producers emit events under a (level, tag) coordinate. Consumers subscribe to
a cross product of levels and tags, optionally restricted to a set of
environments. Each event is delivered synchronously to exactly the consumers
routed for its coordinate, together with application and user context
computed from registered providers.

Nothing is persisted and nothing leaves the process: consumers decide where
events go (analytics, crash reporting, logs, metrics).

# Basic Usage

	svc := eventroute.New(eventroute.WithEnvironment("production"))

	svc.RegisterEvents(map[string]map[string]string{
	    "interaction": {"RULE_UPDATED": "Rule Updated"},
	})

	err := svc.Register("analytics",
	    eventroute.Func(func(ctx context.Context, evt eventroute.Event, ec eventroute.EventContext) error {
	        return client.Track(ctx, evt.Name, evt.Metadata, ec.User)
	    }),
	    []eventroute.Level{eventroute.LevelInfo},
	    []string{"interaction"},
	    eventroute.WithEnvironments("production"),
	)

	name := svc.MustEventName("interaction", "RULE_UPDATED")
	err = svc.Info(ctx, "interaction", name, eventroute.Fields{"rule_id": id})

# Levels and Tags

Levels are a closed set: LevelInfo, LevelWarning and LevelError. Tags are
free-form strings created the first time they appear in RegisterTags,
RegisterEvents or Register. Every known tag exists under every level, so the
routing table is always rectangular.

Sending to an unknown level or tag is not an error. Producers may emit events
nobody listens to; Send returns nil without computing context.

# Callbacks

A Callback is a tagged variant:

  - Direct(fn): fn receives the dispatching *Service
  - Bound(fn, receiver): fn receives the given receiver
  - Func(fn): convenience Direct callback that ignores the Service

The zero Callback is not callable and is skipped at dispatch.

# Context Providers

Application and user context providers are zero-argument functions
returning Fields. They are invoked once per dispatch in registration order and
shallow-merged; later providers win on conflicting keys. Providers may be
registered on their own (RegisterApplicationContext) or together with a
consumer (WithApplicationContext), in which case Unregister removes them.

# Errors

The router does not swallow consumer failures. The first callback or provider
error aborts the dispatch and is returned to the producer as a
*DispatchError or *ProviderError. Consumers that must never fail should
recover internally (see the consumer package's Recover wrapper).

Registering the same consumer id twice for overlapping (level, tag) pairs
appends it twice, and it will be invoked twice per matching event.

# Thread Safety

A Service is safe for concurrent use. Dispatch resolves its consumers under a
read lock and invokes them with no lock held, so a callback may call Register
or Unregister; such changes apply to later dispatches only.

# Observability

Use WithLogger for slog debug records, WithMetrics for OpenTelemetry
counters and latency histograms, and WithTracing for one span per dispatch.
*/
package eventroute
