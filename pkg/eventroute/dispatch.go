package eventroute

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventroute/pkg/eventroute/observability"
)

// target is a resolved consumer for one dispatch.
type target struct {
	id       string
	callback Callback
}

// Info sends an informational event under tag.
func (s *Service) Info(ctx context.Context, tag, name string, metadata Fields) error {
	return s.Send(ctx, LevelInfo, tag, name, metadata)
}

// Warning sends a warning event under tag.
func (s *Service) Warning(ctx context.Context, tag, name string, metadata Fields) error {
	return s.Send(ctx, LevelWarning, tag, name, metadata)
}

// Error sends an error event under tag.
func (s *Service) Error(ctx context.Context, tag, name string, metadata Fields) error {
	return s.Send(ctx, LevelError, tag, name, metadata)
}

// Send dispatches an event to every consumer routed for (level, tag).
//
// Unknown levels, unknown tags and empty cells are not errors: Send returns
// nil without invoking any context provider. Otherwise the application and
// user context are computed once and every callable consumer callback is
// invoked in registration order, synchronously, on the caller's goroutine.
// Consumers without a callable callback are skipped but still count as
// routed, so the context providers run.
//
// A failing context provider or callback stops the dispatch; its error is
// returned as a *ProviderError or *DispatchError. Panics are not recovered.
func (s *Service) Send(ctx context.Context, level Level, tag, name string, metadata Fields) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	targets, providers, routed := s.resolve(level, tag)
	if !routed {
		return nil
	}

	start := time.Now()
	ctx, span := s.spans.StartDispatchSpan(ctx, string(level), tag, name, len(targets))
	delivered := 0
	defer func() {
		s.spans.EndSpanWithError(span, err)
		s.metrics.RecordDispatch(ctx, string(level), tag, delivered, time.Since(start), err)
		observability.LogDispatch(s.logger, string(level), tag, name, delivered, err)
	}()

	evt := Event{
		Name:     name,
		Type:     tag,
		Level:    level,
		Metadata: metadata.Clone(),
	}

	ec, err := providers.build()
	if err != nil {
		return err
	}

	for _, t := range targets {
		s.spans.AddSpanEvent(ctx, "eventroute.deliver", attribute.String("consumer.id", t.id))
		if cerr := t.callback.call(ctx, s, evt.clone(), ec.clone()); cerr != nil {
			return &DispatchError{
				ConsumerID: t.id,
				Level:      level,
				Tag:        tag,
				Name:       name,
				Err:        cerr,
			}
		}
		delivered++
	}
	return nil
}

// resolve snapshots the callable consumers for (level, tag) and the context
// providers under the read lock. routed is false when the cell is unknown or
// empty. Ids without a callable callback are left out of targets.
func (s *Service) resolve(level Level, tag string) (targets []target, providers contextSnapshot, routed bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells, ok := s.routes[level]
	if !ok {
		return nil, contextSnapshot{}, false
	}
	ids := cells[tag]
	if len(ids) == 0 {
		return nil, contextSnapshot{}, false
	}

	targets = make([]target, 0, len(ids))
	for _, id := range ids {
		cb, ok := s.callbacks[id]
		if !ok || !cb.Callable() {
			continue
		}
		targets = append(targets, target{id: id, callback: cb})
	}
	return targets, s.snapshotProviders(), true
}
