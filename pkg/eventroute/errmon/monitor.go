package errmon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
	"github.com/randalmurphal/eventroute/pkg/eventroute/observability"
)

const (
	// Tag is the tag reported errors are sent under.
	Tag = "error"

	// EventKey is the machine name of the reported-error event.
	EventKey = "ERROR"

	// EventName is the default display name of the reported-error event.
	EventName = "Error"

	// Production is the environment in which errors are not surfaced loudly.
	Production = "production"

	inboxSize = 64
)

// Events returns the catalog entry the monitor reports under.
func Events() map[string]map[string]string {
	return map[string]map[string]string{Tag: {EventKey: EventName}}
}

// Sink receives reported errors. *eventroute.Service implements it.
type Sink interface {
	Error(ctx context.Context, tag, name string, metadata eventroute.Fields) error
	Environment() string
}

// Stats is a point-in-time snapshot of monitor counters.
type Stats struct {
	Reported int64
	Ignored  int64
	Failed   int64
	Dropped  int64
}

// Monitor forwards uncaught errors to the event router.
//
// Explicit entry points (Report, Recover, Go) always forward. The
// asynchronous channel (Submit) only accepts errors once Install has run.
type Monitor struct {
	sink        Sink
	logger      *slog.Logger
	environment string
	eventName   string
	newID       func() string

	reported  atomic.Int64
	ignored   atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
	installed atomic.Bool

	inbox   chan error
	workers sync.WaitGroup

	mu      sync.Mutex
	stop    context.CancelFunc
	watcher sync.WaitGroup
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used to surface errors outside production.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithEnvironment overrides the environment taken from the sink.
func WithEnvironment(env string) Option {
	return func(m *Monitor) {
		m.environment = env
	}
}

// WithEventName sets the display name errors are reported under.
func WithEventName(name string) Option {
	return func(m *Monitor) {
		if name != "" {
			m.eventName = name
		}
	}
}

// WithIDFunc replaces the error id generator.
func WithIDFunc(fn func() string) Option {
	return func(m *Monitor) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// New creates a Monitor that forwards to sink.
func New(sink Sink, opts ...Option) *Monitor {
	m := &Monitor{
		sink:        sink,
		logger:      slog.Default(),
		environment: sink.Environment(),
		eventName:   EventName,
		newID:       uuid.NewString,
		inbox:       make(chan error, inboxSize),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Report forwards err unless it is ignorable. Outside production the error
// is also logged at error level. The returned error is the sink's, if any.
func (m *Monitor) Report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if Classify(err).Ignored() {
		m.ignored.Inc()
		return nil
	}

	report := Normalize(err)
	id := m.newID()
	m.reported.Inc()

	if m.environment != Production {
		observability.LogReportedError(m.logger, report.Message, report.Status, id)
	}

	ferr := m.sink.Error(ctx, Tag, m.eventName, eventroute.Fields{
		"error":    report,
		"error_id": id,
	})
	if ferr != nil {
		m.failed.Inc()
	}
	return ferr
}

// Recover reports a panic in progress. It must be deferred directly:
//
//	defer monitor.Recover(ctx)
//
// Outside production the panic is re-raised after reporting.
func (m *Monitor) Recover(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	_ = m.Report(ctx, panicError(r))
	if m.environment != Production {
		panic(r)
	}
}

// Go runs fn in a goroutine and reports its error or panic.
// Panics are never re-raised here since they would crash the process.
func (m *Monitor) Go(ctx context.Context, fn func(context.Context) error) {
	m.workers.Add(1)
	go func() {
		defer m.workers.Done()
		defer func() {
			if r := recover(); r != nil {
				_ = m.Report(ctx, panicError(r))
			}
		}()
		if err := fn(ctx); err != nil {
			_ = m.Report(ctx, err)
		}
	}()
}

// Wait blocks until every goroutine started with Go has returned.
// It does not wait for the Install watcher; use Close for that.
func (m *Monitor) Wait() {
	m.workers.Wait()
}

// Watch reports every error received on errs until ctx is done or errs is
// closed. It returns ctx.Err() on cancellation and nil on close.
func (m *Monitor) Watch(ctx context.Context, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			_ = m.Report(ctx, err)
		}
	}
}

// Install starts draining the Submit channel until ctx is done or Close is
// called. Errors still queued when the watcher stops are reported before it
// exits. It returns false if the monitor is already installed.
func (m *Monitor) Install(ctx context.Context) bool {
	if !m.installed.CompareAndSwap(false, true) {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.stop = cancel
	m.mu.Unlock()

	m.watcher.Add(1)
	go func() {
		defer m.watcher.Done()
		defer cancel()
		_ = m.Watch(ctx, m.inbox)
		m.installed.Store(false)
		m.flush(context.WithoutCancel(ctx))
	}()
	return true
}

// Close stops the Install watcher and waits for it to flush. It is a no-op
// when the monitor was never installed.
func (m *Monitor) Close() {
	m.mu.Lock()
	stop := m.stop
	m.stop = nil
	m.mu.Unlock()

	if stop != nil {
		stop()
	}
	m.watcher.Wait()
}

// flush reports whatever is left in the inbox without blocking.
func (m *Monitor) flush(ctx context.Context) {
	for {
		select {
		case err := <-m.inbox:
			_ = m.Report(ctx, err)
		default:
			return
		}
	}
}

// Installed reports whether Install is active.
func (m *Monitor) Installed() bool {
	return m.installed.Load()
}

// Submit queues err for asynchronous reporting. It never blocks; the error
// is dropped when the monitor is not installed or the queue is full.
func (m *Monitor) Submit(err error) bool {
	if err == nil {
		return false
	}
	if !m.installed.Load() {
		m.dropped.Inc()
		return false
	}
	select {
	case m.inbox <- err:
		return true
	default:
		m.dropped.Inc()
		return false
	}
}

// Stats returns the current counters.
func (m *Monitor) Stats() Stats {
	return Stats{
		Reported: m.reported.Load(),
		Ignored:  m.ignored.Load(),
		Failed:   m.failed.Load(),
		Dropped:  m.dropped.Load(),
	}
}
