package eventroute

import "context"

type callbackKind uint8

const (
	kindNone callbackKind = iota
	kindDirect
	kindBound
)

// Callback is what a consumer registers to receive events. It is either
// Direct (invoked with the dispatching Service as receiver) or Bound
// (invoked with an explicit receiver). The zero Callback is not callable and
// is skipped at dispatch.
type Callback struct {
	kind     callbackKind
	receiver any
	invoke   func(ctx context.Context, svc *Service, evt Event, ec EventContext) error
}

// Direct wraps fn so it is invoked with the dispatching Service.
func Direct(fn func(ctx context.Context, svc *Service, evt Event, ec EventContext) error) Callback {
	if fn == nil {
		return Callback{}
	}
	return Callback{kind: kindDirect, invoke: fn}
}

// Func wraps a handler that does not need the Service.
func Func(fn func(ctx context.Context, evt Event, ec EventContext) error) Callback {
	if fn == nil {
		return Callback{}
	}
	return Direct(func(ctx context.Context, _ *Service, evt Event, ec EventContext) error {
		return fn(ctx, evt, ec)
	})
}

// Bound wraps fn so it is invoked with receiver instead of the Service.
//
// Example:
//
//	cb := eventroute.Bound((*Tracker).Track, tracker)
func Bound[T any](fn func(recv T, ctx context.Context, evt Event, ec EventContext) error, receiver T) Callback {
	if fn == nil {
		return Callback{}
	}
	return Callback{
		kind:     kindBound,
		receiver: receiver,
		invoke: func(ctx context.Context, _ *Service, evt Event, ec EventContext) error {
			return fn(receiver, ctx, evt, ec)
		},
	}
}

// Callable reports whether the callback can be invoked.
func (c Callback) Callable() bool {
	return c.invoke != nil
}

// IsBound reports whether the callback carries an explicit receiver.
func (c Callback) IsBound() bool {
	return c.kind == kindBound
}

// Receiver returns the explicit receiver of a Bound callback, or nil.
func (c Callback) Receiver() any {
	if c.kind != kindBound {
		return nil
	}
	return c.receiver
}

func (c Callback) call(ctx context.Context, svc *Service, evt Event, ec EventContext) error {
	return c.invoke(ctx, svc, evt, ec)
}
