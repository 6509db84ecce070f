package consumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
)

// ErrConsumerPanic is wrapped by errors returned from a recovered handler.
var ErrConsumerPanic = errors.New("consumer panicked")

// Recover wraps fn so that a panic is returned as an error wrapping
// ErrConsumerPanic instead of unwinding through the dispatcher.
func Recover(fn HandlerFunc) eventroute.Callback {
	if fn == nil {
		return eventroute.Callback{}
	}
	return eventroute.Func(func(ctx context.Context, evt eventroute.Event, ec eventroute.EventContext) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrConsumerPanic, r)
			}
		}()
		return fn(ctx, evt, ec)
	})
}
