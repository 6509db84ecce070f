// Package consumer provides ready-made event consumers.
//
// Each constructor returns an eventroute.Callback (or a type with a Callback
// method) that can be registered with Service.Register:
//
//	svc.Register("log", consumer.Slog(logger), eventroute.Levels(), tags)
//	svc.Register("audit", consumer.Zerolog(zl), []eventroute.Level{eventroute.LevelError}, tags)
//
//	prom, _ := consumer.NewPrometheus(prometheus.DefaultRegisterer)
//	svc.Register("metrics", prom.Callback(), eventroute.Levels(), tags)
//
// Consumers are expected to be defensive: the router does not recover
// panics. Wrap third-party handlers with Recover.
package consumer

import (
	"context"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
)

// HandlerFunc is the plain function shape accepted by Recover.
type HandlerFunc func(ctx context.Context, evt eventroute.Event, ec eventroute.EventContext) error
