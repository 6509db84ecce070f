// Package setup wires an event router from configuration at startup.
package setup

import (
	"context"

	"github.com/google/uuid"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
	"github.com/randalmurphal/eventroute/pkg/eventroute/config"
	"github.com/randalmurphal/eventroute/pkg/eventroute/errmon"
)

// ApplicationContextID is the provider id used for application-wide context.
const ApplicationContextID = "application"

// Service builds a Service for the configured environment and seeds its
// event catalog. It returns nil, false when the settings are disabled.
func Service(settings config.Settings, opts ...eventroute.Option) (*eventroute.Service, bool) {
	if !settings.Enabled {
		return nil, false
	}

	opts = append(opts, eventroute.WithEnvironment(settings.Environment))
	svc := eventroute.New(opts...)
	if len(settings.Events) > 0 {
		svc.RegisterEvents(settings.Events)
	}
	return svc, true
}

// ErrorMonitoring registers the error event and returns a Monitor bound to
// svc. In testing mode the monitor is returned uninstalled, so Submit drops
// errors. It returns nil, false when svc is nil or errors are disabled.
func ErrorMonitoring(ctx context.Context, svc *eventroute.Service, settings config.Settings, opts ...errmon.Option) (*errmon.Monitor, bool) {
	if svc == nil || !settings.ErrorsEnabled {
		return nil, false
	}

	svc.RegisterEvents(errmon.Events())
	name := svc.MustEventName(errmon.Tag, errmon.EventKey)

	opts = append([]errmon.Option{errmon.WithEventName(name)}, opts...)
	mon := errmon.New(svc, opts...)
	if !settings.Testing {
		mon.Install(ctx)
	}
	return mon, true
}

// RegisterContext registers an application and user context provider pair
// under id. An empty id gets a generated one. Either provider may be nil.
// The id is returned for later unregistration.
func RegisterContext(svc *eventroute.Service, id string, app, user eventroute.ContextProvider) string {
	if id == "" {
		id = uuid.NewString()
	}
	svc.RegisterApplicationContext(id, app)
	svc.RegisterUserContext(id, user)
	return id
}
