package setup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/eventroute/pkg/eventroute"
	"github.com/randalmurphal/eventroute/pkg/eventroute/config"
	"github.com/randalmurphal/eventroute/pkg/eventroute/errmon"
	"github.com/randalmurphal/eventroute/pkg/eventroute/setup"
)

func quiet() errmon.Option {
	return errmon.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestServiceDisabled(t *testing.T) {
	svc, ok := setup.Service(config.Settings{Environment: "test"})
	assert.False(t, ok)
	assert.Nil(t, svc)
}

func TestServiceSeedsCatalog(t *testing.T) {
	svc, ok := setup.Service(config.Settings{
		Enabled:     true,
		Environment: "test",
		Events: map[string]map[string]string{
			"user":       {"LOGGED_IN": "Logged In"},
			"navigation": {"TRANSITION": "Transition"},
		},
	})
	require.True(t, ok)

	assert.Equal(t, "test", svc.Environment())
	assert.Equal(t, "Logged In", svc.MustEventName("user", "LOGGED_IN"))
	assert.True(t, svc.HasTag("navigation"))
}

func TestServiceEnvironmentOverridesOption(t *testing.T) {
	svc, ok := setup.Service(config.Settings{Enabled: true, Environment: "production"},
		eventroute.WithEnvironment("development"))
	require.True(t, ok)
	assert.Equal(t, "production", svc.Environment())
}

func TestErrorMonitoring(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc := eventroute.New()
		mon, ok := setup.ErrorMonitoring(context.Background(), svc, config.Settings{})
		assert.False(t, ok)
		assert.Nil(t, mon)
		assert.False(t, svc.HasTag(errmon.Tag))
	})

	t.Run("nil service", func(t *testing.T) {
		mon, ok := setup.ErrorMonitoring(context.Background(), nil, config.Settings{ErrorsEnabled: true})
		assert.False(t, ok)
		assert.Nil(t, mon)
	})

	t.Run("testing mode registers events without hooks", func(t *testing.T) {
		svc := eventroute.New(eventroute.WithEnvironment("test"))
		mon, ok := setup.ErrorMonitoring(context.Background(), svc,
			config.Settings{ErrorsEnabled: true, Testing: true}, quiet())
		require.True(t, ok)

		assert.Equal(t, "Error", svc.MustEventName("error", "ERROR"))
		assert.False(t, mon.Installed())
		assert.False(t, mon.Submit(errors.New("dropped")))
	})

	t.Run("installed forwards submitted errors", func(t *testing.T) {
		svc := eventroute.New(eventroute.WithEnvironment("test"))
		received := make(chan eventroute.Event, 1)
		require.NoError(t, svc.Register("collector", eventroute.Func(func(_ context.Context, evt eventroute.Event, _ eventroute.EventContext) error {
			received <- evt
			return nil
		}), []eventroute.Level{eventroute.LevelError}, []string{errmon.Tag}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mon, ok := setup.ErrorMonitoring(ctx, svc, config.Settings{ErrorsEnabled: true}, quiet())
		require.True(t, ok)
		require.True(t, mon.Installed())
		require.True(t, mon.Submit(errors.New("async failure")))

		select {
		case evt := <-received:
			assert.Equal(t, "Error", evt.Name)
			assert.Equal(t, errmon.Report{Message: "async failure"}, evt.Metadata["error"])
		case <-time.After(time.Second):
			t.Fatal("error was not forwarded")
		}
	})

	t.Run("seeds the default display name", func(t *testing.T) {
		svc := eventroute.New()
		svc.RegisterEvents(map[string]map[string]string{"error": {"ERROR": "Uncaught Error"}})

		var name string
		require.NoError(t, svc.Register("c", eventroute.Func(func(_ context.Context, evt eventroute.Event, _ eventroute.EventContext) error {
			name = evt.Name
			return nil
		}), []eventroute.Level{eventroute.LevelError}, []string{"error"}))

		mon, ok := setup.ErrorMonitoring(context.Background(), svc,
			config.Settings{ErrorsEnabled: true, Testing: true}, quiet())
		require.True(t, ok)

		require.NoError(t, mon.Report(context.Background(), errors.New("boom")))
		assert.Equal(t, "Error", name, "monitor registration overwrites the display name")
	})
}

func TestRegisterContext(t *testing.T) {
	t.Run("application id", func(t *testing.T) {
		svc := eventroute.New()
		id := setup.RegisterContext(svc, setup.ApplicationContextID,
			func() (eventroute.Fields, error) { return eventroute.Fields{"version": "1.2.0"}, nil },
			func() (eventroute.Fields, error) { return eventroute.Fields{"user_id": 42}, nil },
		)
		assert.Equal(t, "application", id)

		app, err := svc.ApplicationContext()
		require.NoError(t, err)
		assert.Equal(t, eventroute.Fields{"version": "1.2.0"}, app)

		user, err := svc.UserContext()
		require.NoError(t, err)
		assert.Equal(t, eventroute.Fields{"user_id": 42}, user)
	})

	t.Run("generated id", func(t *testing.T) {
		svc := eventroute.New()
		id := setup.RegisterContext(svc, "", nil,
			func() (eventroute.Fields, error) { return eventroute.Fields{"x": 1}, nil })

		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.True(t, svc.HasContextProvider(id))
	})
}
