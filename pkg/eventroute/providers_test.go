package eventroute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextMergeOrder(t *testing.T) {
	svc := New()
	rec := &recorder{}

	svc.RegisterApplicationContext("p1", staticProvider(Fields{"a": 1}))
	svc.RegisterApplicationContext("p2", staticProvider(Fields{"a": 2, "b": 3}))
	require.NoError(t, svc.Register("c", rec.callback("c"), []Level{LevelInfo}, []string{"user"}))

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Info(context.Background(), "user", "Logged In", nil))
	}

	require.Len(t, rec.calls, 3)
	for _, c := range rec.calls {
		assert.Equal(t, Fields{"a": 2, "b": 3}, c.context.Application)
		assert.Equal(t, Fields{}, c.context.User)
	}
}

func TestReplacingProviderKeepsPosition(t *testing.T) {
	svc := New()

	svc.RegisterApplicationContext("p1", staticProvider(Fields{"a": 1}))
	svc.RegisterApplicationContext("p2", staticProvider(Fields{"a": 2}))
	svc.RegisterApplicationContext("p1", staticProvider(Fields{"a": 10}))

	app, err := svc.ApplicationContext()
	require.NoError(t, err)
	assert.Equal(t, Fields{"a": 2}, app)
}

func TestProvidersRunOncePerDispatch(t *testing.T) {
	svc := New()
	calls := 0
	svc.RegisterUserContext("u", func() (Fields, error) {
		calls++
		return Fields{"id": calls}, nil
	})

	rec := &recorder{}
	require.NoError(t, svc.Register("a", rec.callback("a"), []Level{LevelInfo}, []string{"user"}))
	require.NoError(t, svc.Register("b", rec.callback("b"), []Level{LevelInfo}, []string{"user"}))
	require.NoError(t, svc.Info(context.Background(), "user", "Logged In", nil))

	assert.Equal(t, 1, calls)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, rec.calls[0].context.User, rec.calls[1].context.User)
}

func TestNilProviderIgnored(t *testing.T) {
	svc := New()
	svc.RegisterApplicationContext("x", nil)
	svc.RegisterUserContext("x", nil)

	assert.False(t, svc.HasContextProvider("x"))
}

func TestUnregisterProviders(t *testing.T) {
	svc := New()
	svc.RegisterApplicationContext("x", staticProvider(Fields{"a": 1}))
	svc.RegisterUserContext("y", staticProvider(Fields{"b": 2}))

	svc.UnregisterApplicationContext("x")
	svc.UnregisterUserContext("y")

	app, err := svc.ApplicationContext()
	require.NoError(t, err)
	assert.Empty(t, app)
	user, err := svc.UserContext()
	require.NoError(t, err)
	assert.Empty(t, user)
}

func TestProviderErrorStopsAggregation(t *testing.T) {
	svc := New()
	broken := errors.New("broken")
	later := 0

	svc.RegisterApplicationContext("bad", func() (Fields, error) { return nil, broken })
	svc.RegisterApplicationContext("later", func() (Fields, error) {
		later++
		return Fields{}, nil
	})

	_, err := svc.ApplicationContext()
	require.ErrorIs(t, err, broken)
	assert.Equal(t, "application context provider bad: broken", err.Error())
	assert.Zero(t, later)
}
