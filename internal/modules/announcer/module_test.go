package announcer

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/joinform/internal/metrics"
	"github.com/nfrund/joinform/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncer_CountsAccountEvents(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()
	m := metrics.New(prometheus.NewRegistry())

	i := do.New()
	do.ProvideValue(i, bus)
	do.ProvideValue(i, m)

	mod := New()
	assert.Equal(t, "announcer", mod.Name())

	ctx := context.Background()
	require.NoError(t, mod.Boot(ctx, echo.New().Group(""), i))
	defer mod.Shutdown(ctx)

	require.NoError(t, pubsub.Publish(ctx, bus, pubsub.Registered, "jsmith",
		pubsub.AccountRegistered{Username: "jsmith", At: time.Now()}))
	require.NoError(t, pubsub.Publish(ctx, bus, pubsub.RolledBack, "jsmith",
		pubsub.AccountRolledBack{Username: "jsmith", Reason: "password mail not delivered", At: time.Now()}))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.AccountEvents.WithLabelValues("account.registered")) == 1 &&
			testutil.ToFloat64(m.AccountEvents.WithLabelValues("account.rolled_back")) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAnnouncer_UndecodablePayloadIsNotCounted(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()
	m := metrics.New(prometheus.NewRegistry())

	i := do.New()
	do.ProvideValue(i, bus)
	do.ProvideValue(i, m)

	mod := New()
	ctx := context.Background()
	require.NoError(t, mod.Boot(ctx, echo.New().Group(""), i))
	defer mod.Shutdown(ctx)

	require.NoError(t, bus.Publish(ctx, pubsub.Message{Topic: pubsub.Registered.Name(), Payload: []byte("{")}))
	require.NoError(t, pubsub.Publish(ctx, bus, pubsub.Registered, "ok", pubsub.AccountRegistered{Username: "ok"}))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(m.AccountEvents.WithLabelValues("account.registered")) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
