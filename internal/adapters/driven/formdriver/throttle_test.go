package formdriver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/adapters/driven/formdriver/dryrun"
	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

func TestThrottle_NonPositiveRateIsPassthrough(t *testing.T) {
	d := dryrun.NewDriver()

	assert.Same(t, d, Throttle(d, 0))
	assert.Same(t, d, Throttle(d, -1))
}

func TestThrottle_ForwardsCalls(t *testing.T) {
	ctx := context.Background()
	d := dryrun.NewDriver()
	d.SetText("messages", "ok")
	throttled := Throttle(d, 1000)

	require.NoError(t, throttled.Navigate(ctx, "https://example.test"))
	require.NoError(t, throttled.Clear(ctx, "hours"))
	require.NoError(t, throttled.Type(ctx, "hours", "2"))
	require.NoError(t, throttled.Click(ctx, "save"))
	text, err := throttled.ReadText(ctx, "messages")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)

	rec, ok := throttled.(interface{ Transcript() []string })
	require.True(t, ok)
	assert.Equal(t, d.Transcript(), rec.Transcript())
	assert.Len(t, rec.Transcript(), 5)
	require.NoError(t, throttled.Close())
}

func TestThrottle_LimitsRate(t *testing.T) {
	ctx := context.Background()
	throttled := Throttle(dryrun.NewDriver(), 20)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, throttled.Click(ctx, "new"))
	}

	// Burst of one, then 50ms per action.
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestThrottle_WaitHonoursContext(t *testing.T) {
	throttled := Throttle(dryrun.NewDriver(), 1)
	require.NoError(t, throttled.Click(context.Background(), "new"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := throttled.Click(ctx, "new")

	assert.True(t, errors.Is(err, domain.ErrDriver))
}

func TestThrottleFactory(t *testing.T) {
	inner := dryrun.NewFactory()
	factory := ThrottleFactory(inner, 10)

	driver, err := factory.Open(context.Background())
	require.NoError(t, err)

	throttled, ok := driver.(*Throttled)
	require.True(t, ok)
	assert.Same(t, inner.Last(), throttled.Unwrap())
}
