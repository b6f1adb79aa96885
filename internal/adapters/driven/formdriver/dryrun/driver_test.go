package dryrun

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
)

func TestDriver_RecordsCalls(t *testing.T) {
	ctx := context.Background()
	d := NewDriver()
	d.SetText("messages", "bad workorder")

	require.NoError(t, d.Navigate(ctx, "https://example.test/home"))
	require.NoError(t, d.Clear(ctx, "hours"))
	require.NoError(t, d.Type(ctx, "hours", "0.5"))
	require.NoError(t, d.Click(ctx, "save"))
	text, err := d.ReadText(ctx, "messages")
	require.NoError(t, err)
	title, err := d.Title(ctx)
	require.NoError(t, err)

	assert.Equal(t, "bad workorder", text)
	assert.Equal(t, DefaultTitle, title)
	assert.Equal(t, []string{
		"navigate https://example.test/home",
		"clear hours",
		`type hours "0.5"`,
		"click save",
		"read messages",
	}, d.Transcript())
}

func TestDriver_ClosedFails(t *testing.T) {
	d := NewDriver()
	require.NoError(t, d.Close())

	err := d.Click(context.Background(), "save")

	assert.True(t, errors.Is(err, domain.ErrDriver))
	_, err = d.Title(context.Background())
	assert.True(t, errors.Is(err, domain.ErrDriver))
	assert.Empty(t, d.Transcript())
}

func TestDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDriver()

	err := d.Type(ctx, "hours", "1")

	assert.True(t, errors.Is(err, domain.ErrDriver))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDriver_TranscriptIsCopy(t *testing.T) {
	d := NewDriver()
	require.NoError(t, d.Click(context.Background(), "new"))

	got := d.Transcript()
	got[0] = "mutated"

	assert.Equal(t, "click new", d.Transcript()[0])
	assert.Equal(t, "click new", d.String())
}

func TestFactory_Last(t *testing.T) {
	f := NewFactory()
	assert.Nil(t, f.Last())

	driver, err := f.Open(context.Background())
	require.NoError(t, err)

	assert.Same(t, driver, f.Last())
}
