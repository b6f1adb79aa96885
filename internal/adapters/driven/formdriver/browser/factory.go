package browser

import (
	"context"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.FormDriverFactory = (*Factory)(nil)

// Factory opens a fresh browser per submission.
type Factory struct {
	opts Options
}

// NewFactory creates a factory with the given options.
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// FactoryFromSettings derives browser options from the remote settings.
func FactoryFromSettings(remote domain.RemoteSettings) *Factory {
	return NewFactory(Options{
		Headless: remote.Headless,
		Timeout:  time.Duration(remote.TimeoutSeconds) * time.Second,
	})
}

// Options returns the options browsers are opened with.
func (f *Factory) Options() Options {
	return f.opts
}

// Open starts a browser.
func (f *Factory) Open(ctx context.Context) (driven.FormDriver, error) {
	return Open(ctx, f.opts)
}
