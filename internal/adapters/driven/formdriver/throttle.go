// Package formdriver holds FormDriver decorators shared by the
// browser and dry-run drivers.
package formdriver

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// Ensure Throttled implements the interface.
var _ driven.FormDriver = (*Throttled)(nil)

// Throttled limits the rate of actions sent to the remote form.
// Title polls are not throttled; login polling has its own interval.
type Throttled struct {
	driver  driven.FormDriver
	limiter *rate.Limiter
}

// Throttle wraps driver so it performs at most perSecond actions per
// second. A non-positive rate returns driver unchanged.
func Throttle(driver driven.FormDriver, perSecond int) driven.FormDriver {
	if perSecond <= 0 {
		return driver
	}
	return &Throttled{
		driver:  driver,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Navigate waits for a slot, then navigates.
func (t *Throttled) Navigate(ctx context.Context, url string) error {
	if err := t.wait(ctx, "navigate", url); err != nil {
		return err
	}
	return t.driver.Navigate(ctx, url)
}

// Click waits for a slot, then clicks.
func (t *Throttled) Click(ctx context.Context, control string) error {
	if err := t.wait(ctx, "click", control); err != nil {
		return err
	}
	return t.driver.Click(ctx, control)
}

// Clear waits for a slot, then clears.
func (t *Throttled) Clear(ctx context.Context, control string) error {
	if err := t.wait(ctx, "clear", control); err != nil {
		return err
	}
	return t.driver.Clear(ctx, control)
}

// Type waits for a slot, then types.
func (t *Throttled) Type(ctx context.Context, control, text string) error {
	if err := t.wait(ctx, "type", control); err != nil {
		return err
	}
	return t.driver.Type(ctx, control, text)
}

// ReadText waits for a slot, then reads.
func (t *Throttled) ReadText(ctx context.Context, control string) (string, error) {
	if err := t.wait(ctx, "read", control); err != nil {
		return "", err
	}
	return t.driver.ReadText(ctx, control)
}

// Title reads the title without waiting.
func (t *Throttled) Title(ctx context.Context) (string, error) {
	return t.driver.Title(ctx)
}

// Close closes the wrapped driver.
func (t *Throttled) Close() error {
	return t.driver.Close()
}

// Transcript forwards to the wrapped driver when it records calls.
func (t *Throttled) Transcript() []string {
	if rec, ok := t.driver.(interface{ Transcript() []string }); ok {
		return rec.Transcript()
	}
	return nil
}

// Unwrap returns the wrapped driver.
func (t *Throttled) Unwrap() driven.FormDriver {
	return t.driver
}

func (t *Throttled) wait(ctx context.Context, op, control string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return &domain.DriverError{Op: op, Control: control, Err: err}
	}
	return nil
}

// Ensure ThrottledFactory implements the interface.
var _ driven.FormDriverFactory = (*ThrottledFactory)(nil)

// ThrottledFactory throttles every driver its inner factory opens.
type ThrottledFactory struct {
	factory   driven.FormDriverFactory
	perSecond int
}

// ThrottleFactory wraps factory.
func ThrottleFactory(factory driven.FormDriverFactory, perSecond int) *ThrottledFactory {
	return &ThrottledFactory{factory: factory, perSecond: perSecond}
}

// Open opens a driver and throttles it.
func (f *ThrottledFactory) Open(ctx context.Context) (driven.FormDriver, error) {
	driver, err := f.factory.Open(ctx)
	if err != nil {
		return nil, err
	}
	return Throttle(driver, f.perSecond), nil
}
