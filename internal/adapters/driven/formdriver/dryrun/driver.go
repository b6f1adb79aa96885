// Package dryrun provides a FormDriver that records the calls a
// submission would make without contacting the remote system.
package dryrun

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
)

// DefaultTitle is the page title reported after navigation. It never
// contains a login marker, so login completes immediately.
const DefaultTitle = "Dry run"

// Ensure Driver implements the interface.
var _ driven.FormDriver = (*Driver)(nil)

// Driver records every call. Reads return the configured text for a
// control, or empty.
type Driver struct {
	mu         sync.Mutex
	title      string
	texts      map[string]string
	transcript []string
	closed     bool
}

// NewDriver creates a recording driver.
func NewDriver() *Driver {
	return &Driver{title: DefaultTitle, texts: make(map[string]string)}
}

// SetText sets what ReadText returns for control.
func (d *Driver) SetText(control, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.texts[control] = text
}

// Navigate records the navigation.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.record(ctx, "navigate %s", url)
}

// Click records the click.
func (d *Driver) Click(ctx context.Context, control string) error {
	return d.record(ctx, "click %s", control)
}

// Clear records the clear.
func (d *Driver) Clear(ctx context.Context, control string) error {
	return d.record(ctx, "clear %s", control)
}

// Type records the typed text.
func (d *Driver) Type(ctx context.Context, control, text string) error {
	return d.record(ctx, "type %s %q", control, text)
}

// ReadText records the read and returns the configured text.
func (d *Driver) ReadText(ctx context.Context, control string) (string, error) {
	if err := d.record(ctx, "read %s", control); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.texts[control], nil
}

// Title returns DefaultTitle.
func (d *Driver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &domain.DriverError{Op: "read title", Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", &domain.DriverError{Op: "read title", Err: errClosed}
	}
	return d.title, nil
}

// Close marks the driver closed. Later calls fail.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Transcript returns the recorded calls in order.
func (d *Driver) Transcript() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.transcript...)
}

// String renders the transcript one call per line.
func (d *Driver) String() string {
	return strings.Join(d.Transcript(), "\n")
}

var errClosed = fmt.Errorf("driver closed")

func (d *Driver) record(ctx context.Context, format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	op, control, _ := strings.Cut(line, " ")
	if err := ctx.Err(); err != nil {
		return &domain.DriverError{Op: op, Control: control, Err: err}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return &domain.DriverError{Op: op, Control: control, Err: errClosed}
	}
	d.transcript = append(d.transcript, line)
	return nil
}

// Ensure Factory implements the interface.
var _ driven.FormDriverFactory = (*Factory)(nil)

// Factory hands out recording drivers and remembers the last one.
type Factory struct {
	mu   sync.Mutex
	last *Driver
}

// NewFactory creates a dry-run factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Open returns a new recording driver.
func (f *Factory) Open(ctx context.Context) (driven.FormDriver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := NewDriver()
	f.mu.Lock()
	f.last = d
	f.mu.Unlock()
	return d, nil
}

// Last returns the most recently opened driver, or nil.
func (f *Factory) Last() *Driver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
