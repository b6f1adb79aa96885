// Package browser drives the remote time-card application through a
// Chrome instance controlled over the DevTools protocol.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// DefaultTimeout is the implicit wait applied to every call.
const DefaultTimeout = 20 * time.Second

// Options configures the browser.
type Options struct {
	// Headless hides the browser window.
	Headless bool

	// Timeout bounds each call, including the wait for its control.
	Timeout time.Duration

	// ExecPath overrides the Chrome binary. Empty means auto-detect.
	ExecPath string
}

// Ensure Driver implements the interface.
var _ driven.FormDriver = (*Driver)(nil)

// Driver is a driven.FormDriver backed by chromedp. Controls are
// located by element id.
type Driver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// Open starts a browser and returns a driver for its first tab.
func Open(ctx context.Context, opts Options) (*Driver, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.Flag("headless", opts.Headless))
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	// The browser outlives the caller's context; Close releases it.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug("chrome: "+format, args...)
		}),
	)

	// The first Run launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, &domain.DriverError{Op: "start browser", Err: err}
	}

	return &Driver{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     opts.Timeout,
	}, nil
}

// Navigate loads url.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, "navigate", url, chromedp.Navigate(url))
}

// Click clicks the control once it is visible.
func (d *Driver) Click(ctx context.Context, control string) error {
	sel := byID(control)
	return d.run(ctx, "click", control,
		chromedp.WaitVisible(sel, chromedp.ByJSPath),
		chromedp.Click(sel, chromedp.ByJSPath),
	)
}

// Clear empties an input control.
func (d *Driver) Clear(ctx context.Context, control string) error {
	sel := byID(control)
	return d.run(ctx, "clear", control,
		chromedp.WaitReady(sel, chromedp.ByJSPath),
		chromedp.Clear(sel, chromedp.ByJSPath),
	)
}

// Type sends text to an input control.
func (d *Driver) Type(ctx context.Context, control, text string) error {
	sel := byID(control)
	return d.run(ctx, "type", control,
		chromedp.WaitReady(sel, chromedp.ByJSPath),
		chromedp.SendKeys(sel, text, chromedp.ByJSPath),
	)
}

// ReadText returns the visible text of a control.
func (d *Driver) ReadText(ctx context.Context, control string) (string, error) {
	var text string
	sel := byID(control)
	err := d.run(ctx, "read", control,
		chromedp.WaitReady(sel, chromedp.ByJSPath),
		chromedp.Text(sel, &text, chromedp.ByJSPath),
	)
	return text, err
}

// Title returns the title of the current page.
func (d *Driver) Title(ctx context.Context) (string, error) {
	var title string
	err := d.run(ctx, "read title", "", chromedp.Title(&title))
	return title, err
}

// Close shuts the browser down.
func (d *Driver) Close() error {
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.allocCancel()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

func (d *Driver) run(ctx context.Context, op, control string, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &domain.DriverError{Op: op, Control: control, Err: err}
	}
	return nil
}

// byID builds a JS path selecting the element with the given id. Remote
// ids contain colons, which CSS id selectors cannot express unescaped.
func byID(id string) string {
	return fmt.Sprintf("document.getElementById(%s)", jsString(id))
}

func jsString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
