package driven

import "context"

// FormDriver performs UI-level actions against the remote time-card
// application. Controls are addressed by opaque identifiers supplied by
// configuration.
//
// Every call blocks until the target control is available or the
// implicit wait expires. Each call is performed at most once; failures are
// returned wrapped in domain.ErrDriver.
type FormDriver interface {
	// Navigate loads url.
	Navigate(ctx context.Context, url string) error

	// Click clicks the control.
	Click(ctx context.Context, control string) error

	// Clear empties an input control.
	Clear(ctx context.Context, control string) error

	// Type enters text into an input control.
	Type(ctx context.Context, control, text string) error

	// ReadText returns the visible text of a control.
	ReadText(ctx context.Context, control string) (string, error)

	// Title returns the title of the current page.
	Title(ctx context.Context) (string, error)

	// Close ends the session and releases the browser.
	Close() error
}

// FormDriverFactory opens remote sessions. Callers must Close every
// driver they open.
type FormDriverFactory interface {
	Open(ctx context.Context) (FormDriver, error)
}
