package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// defaultPollInterval is the pause between login page checks.
const defaultPollInterval = time.Second

// OrchestratorConfig configures a SubmissionOrchestrator.
type OrchestratorConfig struct {
	Remote   domain.RemoteSettings
	Controls domain.FormControls

	// PollInterval is the pause between login page checks.
	// Zero means one second.
	PollInterval time.Duration
}

// SubmissionOrchestrator replays a time card into the remote form.
type SubmissionOrchestrator struct {
	remote       domain.RemoteSettings
	controls     domain.FormControls
	credentials  driving.CredentialsService
	pollInterval time.Duration
}

// NewSubmissionOrchestrator creates an orchestrator.
// Credentials may be nil, in which case the password is left empty.
func NewSubmissionOrchestrator(cfg OrchestratorConfig, credentials driving.CredentialsService) *SubmissionOrchestrator {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &SubmissionOrchestrator{
		remote:       cfg.Remote,
		controls:     cfg.Controls,
		credentials:  credentials,
		pollInterval: poll,
	}
}

// Submission prepares the submission of card through driver. Nothing
// happens until the events are consumed.
func (o *SubmissionOrchestrator) Submission(driver driven.FormDriver, card domain.TimeCard) *Submission {
	return &Submission{
		o:      o,
		driver: driver,
		date:   card.Date,
		lines:  SubmissionOrder(card.Lines()),
		state:  domain.SessionLoggedOut,
	}
}

// SubmissionOrder returns lines sorted by workorder, descending. Lines
// with equal workorders keep their card order.
func SubmissionOrder(lines []domain.SubmissionLine) []domain.SubmissionLine {
	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b domain.SubmissionLine) int {
		return cmp.Compare(b.Workorder, a.Workorder)
	})
	return sorted
}

// Submission is a single run of the submission protocol.
type Submission struct {
	o      *SubmissionOrchestrator
	driver driven.FormDriver
	date   time.Time
	lines  []domain.SubmissionLine

	started atomic.Bool

	mu    sync.RWMutex
	state domain.SessionState
}

// Lines returns the lines in submission order.
func (s *Submission) Lines() []domain.SubmissionLine {
	return slices.Clone(s.lines)
}

// State returns the session state.
func (s *Submission) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Submission) setState(state domain.SessionState) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.mu.Unlock()
	logger.Info("Session %s -> %s", prev, state)
}

// Events runs the protocol as the sequence is consumed. It yields one
// progress event per line followed by exactly one terminal event.
// Authentication and driver failures end the sequence with an aborted
// event; rejected lines are collected and reported at the end.
//
// The sequence can be ranged over once; later ranges yield nothing.
func (s *Submission) Events(ctx context.Context) iter.Seq[domain.SubmissionEvent] {
	return func(yield func(domain.SubmissionEvent) bool) {
		if !s.started.CompareAndSwap(false, true) {
			return
		}
		total := len(s.lines)

		logger.Section("Submit " + s.date.Format(domain.DateLayout))
		if err := s.login(ctx); err != nil {
			yield(domain.AbortedEvent(total, err))
			return
		}
		if err := s.openCard(ctx); err != nil {
			yield(domain.AbortedEvent(total, err))
			return
		}

		var failed []string
		for i, line := range s.lines {
			if !yield(domain.ProgressEvent(i+1, total)) {
				return
			}
			msg, err := s.enterLine(ctx, line, i == total-1)
			if err != nil {
				yield(domain.AbortedEvent(total, err))
				return
			}
			if msg != "" {
				logger.Warn("Entry %d (%s) rejected: %s", i+1, line.Workorder, msg)
				failed = append(failed, line.Workorder)
			}
		}

		if err := s.finish(ctx); err != nil {
			yield(domain.AbortedEvent(total, err))
			return
		}
		if len(failed) > 0 {
			yield(domain.RejectedEvent(total, failed))
			return
		}
		yield(domain.SucceededEvent(total))
	}
}

// login signs in and waits until the login page is gone.
func (s *Submission) login(ctx context.Context) error {
	remote := s.o.remote
	c := s.o.controls
	s.setState(domain.SessionAuthenticating)

	var password string
	if s.o.credentials != nil {
		secret, err := s.o.credentials.Secret(ctx, remote.Account)
		if err != nil {
			s.setState(domain.SessionLoggedOut)
			return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}
		password = secret
	}

	err := s.run(
		func() error { return s.navigate(ctx, remote.HomeURL()) },
		func() error { return s.typeText(ctx, c.LoginUser, remote.Account) },
		func() error { return s.typeText(ctx, c.LoginPassword, password) },
		func() error { return s.click(ctx, c.LoginSubmit) },
	)
	if err != nil {
		s.setState(domain.SessionLoggedOut)
		return err
	}

	if err := s.awaitLogin(ctx); err != nil {
		s.setState(domain.SessionLoggedOut)
		return err
	}
	s.setState(domain.SessionReady)
	return nil
}

func (s *Submission) awaitLogin(ctx context.Context) error {
	marker := s.o.remote.LoginMarker
	if marker == "" {
		return nil
	}
	timeout := time.Duration(s.o.remote.LoginTimeoutSeconds) * time.Second
	deadline := time.Now().Add(timeout)

	for {
		title, err := s.driver.Title(ctx)
		if err != nil {
			return driverStep("title", "", err)
		}
		if !strings.Contains(title, marker) {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w: still on the login page after %s", domain.ErrAuthFailed, timeout)
		}
		logger.Debug("Waiting for login, page title %q", title)
		if err := sleep(ctx, s.o.pollInterval); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
		}
	}
}

// openCard creates a new time card for the person and date.
func (s *Submission) openCard(ctx context.Context) error {
	remote := s.o.remote
	c := s.o.controls
	s.setState(domain.SessionSubmitting)

	return s.run(
		func() error { return s.navigate(ctx, remote.TimeCardURL()) },
		func() error { return s.click(ctx, c.New) },
		func() error { return s.typeText(ctx, c.Person, remote.EmployeeID) },
		func() error { return s.typeText(ctx, c.WorkDate, s.date.Format(remote.DateFormat)) },
		func() error { return s.click(ctx, c.AddFirstLine) },
	)
}

// enterLine fills the detail form for one line. Unless the line is the
// last, it commits the line and returns the remote error text, if any.
func (s *Submission) enterLine(ctx context.Context, line domain.SubmissionLine, last bool) (string, error) {
	c := s.o.controls

	for _, field := range c.DetailFields() {
		if err := s.clear(ctx, field); err != nil {
			return "", err
		}
	}

	var steps []func() error
	if line.IsLeave() {
		steps = append(steps,
			func() error { return s.typeText(ctx, c.LeaveCode, line.TimeCode.String()) },
		)
	} else {
		steps = append(steps,
			func() error { return s.typeText(ctx, c.LaborCode, line.TimeCode.String()) },
			func() error { return s.typeText(ctx, c.Workorder, line.Workorder) },
			func() error { return s.typeText(ctx, c.Phase, line.Phase) },
			func() error { return s.typeText(ctx, c.Action, line.Action.String()) },
		)
	}
	steps = append(steps,
		func() error { return s.typeText(ctx, c.Hours, line.HoursText()) },
		func() error { return s.typeText(ctx, c.Description, line.Description) },
	)
	if err := s.run(steps...); err != nil {
		return "", err
	}

	if last {
		return "", nil
	}

	if err := s.click(ctx, c.AddNextLine); err != nil {
		return "", err
	}
	settle := time.Duration(s.o.remote.SettleMillis) * time.Millisecond
	if err := sleep(ctx, settle); err != nil {
		return "", driverStep("settle", "", err)
	}
	text, err := s.driver.ReadText(ctx, c.ErrorText)
	if err != nil {
		return "", driverStep("read", c.ErrorText, err)
	}
	return strings.TrimSpace(text), nil
}

// finish completes and saves the time card.
func (s *Submission) finish(ctx context.Context) error {
	c := s.o.controls
	err := s.run(
		func() error { return s.click(ctx, c.Done) },
		func() error { return s.click(ctx, c.Save) },
	)
	if err != nil {
		return err
	}
	s.setState(domain.SessionFinished)
	return nil
}

func (s *Submission) run(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Submission) navigate(ctx context.Context, url string) error {
	logger.Debug("navigate %s", url)
	return driverStep("navigate", url, s.driver.Navigate(ctx, url))
}

func (s *Submission) click(ctx context.Context, control string) error {
	logger.Debug("click %s", control)
	return driverStep("click", control, s.driver.Click(ctx, control))
}

func (s *Submission) clear(ctx context.Context, control string) error {
	return driverStep("clear", control, s.driver.Clear(ctx, control))
}

func (s *Submission) typeText(ctx context.Context, control, text string) error {
	logger.Debug("type %s", control)
	return driverStep("type", control, s.driver.Type(ctx, control, text))
}

// driverStep classifies err as a driver failure.
func driverStep(op, control string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrDriver) {
		return err
	}
	return &domain.DriverError{Op: op, Control: control, Err: err}
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
