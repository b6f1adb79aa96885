package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/timecard-cli/internal/core/domain"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/timecard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/timecard-cli/internal/logger"
)

// Ensure SubmissionService implements the interface.
var _ driving.SubmissionService = (*SubmissionService)(nil)

// Ensure submissionTask implements the interface.
var _ driving.SubmissionTask = (*submissionTask)(nil)

// transcriber is implemented by drivers that record their calls.
type transcriber interface {
	Transcript() []string
}

// SubmissionService runs submissions on a background worker, one at a time.
type SubmissionService struct {
	store       driven.EntryStore
	settings    driving.SettingsService
	credentials driving.CredentialsService
	live        driven.FormDriverFactory
	dryRun      driven.FormDriverFactory

	// PollInterval overrides the login poll interval. Used by tests.
	PollInterval time.Duration

	mu     sync.Mutex
	active *submissionTask
}

// NewSubmissionService creates a new submission service.
// The dry-run factory may be nil, which disables DryRun.
func NewSubmissionService(
	store driven.EntryStore,
	settings driving.SettingsService,
	credentials driving.CredentialsService,
	live driven.FormDriverFactory,
	dryRun driven.FormDriverFactory,
) *SubmissionService {
	return &SubmissionService{
		store:       store,
		settings:    settings,
		credentials: credentials,
		live:        live,
		dryRun:      dryRun,
	}
}

// Start submits the time card of date on a background worker.
func (s *SubmissionService) Start(ctx context.Context, date time.Time) (driving.SubmissionTask, error) {
	if s.live == nil {
		return nil, fmt.Errorf("%w: no form driver configured", domain.ErrDriver)
	}
	return s.start(ctx, date, s.live, s.credentials)
}

// DryRun submits the time card of date against the recording driver.
// The password is not looked up.
func (s *SubmissionService) DryRun(ctx context.Context, date time.Time) (driving.SubmissionTask, error) {
	if s.dryRun == nil {
		return nil, fmt.Errorf("%w: dry run is not available", domain.ErrDriver)
	}
	return s.start(ctx, date, s.dryRun, nil)
}

// Active returns the most recent task while it is not finished.
func (s *SubmissionService) Active() (driving.SubmissionTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.State().IsTerminal() {
		return nil, false
	}
	return s.active, true
}

func (s *SubmissionService) start(
	ctx context.Context,
	date time.Time,
	factory driven.FormDriverFactory,
	credentials driving.CredentialsService,
) (driving.SubmissionTask, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	entries, err := s.store.Day(ctx, domain.Day(date))
	if err != nil {
		return nil, fmt.Errorf("load day: %w", err)
	}
	card := domain.NewTimeCard(date, entries)
	if !card.Complete() {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTimeCard, card.Date.Format(domain.DateLayout))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && !s.active.State().IsTerminal() {
		return nil, domain.ErrSubmissionInProgress
	}

	orchestrator := NewSubmissionOrchestrator(OrchestratorConfig{
		Remote:       settings.Remote,
		Controls:     settings.Controls,
		PollInterval: s.PollInterval,
	}, credentials)

	task := newSubmissionTask(card)
	s.active = task
	logger.Info("Starting submission %s for %s (%d entries)", task.id, task.Date().Format(domain.DateLayout), card.Len())

	go task.run(ctx, factory, orchestrator)
	return task, nil
}

// submissionTask is the handle of one background submission. The worker
// goroutine is the only writer of its state.
type submissionTask struct {
	id   string
	card domain.TimeCard

	updates chan domain.SubmissionEvent
	done    chan struct{}

	mu         sync.RWMutex
	state      domain.TaskState
	status     domain.SubmissionEvent
	submission *Submission
	result     domain.SubmissionResult
}

func newSubmissionTask(card domain.TimeCard) *submissionTask {
	total := card.Len()
	return &submissionTask{
		id:   uuid.New().String(),
		card: card,
		// one progress event per entry plus the terminal event
		updates: make(chan domain.SubmissionEvent, total+1),
		done:    make(chan struct{}),
		state:   domain.TaskPending,
		status:  domain.SubmissionEvent{Kind: domain.EventProgress, Total: total},
		result: domain.SubmissionResult{
			Date:    card.Date,
			Entries: total,
		},
	}
}

func (t *submissionTask) ID() string {
	return t.id
}

func (t *submissionTask) Date() time.Time {
	return t.card.Date
}

func (t *submissionTask) State() domain.TaskState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

func (t *submissionTask) Session() domain.SessionState {
	t.mu.RLock()
	sub := t.submission
	t.mu.RUnlock()
	if sub == nil {
		return domain.SessionLoggedOut
	}
	return sub.State()
}

func (t *submissionTask) Status() domain.SubmissionEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *submissionTask) Updates() <-chan domain.SubmissionEvent {
	return t.updates
}

func (t *submissionTask) Done() <-chan struct{} {
	return t.done
}

func (t *submissionTask) Wait(ctx context.Context) (domain.SubmissionResult, error) {
	select {
	case <-ctx.Done():
		return domain.SubmissionResult{}, ctx.Err()
	case <-t.done:
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result, t.result.Final.Err
}

// run executes the submission. Panics are turned into an aborted event.
func (t *submissionTask) run(ctx context.Context, factory driven.FormDriverFactory, o *SubmissionOrchestrator) {
	started := time.Now()
	t.mu.Lock()
	t.state = domain.TaskRunning
	t.result.TaskID = t.id
	t.result.StartedAt = started
	t.mu.Unlock()

	var final domain.SubmissionEvent
	var transcript []string
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Submission %s panicked: %v", t.id, r)
			final = domain.AbortedEvent(t.card.Len(), fmt.Errorf("%w: %v", domain.ErrDriver, r))
			t.publish(final)
		}
		t.finish(final, transcript)
	}()

	driver, err := factory.Open(ctx)
	if err != nil {
		final = domain.AbortedEvent(t.card.Len(), driverStep("open", "", err))
		t.publish(final)
		return
	}
	defer func() {
		if rec, ok := driver.(transcriber); ok {
			transcript = rec.Transcript()
		}
		if err := driver.Close(); err != nil {
			logger.Warn("Close driver: %v", err)
		}
	}()

	sub := o.Submission(driver, t.card)
	t.mu.Lock()
	t.submission = sub
	t.mu.Unlock()

	for ev := range sub.Events(ctx) {
		t.publish(ev)
		if ev.Kind.IsTerminal() {
			final = ev
		}
	}
}

// publish records ev as the latest status and forwards it to Updates.
func (t *submissionTask) publish(ev domain.SubmissionEvent) {
	t.mu.Lock()
	t.status = ev
	t.mu.Unlock()

	select {
	case t.updates <- ev:
	default:
		logger.Warn("Dropped submission event %q", ev.Message)
	}
}

func (t *submissionTask) finish(final domain.SubmissionEvent, transcript []string) {
	if final.Kind == "" {
		final = domain.AbortedEvent(t.card.Len(), fmt.Errorf("%w: submission ended without a result", domain.ErrDriver))
		t.publish(final)
	}

	t.mu.Lock()
	t.result.Final = final
	t.result.FinishedAt = time.Now()
	t.result.Transcript = transcript
	if final.Kind == domain.EventAborted {
		t.state = domain.TaskFailed
	} else {
		t.state = domain.TaskDone
	}
	t.mu.Unlock()

	if final.Kind == domain.EventAborted {
		logger.Error("Submission %s failed: %s", t.id, final.Message)
	} else {
		logger.Info("Submission %s finished: %s", t.id, final.Message)
	}
	close(t.updates)
	close(t.done)
}
