// Package coordinator orchestrates lifecycle transitions: validate against
// the transition table, collect the capture payload, submit one atomic
// PATCH, invalidate the read cache, report the outcome. At most one
// submission per application is ever in flight.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/cache"
	"github.com/applytrack/applytrack/internal/capture"
	"github.com/applytrack/applytrack/internal/client"
	"github.com/applytrack/applytrack/internal/timeline"
)

// ErrTransitionInFlight is returned when a second submission is attempted
// for an application whose previous one has not settled. The trigger
// control is expected to be disabled for the duration; this is the
// defensive backstop.
var ErrTransitionInFlight = errors.New("a transition for this application is already submitting")

type api interface {
	GetApplication(ctx context.Context, id string) (application.Application, error)
	UpdateApplication(ctx context.Context, id string, rq application.UpdateRq) (application.Application, error)
	Timeline(ctx context.Context, id string) ([]timeline.Event, error)
	AddTimelineEvent(ctx context.Context, id string, rq timeline.AddEventRq) (timeline.Event, error)
}

type Coordinator struct {
	api      api
	cache    *cache.Cache
	notifier Notifier

	mu       sync.Mutex
	inflight map[string]bool
}

func NewCoordinator(api api, c *cache.Cache, notifier Notifier) *Coordinator {
	return &Coordinator{
		api:      api,
		cache:    c,
		notifier: notifier,
		inflight: map[string]bool{},
	}
}

// Phase is the state of one submission, not of the application itself.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingCapture
	PhaseSubmitting
	PhaseFailed
)

// Submission is one attempted status transition, from target selection to
// settled outcome.
type Submission struct {
	c      *Coordinator
	app    application.Application
	target application.Status
	step   capture.Step
	form   capture.Form
	phase  Phase
}

// Begin starts a submission for a target picked from the legal set. An
// illegal target is a programming error on the selector's side and is
// rejected with InvalidTransitionError, never submitted.
func (c *Coordinator) Begin(app application.Application, target application.Status) (*Submission, error) {
	if err := application.CanTransition(app.Status, target); err != nil {
		return nil, err
	}
	c.mu.Lock()
	busy := c.inflight[app.ID]
	c.mu.Unlock()
	if busy {
		return nil, ErrTransitionInFlight
	}
	return &Submission{
		c:      c,
		app:    app,
		target: target,
		step:   capture.StepFor(target),
		form:   capture.FormFor(target, app),
		phase:  PhaseAwaitingCapture,
	}, nil
}

func (s *Submission) Phase() Phase       { return s.phase }
func (s *Submission) Step() capture.Step { return s.step }

// Form exposes the capture dialog's state for the caller to fill in. Nil
// for plain-confirmation transitions.
func (s *Submission) Form() capture.Form { return s.form }

// Cancel discards the submission before it is sent. Entered form state is
// dropped; no request is made.
func (s *Submission) Cancel() {
	s.form = nil
	s.phase = PhaseIdle
}

// Confirm commits the transition: one PATCH carrying the status and the
// captured payload together. On success the application and timeline cache
// keys are invalidated before the outcome is reported. On failure the prior
// status stays visible; a capture dialog stays open with its entered data,
// a plain confirmation surfaces a failure toast.
func (s *Submission) Confirm(ctx context.Context) (application.Application, error) {
	if s.phase != PhaseAwaitingCapture {
		return application.Application{}, fmt.Errorf("submission is not awaiting confirmation")
	}
	if s.form != nil {
		if err := s.form.Validate(); err != nil {
			s.c.notifier.Error(err.Error())
			return application.Application{}, err
		}
	}

	s.c.mu.Lock()
	if s.c.inflight[s.app.ID] {
		s.c.mu.Unlock()
		return application.Application{}, ErrTransitionInFlight
	}
	s.c.inflight[s.app.ID] = true
	s.c.mu.Unlock()
	defer func() {
		s.c.mu.Lock()
		delete(s.c.inflight, s.app.ID)
		s.c.mu.Unlock()
	}()

	s.phase = PhaseSubmitting
	rq := application.UpdateRq{Status: &s.target}
	if s.form != nil {
		s.form.Apply(&rq)
	}
	updated, err := s.c.api.UpdateApplication(ctx, s.app.ID, rq)
	if err != nil {
		s.phase = PhaseFailed
		s.c.notifier.Error(fmt.Sprintf("could not move %s to %s: %v", s.app.Company, s.target, err))
		var vErr *client.ValidationError
		if errors.As(err, &vErr) && s.form != nil {
			// dialog stays open so entered data is not lost
			s.phase = PhaseAwaitingCapture
		} else {
			s.phase = PhaseIdle
		}
		return application.Application{}, err
	}

	s.c.cache.Invalidate(cache.ApplicationKey(s.app.ID))
	s.c.cache.Invalidate(cache.TimelineKey(s.app.ID))
	s.c.notifier.Success(fmt.Sprintf("%s moved to %s", s.app.Company, s.target))
	s.phase = PhaseIdle
	return updated, nil
}

// AddTimelineEvent submits a validated compose form and invalidates the
// cached timeline on success.
func (c *Coordinator) AddTimelineEvent(ctx context.Context, applicationID string, form *timeline.ComposeForm) (timeline.Event, error) {
	if err := form.Validate(); err != nil {
		c.notifier.Error(err.Error())
		return timeline.Event{}, err
	}
	event, err := c.api.AddTimelineEvent(ctx, applicationID, form.Payload())
	if err != nil {
		c.notifier.Error(fmt.Sprintf("could not add timeline event: %v", err))
		return timeline.Event{}, err
	}
	c.cache.Invalidate(cache.TimelineKey(applicationID))
	c.notifier.Success("timeline event added")
	return event, nil
}
