package timeline

import (
	"fmt"
	"time"

	"github.com/applytrack/applytrack/internal/application"
)

// AddEventRq is the POST body for a manual timeline entry. InterviewStage is
// only ever present for the two interview event types.
type AddEventRq struct {
	EventType      EventType                   `json:"event_type"`
	EventDate      time.Time                   `json:"event_date"`
	Description    string                      `json:"description,omitempty"`
	InterviewStage *application.InterviewStage `json:"interview_stage,omitempty"`
}

// ComposeForm collects a manual timeline entry. A new form is built for
// every compose session; reopening the composer never reuses stale input.
type ComposeForm struct {
	Type        EventType
	Date        time.Time
	Description string
	Stage       *application.InterviewStage
}

// NewComposeForm returns a fresh compose session defaulting the event date
// to now.
func NewComposeForm(now time.Time) *ComposeForm {
	return &ComposeForm{Date: now}
}

// Options lists the event types the composer offers. System-generated types
// are never among them.
func (f *ComposeForm) Options() []EventType {
	return UserAddableTypes()
}

// SetType switches the event type, clearing fields the new type cannot
// carry. Switching away from an interview type discards the stage.
func (f *ComposeForm) SetType(t EventType) {
	f.Type = t
	if !t.IsInterviewType() {
		f.Stage = nil
	}
}

// Validate checks the form before submission: type and date are required,
// and the type must be one a user may add.
func (f *ComposeForm) Validate() error {
	if f.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if !f.Type.IsUserAddable() {
		return fmt.Errorf("event type %q cannot be added manually", f.Type)
	}
	if f.Date.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if f.Stage != nil && !f.Stage.IsValid() {
		return fmt.Errorf("unknown interview stage %q", *f.Stage)
	}
	return nil
}

// Payload builds the outgoing request. The stage is stripped unless the
// type is an interview event, even if it was previously set in the form.
func (f *ComposeForm) Payload() AddEventRq {
	rq := AddEventRq{
		EventType:   f.Type,
		EventDate:   f.Date,
		Description: f.Description,
	}
	if f.Type.IsInterviewType() {
		rq.InterviewStage = f.Stage
	}
	return rq
}
