package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/applytrack/applytrack/internal/application"
)

// EventType identifies one entry kind in an application's history.
type EventType string

// System-generated types are created by the backend as a side effect of
// another action and are never accepted from the compose form.
const (
	EventApplied       EventType = "applied"
	EventStatusChanged EventType = "status_changed"
	EventNoteAdded     EventType = "note_added"
	EventOfferReceived EventType = "offer_received"
	EventOfferAccepted EventType = "offer_accepted"
	EventRejected      EventType = "rejected"
	EventWithdrawn     EventType = "withdrawn"
)

// User-addable types.
const (
	EventInterviewScheduled EventType = "interview_scheduled"
	EventInterviewCompleted EventType = "interview_completed"
	EventFollowUpSent       EventType = "follow_up_sent"
	EventResponseReceived   EventType = "response_received"
	EventCustom             EventType = "custom"
)

// IsUserAddable reports whether a user may create this event type manually.
func (t EventType) IsUserAddable() bool {
	switch t {
	case EventInterviewScheduled, EventInterviewCompleted, EventFollowUpSent, EventResponseReceived, EventCustom:
		return true
	}
	return false
}

// IsSystemGenerated reports whether this type is only ever written by the
// backend.
func (t EventType) IsSystemGenerated() bool {
	switch t {
	case EventApplied, EventStatusChanged, EventNoteAdded, EventOfferReceived, EventOfferAccepted, EventRejected, EventWithdrawn:
		return true
	}
	return false
}

// IsInterviewType reports whether the type carries an interview stage.
func (t EventType) IsInterviewType() bool {
	return t == EventInterviewScheduled || t == EventInterviewCompleted
}

// UserAddableTypes lists the options offered by the compose form, in display
// order. System types are deliberately not offered.
func UserAddableTypes() []EventType {
	return []EventType{
		EventInterviewScheduled,
		EventInterviewCompleted,
		EventFollowUpSent,
		EventResponseReceived,
		EventCustom,
	}
}

// Descriptor maps an event type to the icon and label used when rendering
// the ledger.
type Descriptor struct {
	Icon  string
	Label string
}

var descriptors = map[EventType]Descriptor{
	EventApplied:            {Icon: "send", Label: "Applied"},
	EventStatusChanged:      {Icon: "arrow-right", Label: "Status Changed"},
	EventNoteAdded:          {Icon: "note", Label: "Note Added"},
	EventOfferReceived:      {Icon: "gift", Label: "Offer Received"},
	EventOfferAccepted:      {Icon: "award", Label: "Offer Accepted"},
	EventRejected:           {Icon: "x-circle", Label: "Rejected"},
	EventWithdrawn:          {Icon: "undo", Label: "Withdrawn"},
	EventInterviewScheduled: {Icon: "calendar", Label: "Interview Scheduled"},
	EventInterviewCompleted: {Icon: "check-circle", Label: "Interview Completed"},
	EventFollowUpSent:       {Icon: "mail", Label: "Follow-up Sent"},
	EventResponseReceived:   {Icon: "inbox", Label: "Response Received"},
	EventCustom:             {Icon: "dot", Label: "Custom"},
}

// Describe resolves an event type to its icon and label. Unknown or future
// types fall back to a generic icon with a humanized label rather than
// failing to render.
func Describe(t EventType) Descriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return Descriptor{Icon: "dot", Label: strings.ReplaceAll(string(t), "_", " ")}
}

// Event is one immutable entry in an application's history. There is no
// update or delete anywhere for events: the ledger is a historical record,
// not task state.
type Event struct {
	ID             string                      `json:"id"`
	ApplicationID  string                      `json:"application_id"`
	EventType      EventType                   `json:"event_type"`
	EventDate      time.Time                   `json:"event_date"`
	Description    string                      `json:"description,omitempty"`
	InterviewStage *application.InterviewStage `json:"interview_stage,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// SortEvents orders a ledger chronologically by event date, breaking ties by
// record-creation time and then id. Sorting an already ordered ledger leaves
// it unchanged.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.EventDate.Equal(b.EventDate) {
			return a.EventDate.Before(b.EventDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
