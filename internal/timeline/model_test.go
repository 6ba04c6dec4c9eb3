package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeSubsets(t *testing.T) {
	system := []EventType{
		EventApplied, EventStatusChanged, EventNoteAdded,
		EventOfferReceived, EventOfferAccepted, EventRejected, EventWithdrawn,
	}
	user := []EventType{
		EventInterviewScheduled, EventInterviewCompleted,
		EventFollowUpSent, EventResponseReceived, EventCustom,
	}
	for _, et := range system {
		assert.True(t, et.IsSystemGenerated(), "%s", et)
		assert.False(t, et.IsUserAddable(), "%s", et)
	}
	for _, et := range user {
		assert.True(t, et.IsUserAddable(), "%s", et)
		assert.False(t, et.IsSystemGenerated(), "%s", et)
	}
	assert.Equal(t, user, UserAddableTypes())
}

func TestDescribeKnownTypes(t *testing.T) {
	d := Describe(EventOfferReceived)
	assert.Equal(t, "gift", d.Icon)
	assert.Equal(t, "Offer Received", d.Label)
}

// Unknown or future event types must render with a generic fallback instead
// of failing.
func TestDescribeUnknownTypeFallsBack(t *testing.T) {
	d := Describe(EventType("background_check_cleared"))
	assert.Equal(t, "dot", d.Icon)
	assert.Equal(t, "background check cleared", d.Label)
}

func TestSortEventsOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "c", EventDate: base.Add(48 * time.Hour), CreatedAt: base},
		{ID: "b", EventDate: base, CreatedAt: base.Add(time.Hour)},
		{ID: "a", EventDate: base, CreatedAt: base},
		{ID: "e", EventDate: base, CreatedAt: base.Add(time.Hour)},
	}
	SortEvents(events)
	ids := []string{events[0].ID, events[1].ID, events[2].ID, events[3].ID}
	// event_date first, then created_at, then id
	assert.Equal(t, []string{"a", "b", "e", "c"}, ids)
}

// Re-sorting the same fetched list twice produces the same ordered output:
// no duplication, no reordering.
func TestSortEventsIdempotent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "b", EventType: EventApplied, EventDate: base, CreatedAt: base},
		{ID: "a", EventType: EventStatusChanged, EventDate: base.Add(time.Hour), CreatedAt: base},
		{ID: "c", EventType: EventCustom, EventDate: base.Add(2 * time.Hour), CreatedAt: base},
	}
	SortEvents(events)
	first := make([]Event, len(events))
	copy(first, events)

	SortEvents(events)
	require.Equal(t, first, events)
	assert.Len(t, events, 3)
}
