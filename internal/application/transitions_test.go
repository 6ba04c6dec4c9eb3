package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTargets(t *testing.T) {
	tests := []struct {
		status Status
		want   []Status
	}{
		{StatusApplied, []Status{StatusInterviewing, StatusRejected, StatusWithdrawn}},
		{StatusInterviewing, []Status{StatusOffer, StatusRejected, StatusWithdrawn}},
		{StatusOffer, []Status{StatusAccepted, StatusRejected, StatusWithdrawn}},
		{StatusAccepted, []Status{}},
		{StatusRejected, []Status{}},
		{StatusWithdrawn, []Status{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedTargets(tt.status))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusApplied, StatusInterviewing, StatusOffer} {
		assert.False(t, IsTerminal(s), "%s should not be terminal", s)
		assert.NotEmpty(t, AllowedTargets(s))
	}
	for _, s := range []Status{StatusAccepted, StatusRejected, StatusWithdrawn} {
		assert.True(t, IsTerminal(s), "%s should be terminal", s)
		assert.Empty(t, AllowedTargets(s))
	}
}

func TestCanTransition(t *testing.T) {
	require.NoError(t, CanTransition(StatusApplied, StatusInterviewing))
	require.NoError(t, CanTransition(StatusInterviewing, StatusOffer))
	require.NoError(t, CanTransition(StatusOffer, StatusAccepted))

	err := CanTransition(StatusApplied, StatusOffer)
	require.Error(t, err)
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, StatusApplied, invalid.From)
	assert.Equal(t, StatusOffer, invalid.To)

	// terminal statuses reject everything, including themselves
	for _, from := range []Status{StatusAccepted, StatusRejected, StatusWithdrawn} {
		for _, to := range []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusAccepted, StatusRejected, StatusWithdrawn} {
			assert.Error(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestAllowedTargetsReturnsCopy(t *testing.T) {
	targets := AllowedTargets(StatusApplied)
	targets[0] = StatusAccepted
	assert.Equal(t, StatusInterviewing, AllowedTargets(StatusApplied)[0])
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusApplied.IsValid())
	assert.True(t, StatusWithdrawn.IsValid())
	assert.False(t, Status("Ghosted").IsValid())
	assert.False(t, Status("").IsValid())
}
