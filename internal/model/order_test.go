package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusSentToLogistic, true},
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusSentToLogistic, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusSentToLogistic, StatusDelivered, true},
		{StatusSentToLogistic, StatusCancelled, true},
		// Delivered orders can still be returned and cancelled.
		{StatusDelivered, StatusCancelled, true},

		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},
		{StatusSentToLogistic, StatusPending, false},
		{StatusSentToLogistic, StatusProcessing, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusProcessing, false},
		{StatusDelivered, StatusSentToLogistic, false},
		// Cancelled is terminal.
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusCancelled, StatusSentToLogistic, false},
		{StatusCancelled, StatusDelivered, false},
		// Same-status updates are not transitions.
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("garbage", StatusProcessing))
	assert.False(t, CanTransition(StatusPending, "garbage"))
}
