package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusFailed.Terminal())

	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusPaid.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusPaid:       {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered, StatusCancelled},
	}

	all := []OrderStatus{StatusProcessing, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled, StatusFailed}
	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, a := range targets {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	// no edges leave a terminal status
	for _, from := range []OrderStatus{StatusDelivered, StatusCancelled, StatusFailed} {
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}
