package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusNext(t *testing.T) {
	tests := []struct {
		from OrderStatus
		want OrderStatus
	}{
		{OrderStatusPending, OrderStatusPaid},
		{OrderStatusPaid, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusDelivered},
		{OrderStatusCancelled, OrderStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next())
		})
	}
}

// Terminal statuses never move, no matter how often they are advanced.
func TestOrderStatusTerminalMonotone(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, status.Terminal())
		assert.Equal(t, status, status.Next())
		assert.Equal(t, status, status.Next().Next())
		assert.False(t, status.CanCancel())
	}
}

func TestOrderStatusCanCancel(t *testing.T) {
	assert.True(t, OrderStatusPending.CanCancel())
	assert.True(t, OrderStatusPaid.CanCancel())
	assert.False(t, OrderStatusDelivered.CanCancel())
	assert.False(t, OrderStatusCancelled.CanCancel())
}

func TestToOrderStatus(t *testing.T) {
	status, err := ToOrderStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPaid, status)

	_, err = ToOrderStatus("shipped")
	require.Error(t, err)
}
