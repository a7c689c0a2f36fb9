package domain

import "errors"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:   {},
	OrderStatusPaid:      {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Next returns the forward transition on the happy path:
// pending -> paid -> delivered. Terminal and unknown statuses map to
// themselves, so advancing is idempotent.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusPending:
		return OrderStatusPaid
	case OrderStatusPaid:
		return OrderStatusDelivered
	default:
		return s
	}
}

// CanCancel reports whether cancellation is allowed from this status.
// Delivered orders cannot be cancelled; cancelling a cancelled order is a
// no-op handled by the caller.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}
