package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a pricing contract violation (bad quantity,
	// discount or price). Not user-recoverable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock indicates a reservation would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart indicates checkout was attempted against an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoAddress indicates checkout was attempted without a valid saved address.
	ErrNoAddress = errors.New("no valid address")

	// ErrOrderDelivered indicates a cancellation was rejected because the
	// order was already delivered.
	ErrOrderDelivered = errors.New("order already delivered")
)
