package domain

import "time"

// Address is read-only to the checkout core; the address book is maintained
// by an external collaborator.
type Address struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone"`
	Street       string    `json:"street"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city"`
	ZipCode      string    `json:"zipCode"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
}
