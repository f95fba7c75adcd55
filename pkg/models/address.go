package models

import "github.com/google/uuid"

// Address is a delivery address from the customer's address book.
// ExternalID is the backend identifier; ID is the local-store key.
type Address struct {
	ExternalID string    `json:"_id"`
	ID         uuid.UUID `json:"id"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	Home       string    `json:"home"`
	Flat       *int64    `json:"flat,omitempty"`
	Floor      *int64    `json:"floor,omitempty"`
	Entrance   *int64    `json:"entrance,omitempty"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
}
