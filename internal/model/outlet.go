package model

import "time"

// Outlet represents a shop owned by a user. Each outlet belongs to exactly
// one owner; UserID is set at creation time and never reassigned. This struct
// corresponds to a row in the `outlets` table and is serialized directly in
// API responses.
type Outlet struct {
	ID            uint64    `json:"id"`             // outlets.id
	UserID        uint64    `json:"user_id"`        // outlets.user_id (owner)
	Name          string    `json:"name"`           // outlets.name
	PostalAddress string    `json:"postal_address"` // outlets.postal_address
	Location      string    `json:"location"`       // outlets.location
	CreatedAt     time.Time `json:"created_at"`     // outlets.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // outlets.updated_at
}
