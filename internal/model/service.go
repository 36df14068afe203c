package model

import "time"

// Service represents a billable service offered by a user. Corresponds to a
// row in the `services` table.
type Service struct {
	ID        uint64    `json:"id"`         // services.id
	UserID    uint64    `json:"user_id"`    // services.user_id (owner)
	Name      string    `json:"name"`       // services.name
	Price     int64     `json:"price"`      // services.price
	CreatedAt time.Time `json:"created_at"` // services.created_at
	UpdatedAt time.Time `json:"updated_at"` // services.updated_at
}
