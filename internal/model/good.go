package model

import "time"

// Good represents an item of stock owned by a user. Necessary marks goods the
// owner considers essential inventory. Corresponds to a row in the `goods`
// table.
type Good struct {
	ID        uint64    `json:"id"`         // goods.id
	UserID    uint64    `json:"user_id"`    // goods.user_id (owner)
	Name      string    `json:"name"`       // goods.name
	Price     int64     `json:"price"`      // goods.price
	Necessary bool      `json:"necessary"`  // goods.necessary
	CreatedAt time.Time `json:"created_at"` // goods.created_at
	UpdatedAt time.Time `json:"updated_at"` // goods.updated_at
}
