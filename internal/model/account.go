package model

import "time"

// Account represents a payment account registered by a user, for example a
// mobile money or bank account used to settle purchases. Corresponds to a row
// in the `accounts` table.
type Account struct {
	ID              uint64    `json:"id"`               // accounts.id
	UserID          uint64    `json:"user_id"`          // accounts.user_id (owner)
	Name            string    `json:"name"`             // accounts.name
	PhoneNo         string    `json:"phone_no"`         // accounts.phone_no
	AccountNo       string    `json:"account_no"`       // accounts.account_no
	AccountProvider string    `json:"account_provider"` // accounts.account_provider
	CreatedAt       time.Time `json:"created_at"`       // accounts.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // accounts.updated_at
}
