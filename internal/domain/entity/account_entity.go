package entity

import (
	"time"
)

// Account is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash and must never leave the process
// in any serialized view.
//
// Email is unique across live accounts. The comparison is
// case-sensitive: "A@x.com" and "a@x.com" are distinct addresses.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
