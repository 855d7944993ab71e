package domain

import (
	"errors"
	"time"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactOwner is the embedded view of the account owning a contact,
// attached on reads so clients never need a second lookup.
type ContactOwner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Contact is a single address-book entry owned by one user.
type Contact struct {
	ID        string        `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name,omitempty"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone"`
	UserID    string        `json:"user_id"`
	Owner     *ContactOwner `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
