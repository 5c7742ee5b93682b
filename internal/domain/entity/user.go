package entity

import (
	"github.com/chinmayajanata/backend/internal/domain/rank"
)

// User is the aggregate root for the member domain. Username is the unique,
// immutable identity; ID is the internal storage key assigned by the database.
//
// Events holds the ids of events the user attends. It must mirror each event's
// UsersAttending list; both sides are maintained through the event service,
// never by editing the slices directly.
type User struct {
	ID                string  `json:"id"`
	Username          string  `json:"username"`
	Email             string  `json:"email,omitempty"`
	Center            int64   `json:"center"`
	Points            int64   `json:"points"`
	IsVerified        bool    `json:"isVerified"`
	VerificationLevel int     `json:"verificationLevel"`
	IsActive          bool    `json:"isActive"`
	AvatarURL         string  `json:"avatarUrl,omitempty"`
	Events            []int64 `json:"events"`
}

// NewUser returns a user with registration defaults.
func NewUser(username string) *User {
	return &User{
		Username:          username,
		Center:            0,
		Points:            0,
		IsVerified:        false,
		VerificationLevel: rank.NormalUser,
		IsActive:          false,
		Events:            []int64{},
	}
}

// AddPoints increases the user's point total. Negative amounts are rejected;
// points only ever grow.
func (u *User) AddPoints(amount int64) bool {
	if amount < 0 {
		return false
	}
	u.Points += amount
	return true
}

// AttendsEvent reports whether the event id is already in the user's set.
func (u *User) AttendsEvent(eventID int64) bool {
	for _, id := range u.Events {
		if id == eventID {
			return true
		}
	}
	return false
}
