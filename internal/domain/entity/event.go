package entity

import (
	"time"

	"github.com/chinmayajanata/backend/internal/domain/rank"
)

// Event is hosted by a center, attended by users, and endorsed by senior
// members. It references its center and attendees by id/username only; the
// full records live in their own aggregates.
//
// Tier is derived from Endorsers and PeopleAttending and is never set
// directly; callers recompute it through the tier package after every
// attendance or endorsement change. PeopleAttending always equals
// len(UsersAttending).
type Event struct {
	ID              int64      `json:"id"`
	Location        Location   `json:"location"`
	Date            time.Time  `json:"date"`
	Category        int        `json:"category"`
	Center          int64      `json:"center"`
	Endorsers       []Endorser `json:"endorsers"`
	Tier            float64    `json:"tier"`
	PeopleAttending int64      `json:"peopleAttending"`
	UsersAttending  []string   `json:"usersAttending"`
	Description     string     `json:"description"`
}

// Endorser is the slice of a user that contributes to an event's tier,
// captured at endorsement time.
type Endorser struct {
	Username          string `json:"username"`
	Points            int64  `json:"points"`
	VerificationLevel int    `json:"verificationLevel"`
}

// NewEvent returns an event affiliated with the given center. The id stays
// zero until the identity allocator commits one.
func NewEvent(loc Location, date time.Time, centerID int64) *Event {
	return &Event{
		Location:       loc,
		Date:           date,
		Category:       rank.Satsang,
		Center:         centerID,
		Endorsers:      []Endorser{},
		UsersAttending: []string{},
	}
}

// HasAttendee reports whether the username is already on the attendee list.
func (e *Event) HasAttendee(username string) bool {
	for _, u := range e.UsersAttending {
		if u == username {
			return true
		}
	}
	return false
}
