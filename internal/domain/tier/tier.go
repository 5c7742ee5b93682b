// Package tier computes the derived importance score of an event.
package tier

import (
	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
)

// Score computes an event's tier from its endorsers and attendance count.
//
// Each endorser contributes points × verification level; every attendee adds
// the normal-user rank; the sum doubles (and more) when brahmachari-or-above
// endorsers are present; the result is normalized by the descale constant.
// The function is pure (same inputs, same float64, no rounding) and the
// caller is responsible for storing the result back onto the event.
func Score(endorsers []entity.Endorser, peopleAttending int64) float64 {
	raw := 0.0
	seniorEndorsers := 0
	for _, e := range endorsers {
		raw += float64(e.Points) * float64(e.VerificationLevel)
		if e.VerificationLevel >= rank.Brahmachari {
			seniorEndorsers++
		}
	}
	raw += float64(peopleAttending) * float64(rank.NormalUser)
	raw *= float64(1 + seniorEndorsers)
	return raw / float64(rank.TierDescale)
}
