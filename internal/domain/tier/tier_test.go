package tier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
)

func TestScoreWorkedExample(t *testing.T) {
	// One sevak endorser with 100 points and ten attendees:
	// 100*54 + 10*45 = 5850, no senior multiplier, descaled.
	endorsers := []entity.Endorser{
		{Username: "ramu", Points: 100, VerificationLevel: rank.Sevak},
	}
	got := Score(endorsers, 10)
	require.InDelta(t, 5850.0/float64(rank.TierDescale), got, 1e-12)
}

func TestScoreMixedEndorsersWithMultiplier(t *testing.T) {
	// 10*54 + 20*108 = 2700, plus 5 attendees = 2925, doubled by the one
	// brahmachari endorser to 5850, then descaled.
	endorsers := []entity.Endorser{
		{Username: "sevak", Points: 10, VerificationLevel: rank.Sevak},
		{Username: "brahmachari", Points: 20, VerificationLevel: rank.Brahmachari},
	}
	got := Score(endorsers, 5)
	require.InDelta(t, 5850.0/float64(rank.TierDescale), got, 1e-12)
	require.Equal(t, got, Score(endorsers, 5))
}

func TestScoreIsDeterministic(t *testing.T) {
	endorsers := []entity.Endorser{
		{Username: "a", Points: 7, VerificationLevel: rank.SeniorSevak},
		{Username: "b", Points: 200, VerificationLevel: rank.Swami},
	}
	first := Score(endorsers, 33)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Score(endorsers, 33))
	}
}

func TestScoreNoEndorsersNoAttendance(t *testing.T) {
	require.Zero(t, Score(nil, 0))
	require.Zero(t, Score([]entity.Endorser{}, 0))
}

func TestScoreAttendanceOnly(t *testing.T) {
	got := Score(nil, 4)
	require.InDelta(t, 4*float64(rank.NormalUser)/float64(rank.TierDescale), got, 1e-12)
}

func TestScoreSeniorEndorserMultiplier(t *testing.T) {
	junior := []entity.Endorser{
		{Username: "a", Points: 10, VerificationLevel: rank.Sevak},
	}
	senior := []entity.Endorser{
		{Username: "a", Points: 10, VerificationLevel: rank.Brahmachari},
	}

	// A brahmachari endorser doubles the raw sum on top of the higher level.
	juniorRaw := 10.0 * float64(rank.Sevak)
	seniorRaw := 10.0 * float64(rank.Brahmachari) * 2

	require.InDelta(t, juniorRaw/float64(rank.TierDescale), Score(junior, 0), 1e-12)
	require.InDelta(t, seniorRaw/float64(rank.TierDescale), Score(senior, 0), 1e-12)
}

func TestScoreMultiplierCountsEachSenior(t *testing.T) {
	endorsers := []entity.Endorser{
		{Username: "a", Points: 1, VerificationLevel: rank.Brahmachari},
		{Username: "b", Points: 1, VerificationLevel: rank.Swami},
		{Username: "c", Points: 1, VerificationLevel: rank.Sevak},
	}
	raw := float64(rank.Brahmachari) + float64(rank.Swami) + float64(rank.Sevak)
	raw *= 3 // two senior endorsers
	require.InDelta(t, raw/float64(rank.TierDescale), Score(endorsers, 0), 1e-12)
}
