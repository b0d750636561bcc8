package fixture

import (
	"fmt"

	"github.com/Polilla23/kempes-server/models"
)

// byeClub pads an odd participant list. A pairing against the bye emits
// no match, so the paired club simply rests that matchday.
const byeClub = 0

// RoundRobin builds a balanced league schedule with the circle method:
// the first club stays fixed while the rest rotate one position per
// round, pairing position i against position n-1-i. Every pair meets
// exactly once over n-1 rounds (n rounds when the input is odd, each
// club resting once). With doubleRound a mirrored second pass follows,
// matchdays continuing where the first pass stopped.
func RoundRobin(participants []int, doubleRound bool) ([]*Plan, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("round robin requires at least 2 participants, got %d", len(participants))
	}
	if err := checkDistinct(participants); err != nil {
		return nil, err
	}

	ring := make([]int, len(participants))
	copy(ring, participants)
	if len(ring)%2 != 0 {
		ring = append(ring, byeClub)
	}

	n := len(ring)
	rounds := n - 1
	half := n / 2

	plans := make([]*Plan, 0, rounds*half)
	for round := 1; round <= rounds; round++ {
		for i := 0; i < half; i++ {
			home := ring[i]
			away := ring[n-1-i]
			if home == byeClub || away == byeClub {
				continue
			}
			h, a := home, away
			plans = append(plans, &Plan{
				Stage:      models.StageRoundRobin,
				Matchday:   round,
				HomeClubID: &h,
				AwayClubID: &a,
			})
		}

		// Keep ring[0] fixed, rotate the rest one step to the right.
		rest := ring[1:]
		last := rest[len(rest)-1]
		copy(rest[1:], rest[:len(rest)-1])
		rest[0] = last
	}

	if doubleRound {
		firstPass := len(plans)
		for i := 0; i < firstPass; i++ {
			first := plans[i]
			h, a := *first.AwayClubID, *first.HomeClubID
			plans = append(plans, &Plan{
				Stage:      models.StageRoundRobin,
				Matchday:   first.Matchday + rounds,
				HomeClubID: &h,
				AwayClubID: &a,
			})
		}
	}

	return plans, nil
}

func checkDistinct(participants []int) error {
	seen := make(map[int]struct{}, len(participants))
	for _, id := range participants {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate participant %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
