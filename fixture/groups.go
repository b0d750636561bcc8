package fixture

import (
	"fmt"

	"github.com/Polilla23/kempes-server/models"
)

// GroupStage builds a single round-robin inside one group: every pair
// (i, j) with i < j meets exactly once, the lower index playing at
// home. Matchday increments per match; groups are not batched into
// simultaneous rounds.
func GroupStage(participants []int, label string) ([]*Plan, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("group %s requires at least 2 participants, got %d", label, len(participants))
	}
	if err := checkDistinct(participants); err != nil {
		return nil, fmt.Errorf("group %s: %w", label, err)
	}

	n := len(participants)
	plans := make([]*Plan, 0, n*(n-1)/2)
	matchday := 0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			matchday++
			h, a := participants[i], participants[j]
			group := label
			plans = append(plans, &Plan{
				Stage:      models.StageRoundRobin,
				Matchday:   matchday,
				Group:      &group,
				HomeClubID: &h,
				AwayClubID: &a,
			})
		}
	}
	return plans, nil
}
