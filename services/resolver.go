package services

import (
	"context"
	"fmt"

	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/repositories"
)

// Resolver cascades a finished match's outcome into every pending match
// that references it as a source: the referencing side gets the winner
// or loser as its concrete club and its placeholder text is cleared.
// Resolution is per side, so re-running it for the same finished match
// rewrites the same values and is safe to retry.
type Resolver struct {
	matchRepo repositories.MatchRepository
}

func NewResolver(matchRepo repositories.MatchRepository) *Resolver {
	return &Resolver{matchRepo: matchRepo}
}

func (r *Resolver) Resolve(ctx context.Context, finished *models.Match) ([]*models.Match, error) {
	if finished.Status != models.MatchStatusFinished {
		return nil, fmt.Errorf("cannot resolve dependents of match %d: match is not finished", finished.ID)
	}

	winner := finished.Winner()
	loser := finished.Loser()

	dependents, err := r.matchRepo.ListDependents(ctx, finished.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependents of match %d: %w", finished.ID, err)
	}

	updated := make([]*models.Match, 0, len(dependents))
	for _, dependent := range dependents {
		changed := false

		if dependent.HomeSourceMatchID != nil && *dependent.HomeSourceMatchID == finished.ID {
			club, pickErr := pickOutcome(finished, dependent.HomeSourcePosition, winner, loser)
			if pickErr != nil {
				return updated, pickErr
			}
			dependent.HomeClubID = club
			dependent.HomePlaceholder = nil
			changed = true
		}
		if dependent.AwaySourceMatchID != nil && *dependent.AwaySourceMatchID == finished.ID {
			club, pickErr := pickOutcome(finished, dependent.AwaySourcePosition, winner, loser)
			if pickErr != nil {
				return updated, pickErr
			}
			dependent.AwayClubID = club
			dependent.AwayPlaceholder = nil
			changed = true
		}

		if !changed {
			continue
		}
		if err := r.matchRepo.UpdateSlots(ctx, dependent); err != nil {
			return updated, fmt.Errorf("failed to update dependent match %d: %w", dependent.ID, err)
		}
		updated = append(updated, dependent)
	}

	return updated, nil
}

func pickOutcome(finished *models.Match, position *models.SourcePosition, winner, loser *int) (*int, error) {
	take := models.SourceWinner
	if position != nil {
		take = *position
	}
	var club *int
	switch take {
	case models.SourceWinner:
		club = winner
	case models.SourceLoser:
		club = loser
	default:
		return nil, fmt.Errorf("unknown source position %q on dependent of match %d", take, finished.ID)
	}
	if club == nil {
		return nil, fmt.Errorf("match %d has no %s to propagate (drawn or unresolved)", finished.ID, take)
	}
	clubID := *club
	return &clubID, nil
}
