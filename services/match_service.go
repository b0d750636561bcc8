package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Polilla23/kempes-server/live"
	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/repositories"
)

// FinishResult reports a recorded result together with the dependency
// cascade it triggered.
type FinishResult struct {
	Match             *models.Match   `json:"match"`
	DependentsUpdated int             `json:"dependent_matches_updated"`
	UpdatedMatches    []*models.Match `json:"updated_matches"`
}

type MatchService interface {
	FinishMatch(ctx context.Context, matchID, homeGoals, awayGoals int) (*FinishResult, error)
	ListByCompetition(ctx context.Context, competitionID int, stage *models.MatchStage) ([]*models.Match, error)
	// AssignGroupQualifier fills every pending knockout side whose
	// placeholder equals groupRef (e.g. "GROUP_A_1") with the club
	// that earned that group position.
	AssignGroupQualifier(ctx context.Context, competitionID int, groupRef string, clubID int) ([]*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	resolver  *Resolver
	hub       *live.Hub
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	resolver *Resolver,
	hub *live.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		resolver:  resolver,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) FinishMatch(ctx context.Context, matchID, homeGoals, awayGoals int) (*FinishResult, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	if match.Status == models.MatchStatusFinished {
		return nil, ErrMatchAlreadyFinished
	}
	if match.HomeClubID == nil || match.AwayClubID == nil {
		return nil, ErrTeamsNotAssigned
	}
	if homeGoals < 0 || awayGoals < 0 {
		return nil, ErrInvalidScore
	}
	if match.Stage == models.StageKnockout && homeGoals == awayGoals {
		return nil, ErrDrawNotAllowedInKnockout
	}

	if err := s.matchRepo.UpdateResult(ctx, matchID, homeGoals, awayGoals, models.MatchStatusFinished); err != nil {
		return nil, mapMatchRepoError(err)
	}
	match.HomeGoals = &homeGoals
	match.AwayGoals = &awayGoals
	match.Status = models.MatchStatusFinished

	// The result is durable before any dependent is touched; a failed
	// cascade can be retried by resolving this match id again.
	updated, err := s.resolver.Resolve(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("result of match %d recorded, but dependency cascade failed (%d dependents updated): %w",
			matchID, len(updated), err)
	}

	s.logger.Info("match finished",
		slog.Int("match_id", matchID),
		slog.Int("competition_id", match.CompetitionID),
		slog.Int("home_goals", homeGoals),
		slog.Int("away_goals", awayGoals),
		slog.Int("dependents_updated", len(updated)))

	result := &FinishResult{
		Match:             match,
		DependentsUpdated: len(updated),
		UpdatedMatches:    updated,
	}

	if s.hub != nil {
		s.hub.Broadcast(live.Event{
			Type:          live.EventMatchFinished,
			CompetitionID: match.CompetitionID,
			Payload:       result,
		})
		if len(updated) > 0 {
			s.hub.Broadcast(live.Event{
				Type:          live.EventBracketResolved,
				CompetitionID: match.CompetitionID,
				Payload:       updated,
			})
		}
	}

	return result, nil
}

func (s *matchService) ListByCompetition(ctx context.Context, competitionID int, stage *models.MatchStage) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByCompetition(ctx, competitionID, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for competition %d: %w", competitionID, err)
	}
	return matches, nil
}

func (s *matchService) AssignGroupQualifier(ctx context.Context, competitionID int, groupRef string, clubID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByPlaceholder(ctx, competitionID, groupRef)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches referencing %q: %w", groupRef, err)
	}
	if len(matches) == 0 {
		return nil, ErrGroupReferenceNotFound
	}

	updated := make([]*models.Match, 0, len(matches))
	for _, match := range matches {
		changed := false
		// Only group-fed sides: a side also carrying a source match
		// reference belongs to the match-dependency resolver.
		if match.HomePlaceholder != nil && *match.HomePlaceholder == groupRef && match.HomeSourceMatchID == nil {
			club := clubID
			match.HomeClubID = &club
			match.HomePlaceholder = nil
			changed = true
		}
		if match.AwayPlaceholder != nil && *match.AwayPlaceholder == groupRef && match.AwaySourceMatchID == nil {
			club := clubID
			match.AwayClubID = &club
			match.AwayPlaceholder = nil
			changed = true
		}
		if !changed {
			continue
		}
		if err := s.matchRepo.UpdateSlots(ctx, match); err != nil {
			return updated, fmt.Errorf("failed to assign qualifier to match %d: %w", match.ID, err)
		}
		updated = append(updated, match)
	}

	if len(updated) == 0 {
		return nil, ErrGroupReferenceNotFound
	}

	s.logger.Info("group qualifier assigned",
		slog.Int("competition_id", competitionID),
		slog.String("group_ref", groupRef),
		slog.Int("club_id", clubID),
		slog.Int("matches_updated", len(updated)))

	if s.hub != nil {
		s.hub.Broadcast(live.Event{
			Type:          live.EventGroupQualified,
			CompetitionID: competitionID,
			Payload:       updated,
		})
	}

	return updated, nil
}
