package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Polilla23/kempes-server/fixture"
	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/repositories"
)

// GroupInput is one group of a group-stage fixture request.
type GroupInput struct {
	Label          string `json:"label"`
	ParticipantIDs []int  `json:"participant_ids"`
}

type FixtureService interface {
	CreateLeagueFixture(ctx context.Context, competitionID int, participantIDs []int, doubleRound bool) (int, error)
	CreateGroupStageFixtures(ctx context.Context, competitionID int, groups []GroupInput) (int, error)
	CreateKnockoutFixture(ctx context.Context, competitionID int, slots []fixture.Slot) (int, error)
}

type fixtureService struct {
	competitionRepo repositories.CompetitionRepository
	matchRepo       repositories.MatchRepository
	logger          *slog.Logger
}

func NewFixtureService(
	competitionRepo repositories.CompetitionRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		logger:          logger,
	}
}

func (s *fixtureService) CreateLeagueFixture(ctx context.Context, competitionID int, participantIDs []int, doubleRound bool) (int, error) {
	if err := s.checkCompetition(ctx, competitionID); err != nil {
		return 0, err
	}
	if len(participantIDs) < 2 {
		return 0, ErrFixtureParticipantsRequired
	}

	plans, err := fixture.RoundRobin(participantIDs, doubleRound)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFixtureInput, err)
	}

	created, err := s.persistPlans(ctx, competitionID, plans)
	if err != nil {
		return created, err
	}
	s.logger.Info("league fixture created",
		slog.Int("competition_id", competitionID),
		slog.Int("participants", len(participantIDs)),
		slog.Bool("double_round", doubleRound),
		slog.Int("matches", created))
	return created, nil
}

func (s *fixtureService) CreateGroupStageFixtures(ctx context.Context, competitionID int, groups []GroupInput) (int, error) {
	if err := s.checkCompetition(ctx, competitionID); err != nil {
		return 0, err
	}
	if len(groups) == 0 {
		return 0, ErrFixtureParticipantsRequired
	}

	plans := make([]*fixture.Plan, 0)
	for _, group := range groups {
		groupPlans, err := fixture.GroupStage(group.ParticipantIDs, group.Label)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidFixtureInput, err)
		}
		plans = append(plans, groupPlans...)
	}

	created, err := s.persistPlans(ctx, competitionID, plans)
	if err != nil {
		return created, err
	}
	s.logger.Info("group stage fixtures created",
		slog.Int("competition_id", competitionID),
		slog.Int("groups", len(groups)),
		slog.Int("matches", created))
	return created, nil
}

func (s *fixtureService) CreateKnockoutFixture(ctx context.Context, competitionID int, slots []fixture.Slot) (int, error) {
	if err := s.checkCompetition(ctx, competitionID); err != nil {
		return 0, err
	}

	plans, _, err := fixture.BuildBracket(slots)
	if err != nil {
		return 0, err
	}

	created, err := s.persistPlans(ctx, competitionID, plans)
	if err != nil {
		return created, err
	}
	s.logger.Info("knockout fixture created",
		slog.Int("competition_id", competitionID),
		slog.Int("matches", created))
	return created, nil
}

func (s *fixtureService) checkCompetition(ctx context.Context, competitionID int) error {
	exists, err := s.competitionRepo.Exists(ctx, competitionID)
	if err != nil {
		return fmt.Errorf("failed to check competition %d: %w", competitionID, err)
	}
	if !exists {
		return ErrCompetitionNotFound
	}
	return nil
}

// persistPlans writes plans strictly in generation order, substituting
// the id each insert got assigned into later plans' source references.
// The arena indexes always point backwards, so every reference is
// resolvable by the time its match is written. On failure the count of
// rows already committed is reported; those are not rolled back.
func (s *fixtureService) persistPlans(ctx context.Context, competitionID int, plans []*fixture.Plan) (int, error) {
	ids := make([]int, len(plans))
	for i, plan := range plans {
		match := &models.Match{
			CompetitionID:   competitionID,
			Stage:           plan.Stage,
			Matchday:        plan.Matchday,
			Group:           plan.Group,
			HomeClubID:      plan.HomeClubID,
			AwayClubID:      plan.AwayClubID,
			HomePlaceholder: plan.HomePlaceholder,
			AwayPlaceholder: plan.AwayPlaceholder,
			Status:          models.MatchStatusPending,
		}
		if plan.HomeSource != nil {
			id := ids[plan.HomeSource.Index]
			position := plan.HomeSource.Position
			match.HomeSourceMatchID = &id
			match.HomeSourcePosition = &position
		}
		if plan.AwaySource != nil {
			id := ids[plan.AwaySource.Index]
			position := plan.AwaySource.Position
			match.AwaySourceMatchID = &id
			match.AwaySourcePosition = &position
		}

		if err := s.matchRepo.Create(ctx, match); err != nil {
			return i, fmt.Errorf("fixture persistence stopped after %d of %d matches: %w", i, len(plans), err)
		}
		ids[i] = match.ID
	}
	return len(plans), nil
}

func mapMatchRepoError(err error) error {
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	return err
}
