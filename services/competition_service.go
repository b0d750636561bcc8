package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/repositories"
	"golang.org/x/sync/errgroup"
)

type CreateCompetitionInput struct {
	Name   string                   `json:"name"`
	Season string                   `json:"season"`
	Format models.CompetitionFormat `json:"format"`
}

// CompetitionOverview bundles a competition with its full fixture list.
type CompetitionOverview struct {
	Competition *models.Competition `json:"competition"`
	Matches     []*models.Match     `json:"matches"`
}

type CompetitionService interface {
	Create(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	Overview(ctx context.Context, competitionID int) (*CompetitionOverview, error)
}

type competitionService struct {
	competitionRepo repositories.CompetitionRepository
	matchRepo       repositories.MatchRepository
	logger          *slog.Logger
}

func NewCompetitionService(
	competitionRepo repositories.CompetitionRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) CompetitionService {
	return &competitionService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		logger:          logger,
	}
}

func (s *competitionService) Create(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	if input.Name == "" {
		return nil, ErrCompetitionNameRequired
	}
	if input.Season == "" {
		return nil, ErrCompetitionSeasonRequired
	}
	switch input.Format {
	case models.FormatLeague, models.FormatGroupStage, models.FormatKnockout:
	default:
		return nil, fmt.Errorf("%w: %q", ErrCompetitionInvalidFormat, input.Format)
	}

	competition := &models.Competition{
		Name:   input.Name,
		Season: input.Season,
		Format: input.Format,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNameConflict) {
			return nil, ErrCompetitionNameConflict
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	s.logger.Info("competition created",
		slog.Int("competition_id", competition.ID),
		slog.String("name", competition.Name),
		slog.String("format", string(competition.Format)))
	return competition, nil
}

func (s *competitionService) Overview(ctx context.Context, competitionID int) (*CompetitionOverview, error) {
	overview := &CompetitionOverview{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		competition, err := s.competitionRepo.GetByID(gCtx, competitionID)
		if err != nil {
			if errors.Is(err, repositories.ErrCompetitionNotFound) {
				return ErrCompetitionNotFound
			}
			return fmt.Errorf("failed to load competition %d: %w", competitionID, err)
		}
		overview.Competition = competition
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByCompetition(gCtx, competitionID, nil)
		if err != nil {
			return fmt.Errorf("failed to load matches for competition %d: %w", competitionID, err)
		}
		overview.Matches = matches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
