package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/Polilla23/kempes-server/models"
	"github.com/Polilla23/kempes-server/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func posPtr(v models.SourcePosition) *models.SourcePosition { return &v }

type fakeCompetitionRepo struct {
	competitions map[int]*models.Competition
	createErr    error
}

func newFakeCompetitionRepo(ids ...int) *fakeCompetitionRepo {
	repo := &fakeCompetitionRepo{competitions: make(map[int]*models.Competition)}
	for _, id := range ids {
		repo.competitions[id] = &models.Competition{ID: id, Name: "Liga", Season: "2026", Format: models.FormatLeague}
	}
	return repo
}

func (f *fakeCompetitionRepo) Create(ctx context.Context, competition *models.Competition) error {
	if f.createErr != nil {
		return f.createErr
	}
	competition.ID = len(f.competitions) + 1
	f.competitions[competition.ID] = competition
	return nil
}

func (f *fakeCompetitionRepo) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	competition, ok := f.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	return competition, nil
}

func (f *fakeCompetitionRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := f.competitions[id]
	return ok, nil
}

type fakeMatchRepo struct {
	nextID  int
	matches map[int]*models.Match
	order   []int

	createErr       error
	createErrAfter  int // fail the (n+1)th create when > 0
	updateSlotCalls int
	resultCalls     int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match)}
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if f.createErr != nil && (f.createErrAfter == 0 || len(f.order) >= f.createErrAfter) {
		return f.createErr
	}
	f.nextID++
	match.ID = f.nextID
	stored := *match
	f.matches[match.ID] = &stored
	f.order = append(f.order, match.ID)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) ListByCompetition(ctx context.Context, competitionID int, stage *models.MatchStage) ([]*models.Match, error) {
	result := make([]*models.Match, 0)
	for _, id := range f.order {
		match := f.matches[id]
		if match.CompetitionID != competitionID {
			continue
		}
		if stage != nil && match.Stage != *stage {
			continue
		}
		copied := *match
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeMatchRepo) ListDependents(ctx context.Context, sourceMatchID int) ([]*models.Match, error) {
	result := make([]*models.Match, 0)
	for _, id := range f.order {
		match := f.matches[id]
		homeDep := match.HomeSourceMatchID != nil && *match.HomeSourceMatchID == sourceMatchID
		awayDep := match.AwaySourceMatchID != nil && *match.AwaySourceMatchID == sourceMatchID
		if homeDep || awayDep {
			copied := *match
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) ListByPlaceholder(ctx context.Context, competitionID int, placeholder string) ([]*models.Match, error) {
	result := make([]*models.Match, 0)
	for _, id := range f.order {
		match := f.matches[id]
		if match.CompetitionID != competitionID || match.Status != models.MatchStatusPending {
			continue
		}
		home := match.HomePlaceholder != nil && *match.HomePlaceholder == placeholder
		away := match.AwayPlaceholder != nil && *match.AwayPlaceholder == placeholder
		if home || away {
			copied := *match
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) UpdateSlots(ctx context.Context, match *models.Match) error {
	stored, ok := f.matches[match.ID]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	f.updateSlotCalls++
	stored.HomeClubID = match.HomeClubID
	stored.AwayClubID = match.AwayClubID
	stored.HomePlaceholder = match.HomePlaceholder
	stored.AwayPlaceholder = match.AwayPlaceholder
	return nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	stored, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	f.resultCalls++
	stored.HomeGoals = &homeGoals
	stored.AwayGoals = &awayGoals
	stored.Status = status
	return nil
}
