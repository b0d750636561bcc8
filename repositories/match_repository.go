package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Polilla23/kempes-server/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchCompetitionInvalid = errors.New("match competition conflict or invalid")
	ErrMatchClubInvalid        = errors.New("match club conflict or invalid")
	ErrMatchSourceInvalid      = errors.New("match source reference conflict or invalid")
)

const matchColumns = `
	id, competition_id, stage, matchday, group_label,
	home_club_id, away_club_id,
	home_placeholder, away_placeholder,
	home_source_match_id, away_source_match_id,
	home_source_position, away_source_position,
	status, home_goals, away_goals, created_at`

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByCompetition(ctx context.Context, competitionID int, stage *models.MatchStage) ([]*models.Match, error)
	// ListDependents returns the matches whose home or away source
	// reference equals the given match id.
	ListDependents(ctx context.Context, sourceMatchID int) ([]*models.Match, error)
	// ListByPlaceholder returns pending matches of a competition with
	// the given placeholder text on either side.
	ListByPlaceholder(ctx context.Context, competitionID int, placeholder string) ([]*models.Match, error)
	// UpdateSlots persists the home/away club ids and placeholders of
	// a match after dependency resolution.
	UpdateSlots(ctx context.Context, match *models.Match) error
	UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(competition_id, stage, matchday, group_label,
			 home_club_id, away_club_id,
			 home_placeholder, away_placeholder,
			 home_source_match_id, away_source_match_id,
			 home_source_position, away_source_position,
			 status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.CompetitionID,
		match.Stage,
		match.Matchday,
		match.Group,
		match.HomeClubID,
		match.AwayClubID,
		match.HomePlaceholder,
		match.AwayPlaceholder,
		match.HomeSourceMatchID,
		match.AwaySourceMatchID,
		match.HomeSourcePosition,
		match.AwaySourcePosition,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByCompetition(ctx context.Context, competitionID int, stage *models.MatchStage) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT` + matchColumns + ` FROM matches WHERE competition_id = $1`)

	args := []interface{}{competitionID}
	placeholderIndex := 2

	if stage != nil {
		queryBuilder.WriteString(" AND stage = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *stage)
		placeholderIndex++
	}

	queryBuilder.WriteString(" ORDER BY id ASC")

	return r.queryMatches(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListDependents(ctx context.Context, sourceMatchID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE home_source_match_id = $1 OR away_source_match_id = $1
		ORDER BY id ASC`

	return r.queryMatches(ctx, query, sourceMatchID)
}

func (r *postgresMatchRepository) ListByPlaceholder(ctx context.Context, competitionID int, placeholder string) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + `
		FROM matches
		WHERE competition_id = $1
		  AND status = $2
		  AND (home_placeholder = $3 OR away_placeholder = $3)
		ORDER BY id ASC`

	return r.queryMatches(ctx, query, competitionID, models.MatchStatusPending, placeholder)
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET home_club_id = $1, away_club_id = $2,
		    home_placeholder = $3, away_placeholder = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		match.HomeClubID,
		match.AwayClubID,
		match.HomePlaceholder,
		match.AwayPlaceholder,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	query := `
		UPDATE matches
		SET home_goals = $1, away_goals = $2, status = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, homeGoals, awayGoals, status, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.CompetitionID,
		&match.Stage,
		&match.Matchday,
		&match.Group,
		&match.HomeClubID,
		&match.AwayClubID,
		&match.HomePlaceholder,
		&match.AwayPlaceholder,
		&match.HomeSourceMatchID,
		&match.AwaySourceMatchID,
		&match.HomeSourcePosition,
		&match.AwaySourcePosition,
		&match.Status,
		&match.HomeGoals,
		&match.AwayGoals,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_competition_id_fkey":
				return ErrMatchCompetitionInvalid
			case "matches_home_club_id_fkey", "matches_away_club_id_fkey":
				return ErrMatchClubInvalid
			case "matches_home_source_match_id_fkey", "matches_away_source_match_id_fkey":
				return ErrMatchSourceInvalid
			}
		}
	}
	return err
}
