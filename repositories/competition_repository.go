package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Polilla23/kempes-server/models"
	"github.com/lib/pq"
)

var (
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrCompetitionNameConflict = errors.New("competition name already exists for this season")
)

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	query := `
		INSERT INTO competitions (name, season, format)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		competition.Name,
		competition.Season,
		competition.Format,
	).Scan(&competition.ID, &competition.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" { // unique_violation
			return ErrCompetitionNameConflict
		}
	}
	return err
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `
		SELECT id, name, season, format, created_at
		FROM competitions
		WHERE id = $1`

	competition := &models.Competition{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&competition.ID,
		&competition.Name,
		&competition.Season,
		&competition.Format,
		&competition.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return competition, nil
}

func (r *postgresCompetitionRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM competitions WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
