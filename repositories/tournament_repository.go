package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/dstasiak/cs2-tracker/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, bracket_type, weight,
	weight_group, weight_quarters, weight_semis, weight_final,
	weight_semis_override, weight_final_override`

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments
			(name, bracket_type, weight,
			 weight_group, weight_quarters, weight_semis, weight_final,
			 weight_semis_override, weight_final_override)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.BracketType,
		tournament.Weight,
		tournament.WeightGroup,
		tournament.WeightQuarters,
		tournament.WeightSemis,
		tournament.WeightFinal,
		tournament.WeightSemisOverride,
		tournament.WeightFinalOverride,
	).Scan(&tournament.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	tournament, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		tournament, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, *tournament)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1, bracket_type = $2, weight = $3,
			weight_group = $4, weight_quarters = $5, weight_semis = $6, weight_final = $7,
			weight_semis_override = $8, weight_final_override = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.BracketType,
		tournament.Weight,
		tournament.WeightGroup,
		tournament.WeightQuarters,
		tournament.WeightSemis,
		tournament.WeightFinal,
		tournament.WeightSemisOverride,
		tournament.WeightFinalOverride,
		tournament.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		}
		return fmt.Errorf("failed to update tournament %d: %w", tournament.ID, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes a tournament and cascades to its participations and
// performance records.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tournament delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM performances WHERE tournament_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tournament %d performances: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM participations WHERE tournament_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete tournament %d participations: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournament delete transaction: %w", err)
	}
	return nil
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.BracketType,
		&t.Weight,
		&t.WeightGroup,
		&t.WeightQuarters,
		&t.WeightSemis,
		&t.WeightFinal,
		&t.WeightSemisOverride,
		&t.WeightFinalOverride,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
