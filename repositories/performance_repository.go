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
	ErrPerformanceNotFound          = errors.New("performance not found")
	ErrPerformancePlayerInvalid     = errors.New("performance player invalid")
	ErrPerformanceTournamentInvalid = errors.New("performance tournament invalid")
)

type PerformanceRepository interface {
	// Upsert creates the record for the (player, tournament) pair or merges
	// the non-nil ratings into the existing one. The pair is never duplicated.
	Upsert(ctx context.Context, perf *models.Performance) error
	ListByPlayer(ctx context.Context, playerID int) ([]models.Performance, error)
	ListAll(ctx context.Context) ([]models.Performance, error)
}

type postgresPerformanceRepository struct {
	db *sql.DB
}

func NewPostgresPerformanceRepository(db *sql.DB) PerformanceRepository {
	return &postgresPerformanceRepository{db: db}
}

func (r *postgresPerformanceRepository) Upsert(ctx context.Context, perf *models.Performance) error {
	// COALESCE keeps a previously stored rating when the new write omits it,
	// so ratings can arrive phase by phase.
	query := `
		INSERT INTO performances
			(player_id, tournament_id, rating_group, rating_quarters, rating_semis, rating_final)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_id, tournament_id) DO UPDATE SET
			rating_group = COALESCE(EXCLUDED.rating_group, performances.rating_group),
			rating_quarters = COALESCE(EXCLUDED.rating_quarters, performances.rating_quarters),
			rating_semis = COALESCE(EXCLUDED.rating_semis, performances.rating_semis),
			rating_final = COALESCE(EXCLUDED.rating_final, performances.rating_final)
		RETURNING id, rating_group, rating_quarters, rating_semis, rating_final`

	err := r.db.QueryRowContext(ctx, query,
		perf.PlayerID,
		perf.TournamentID,
		perf.RatingGroup,
		perf.RatingQuarters,
		perf.RatingSemis,
		perf.RatingFinal,
	).Scan(&perf.ID, &perf.RatingGroup, &perf.RatingQuarters, &perf.RatingSemis, &perf.RatingFinal)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "performances_player_id_fkey":
				return ErrPerformancePlayerInvalid
			case "performances_tournament_id_fkey":
				return ErrPerformanceTournamentInvalid
			}
		}
		return fmt.Errorf("failed to upsert performance: %w", err)
	}
	return nil
}

// ListByPlayer returns the player's performance records with the tournament
// relation resolved, ordered by tournament id for deterministic iteration.
func (r *postgresPerformanceRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.Performance, error) {
	query := `
		SELECT
			pf.id, pf.player_id, pf.tournament_id,
			pf.rating_group, pf.rating_quarters, pf.rating_semis, pf.rating_final,
			t.id, t.name, t.bracket_type, t.weight,
			t.weight_group, t.weight_quarters, t.weight_semis, t.weight_final,
			t.weight_semis_override, t.weight_final_override
		FROM performances pf
		JOIN tournaments t ON pf.tournament_id = t.id
		WHERE pf.player_id = $1
		ORDER BY pf.tournament_id`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances for player %d: %w", playerID, err)
	}
	defer rows.Close()

	performances := make([]models.Performance, 0)
	for rows.Next() {
		var perf models.Performance
		var tour models.Tournament
		err := rows.Scan(
			&perf.ID,
			&perf.PlayerID,
			&perf.TournamentID,
			&perf.RatingGroup,
			&perf.RatingQuarters,
			&perf.RatingSemis,
			&perf.RatingFinal,
			&tour.ID,
			&tour.Name,
			&tour.BracketType,
			&tour.Weight,
			&tour.WeightGroup,
			&tour.WeightQuarters,
			&tour.WeightSemis,
			&tour.WeightFinal,
			&tour.WeightSemisOverride,
			&tour.WeightFinalOverride,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance row: %w", err)
		}
		perf.Tournament = &tour
		performances = append(performances, perf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating performance rows: %w", err)
	}
	return performances, nil
}

func (r *postgresPerformanceRepository) ListAll(ctx context.Context) ([]models.Performance, error) {
	query := `
		SELECT id, player_id, tournament_id,
			rating_group, rating_quarters, rating_semis, rating_final
		FROM performances ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}
	defer rows.Close()

	performances := make([]models.Performance, 0)
	for rows.Next() {
		var perf models.Performance
		err := rows.Scan(
			&perf.ID,
			&perf.PlayerID,
			&perf.TournamentID,
			&perf.RatingGroup,
			&perf.RatingQuarters,
			&perf.RatingSemis,
			&perf.RatingFinal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance row: %w", err)
		}
		performances = append(performances, perf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating performance rows: %w", err)
	}
	return performances, nil
}
