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
	ErrParticipationNotFound          = errors.New("participation not found")
	ErrParticipationTeamInvalid       = errors.New("participation team invalid")
	ErrParticipationTournamentInvalid = errors.New("participation tournament invalid")
)

type ParticipationRepository interface {
	// Upsert inserts the participation or, when the (tournament, team) pair
	// already exists, updates its flag and round counts.
	Upsert(ctx context.Context, p *models.Participation) error
	FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Participation, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error)
	ListAll(ctx context.Context) ([]models.Participation, error)
	Delete(ctx context.Context, tournamentID, teamID int) error
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

const participationColumns = `id, tournament_id, team_id, starts_in_semis,
	rounds_group, rounds_quarters, rounds_semis, rounds_final`

func (r *postgresParticipationRepository) Upsert(ctx context.Context, p *models.Participation) error {
	query := `
		INSERT INTO participations
			(tournament_id, team_id, starts_in_semis,
			 rounds_group, rounds_quarters, rounds_semis, rounds_final)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tournament_id, team_id) DO UPDATE SET
			starts_in_semis = EXCLUDED.starts_in_semis,
			rounds_group = EXCLUDED.rounds_group,
			rounds_quarters = EXCLUDED.rounds_quarters,
			rounds_semis = EXCLUDED.rounds_semis,
			rounds_final = EXCLUDED.rounds_final
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID,
		p.TeamID,
		p.StartsInSemis,
		p.RoundsGroup,
		p.RoundsQuarters,
		p.RoundsSemis,
		p.RoundsFinal,
	).Scan(&p.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "participations_team_id_fkey":
				return ErrParticipationTeamInvalid
			case "participations_tournament_id_fkey":
				return ErrParticipationTournamentInvalid
			}
		}
		return fmt.Errorf("failed to upsert participation: %w", err)
	}
	return nil
}

func (r *postgresParticipationRepository) FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Participation, error) {
	query := `SELECT ` + participationColumns + `
		FROM participations WHERE tournament_id = $1 AND team_id = $2`

	p, err := scanParticipation(r.db.QueryRowContext(ctx, query, tournamentID, teamID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipationNotFound
		}
		return nil, fmt.Errorf("failed to find participation (tournament %d, team %d): %w", tournamentID, teamID, err)
	}
	return p, nil
}

func (r *postgresParticipationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error) {
	query := `SELECT ` + participationColumns + `
		FROM participations WHERE tournament_id = $1 ORDER BY id`
	return r.queryParticipations(ctx, query, tournamentID)
}

func (r *postgresParticipationRepository) ListAll(ctx context.Context) ([]models.Participation, error) {
	query := `SELECT ` + participationColumns + ` FROM participations ORDER BY id`
	return r.queryParticipations(ctx, query)
}

// Delete removes a team's participation in a tournament and, with it, that
// team's players' performance records for the same tournament.
func (r *postgresParticipationRepository) Delete(ctx context.Context, tournamentID, teamID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin participation delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM performances
		 WHERE tournament_id = $1
		   AND player_id IN (SELECT id FROM players WHERE team_id = $2)`,
		tournamentID, teamID); err != nil {
		return fmt.Errorf("failed to delete performances for participation (tournament %d, team %d): %w", tournamentID, teamID, err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM participations WHERE tournament_id = $1 AND team_id = $2`,
		tournamentID, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete participation (tournament %d, team %d): %w", tournamentID, teamID, err)
	}
	if err := checkAffectedRows(result, ErrParticipationNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participation delete transaction: %w", err)
	}
	return nil
}

func (r *postgresParticipationRepository) queryParticipations(ctx context.Context, query string, args ...interface{}) ([]models.Participation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations: %w", err)
	}
	defer rows.Close()

	participations := make([]models.Participation, 0)
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation row: %w", err)
		}
		participations = append(participations, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating participation rows: %w", err)
	}
	return participations, nil
}

func scanParticipation(row rowScanner) (*models.Participation, error) {
	var p models.Participation
	err := row.Scan(
		&p.ID,
		&p.TournamentID,
		&p.TeamID,
		&p.StartsInSemis,
		&p.RoundsGroup,
		&p.RoundsQuarters,
		&p.RoundsSemis,
		&p.RoundsFinal,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
