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
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerNicknameConflict = errors.New("player nickname conflict")
	ErrPlayerTeamInvalid      = errors.New("player team invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListWithTeam(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (nickname, photo_key, team_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		player.Nickname,
		player.PhotoKey,
		player.TeamID,
	).Scan(&player.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "players_nickname_key" {
					return ErrPlayerNicknameConflict
				}
			case "23503":
				if pqErr.Constraint == "players_team_id_fkey" {
					return ErrPlayerTeamInvalid
				}
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT
			p.id, p.nickname, p.photo_key, p.team_id,
			t.id, t.name, t.logo_key
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.id = $1`

	player, err := scanPlayerWithTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

// ListWithTeam returns every player with the team relation resolved, ordered
// by id so snapshot iteration (and therefore ranking tie order) is stable.
func (r *postgresPlayerRepository) ListWithTeam(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT
			p.id, p.nickname, p.photo_key, p.team_id,
			t.id, t.name, t.logo_key
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayerWithTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `UPDATE players SET nickname = $1, team_id = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, player.Nickname, player.TeamID, player.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "players_nickname_key" {
					return ErrPlayerNicknameConflict
				}
			case "23503":
				if pqErr.Constraint == "players_team_id_fkey" {
					return ErrPlayerTeamInvalid
				}
			}
		}
		return fmt.Errorf("failed to update player %d: %w", player.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("failed to update player %d photo key: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// Delete removes the player and their performance records.
func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin player delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM performances WHERE player_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete player %d performances: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrPlayerNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player delete transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayerWithTeam(row rowScanner) (*models.Player, error) {
	var player models.Player
	var teamID sql.NullInt64
	var teamName sql.NullString
	var teamLogoKey sql.NullString

	err := row.Scan(
		&player.ID,
		&player.Nickname,
		&player.PhotoKey,
		&player.TeamID,
		&teamID,
		&teamName,
		&teamLogoKey,
	)
	if err != nil {
		return nil, err
	}

	if teamID.Valid {
		team := models.Team{
			ID:   int(teamID.Int64),
			Name: teamName.String,
		}
		if teamLogoKey.Valid {
			key := teamLogoKey.String
			team.LogoKey = &key
		}
		player.Team = &team
	}
	return &player, nil
}
