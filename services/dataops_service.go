package services

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/repositories"
)

// DatabaseExport is the JSON snapshot format produced by Export and consumed
// by Import. Entity ids are preserved so foreign keys survive a round trip.
type DatabaseExport struct {
	Teams          []models.Team          `json:"teams"`
	Players        []models.Player        `json:"players"`
	Tournaments    []models.Tournament    `json:"tournaments"`
	Participations []models.Participation `json:"participations"`
	Performances   []models.Performance   `json:"performances"`
}

type DataOpsService interface {
	Export(ctx context.Context) (*DatabaseExport, error)
	// Import clears the database and restores it from a snapshot, all within
	// one transaction.
	Import(ctx context.Context, snapshot DatabaseExport) error
	Clear(ctx context.Context) error
}

type dataOpsService struct {
	db *sql.DB // owns the import/clear transactions

	teamRepo          repositories.TeamRepository
	playerRepo        repositories.PlayerRepository
	tournamentRepo    repositories.TournamentRepository
	participationRepo repositories.ParticipationRepository
	performanceRepo   repositories.PerformanceRepository

	notifier RankingNotifier
}

func NewDataOpsService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	performanceRepo repositories.PerformanceRepository,
	notifier RankingNotifier,
) DataOpsService {
	return &dataOpsService{
		db:                db,
		teamRepo:          teamRepo,
		playerRepo:        playerRepo,
		tournamentRepo:    tournamentRepo,
		participationRepo: participationRepo,
		performanceRepo:   performanceRepo,
		notifier:          notifier,
	}
}

func (s *dataOpsService) Export(ctx context.Context) (*DatabaseExport, error) {
	var export DatabaseExport

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		export.Teams, err = s.teamRepo.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		export.Players, err = s.playerRepo.ListWithTeam(ctx)
		return err
	})
	g.Go(func() (err error) {
		export.Tournaments, err = s.tournamentRepo.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		export.Participations, err = s.participationRepo.ListAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		export.Performances, err = s.performanceRepo.ListAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to export database: %w", err)
	}

	// Keep the snapshot flat: relations are reconstructible from the ids.
	for i := range export.Players {
		export.Players[i].Team = nil
	}
	return &export, nil
}

func (s *dataOpsService) Import(ctx context.Context, snapshot DatabaseExport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}

	for _, team := range snapshot.Teams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teams (id, name, logo_key) VALUES ($1, $2, $3)`,
			team.ID, team.Name, team.LogoKey); err != nil {
			return fmt.Errorf("failed to import team %q: %w", team.Name, err)
		}
	}
	for _, t := range snapshot.Tournaments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tournaments
				(id, name, bracket_type, weight,
				 weight_group, weight_quarters, weight_semis, weight_final,
				 weight_semis_override, weight_final_override)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			t.ID, t.Name, t.BracketType, t.Weight,
			t.WeightGroup, t.WeightQuarters, t.WeightSemis, t.WeightFinal,
			t.WeightSemisOverride, t.WeightFinalOverride); err != nil {
			return fmt.Errorf("failed to import tournament %q: %w", t.Name, err)
		}
	}
	for _, player := range snapshot.Players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (id, nickname, photo_key, team_id) VALUES ($1, $2, $3, $4)`,
			player.ID, player.Nickname, player.PhotoKey, player.TeamID); err != nil {
			return fmt.Errorf("failed to import player %q: %w", player.Nickname, err)
		}
	}
	for _, p := range snapshot.Participations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO participations
				(id, tournament_id, team_id, starts_in_semis,
				 rounds_group, rounds_quarters, rounds_semis, rounds_final)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.ID, p.TournamentID, p.TeamID, p.StartsInSemis,
			p.RoundsGroup, p.RoundsQuarters, p.RoundsSemis, p.RoundsFinal); err != nil {
			return fmt.Errorf("failed to import participation (tournament %d, team %d): %w", p.TournamentID, p.TeamID, err)
		}
	}
	for _, perf := range snapshot.Performances {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO performances
				(id, player_id, tournament_id,
				 rating_group, rating_quarters, rating_semis, rating_final)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			perf.ID, perf.PlayerID, perf.TournamentID,
			perf.RatingGroup, perf.RatingQuarters, perf.RatingSemis, perf.RatingFinal); err != nil {
			return fmt.Errorf("failed to import performance (player %d, tournament %d): %w", perf.PlayerID, perf.TournamentID, err)
		}
	}

	// Realign the id sequences with the imported explicit ids.
	for _, table := range []string{"teams", "players", "tournaments", "participations", "performances"} {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s`,
			table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import transaction: %w", err)
	}

	s.notifier.NotifyRankingChanged("database imported")
	return nil
}

func (s *dataOpsService) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear transaction: %w", err)
	}

	s.notifier.NotifyRankingChanged("database cleared")
	return nil
}

// clearTables empties every table, children before parents.
func clearTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"performances", "participations", "players", "teams", "tournaments"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}
