package services

import (
	"context"
	"fmt"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/ranking"
	"github.com/dstasiak/cs2-tracker/repositories"
	"github.com/dstasiak/cs2-tracker/storage"
)

// RankingService materializes a consistent snapshot of players, performances
// and participations from storage and hands it to the ranking engine. Both
// the JSON endpoint and the HTML ranking page go through GetRanking; there is
// no second computation path.
type RankingService interface {
	GetRanking(ctx context.Context) ([]models.RankingEntry, error)
}

type rankingService struct {
	playerRepo        repositories.PlayerRepository
	performanceRepo   repositories.PerformanceRepository
	participationRepo repositories.ParticipationRepository
	uploader          storage.FileUploader
}

func NewRankingService(
	playerRepo repositories.PlayerRepository,
	performanceRepo repositories.PerformanceRepository,
	participationRepo repositories.ParticipationRepository,
	uploader storage.FileUploader,
) RankingService {
	return &rankingService{
		playerRepo:        playerRepo,
		performanceRepo:   performanceRepo,
		participationRepo: participationRepo,
		uploader:          uploader,
	}
}

func (s *rankingService) GetRanking(ctx context.Context) ([]models.RankingEntry, error) {
	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.Build(snap), nil
}

func (s *rankingService) buildSnapshot(ctx context.Context) (ranking.Snapshot, error) {
	players, err := s.playerRepo.ListWithTeam(ctx)
	if err != nil {
		return ranking.Snapshot{}, fmt.Errorf("failed to load players for ranking: %w", err)
	}
	for i := range players {
		populatePlayerPhotoURL(&players[i], s.uploader)
	}

	performances := make(map[int][]models.Performance, len(players))
	for _, player := range players {
		perfs, err := s.performanceRepo.ListByPlayer(ctx, player.ID)
		if err != nil {
			return ranking.Snapshot{}, fmt.Errorf("failed to load performances for player %d: %w", player.ID, err)
		}
		if len(perfs) > 0 {
			performances[player.ID] = perfs
		}
	}

	allParticipations, err := s.participationRepo.ListAll(ctx)
	if err != nil {
		return ranking.Snapshot{}, fmt.Errorf("failed to load participations for ranking: %w", err)
	}
	participations := make(map[ranking.ParticipationKey]models.Participation, len(allParticipations))
	for _, p := range allParticipations {
		key := ranking.ParticipationKey{TournamentID: p.TournamentID, TeamID: p.TeamID}
		participations[key] = p
	}

	return ranking.Snapshot{
		Players:        players,
		Performances:   performances,
		Participations: participations,
	}, nil
}
