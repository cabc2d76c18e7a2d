package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/repositories"
)

// RankingNotifier is told whenever stored data that feeds the ranking
// changes. The websocket hub implements it; tests use a no-op.
type RankingNotifier interface {
	NotifyRankingChanged(reason string)
}

type PerformanceService interface {
	// SetPerformance upserts the ratings for a (player, tournament) pair.
	// Omitted ratings keep their stored values.
	SetPerformance(ctx context.Context, input SetPerformanceInput) (*models.Performance, error)
}

type SetPerformanceInput struct {
	PlayerID     int `json:"player_id"`
	TournamentID int `json:"tournament_id"`

	RatingGroup    *float64 `json:"rating_group"`
	RatingQuarters *float64 `json:"rating_quarters"`
	RatingSemis    *float64 `json:"rating_semis"`
	RatingFinal    *float64 `json:"rating_final"`
}

type performanceService struct {
	performanceRepo repositories.PerformanceRepository
	notifier        RankingNotifier
}

func NewPerformanceService(performanceRepo repositories.PerformanceRepository, notifier RankingNotifier) PerformanceService {
	return &performanceService{
		performanceRepo: performanceRepo,
		notifier:        notifier,
	}
}

func (s *performanceService) SetPerformance(ctx context.Context, input SetPerformanceInput) (*models.Performance, error) {
	perf := &models.Performance{
		PlayerID:       input.PlayerID,
		TournamentID:   input.TournamentID,
		RatingGroup:    input.RatingGroup,
		RatingQuarters: input.RatingQuarters,
		RatingSemis:    input.RatingSemis,
		RatingFinal:    input.RatingFinal,
	}

	if err := s.performanceRepo.Upsert(ctx, perf); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPerformancePlayerInvalid):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPerformanceTournamentInvalid):
			return nil, ErrTournamentNotFound
		default:
			return nil, fmt.Errorf("failed to set performance: %w", err)
		}
	}

	s.notifier.NotifyRankingChanged("performance updated")
	return perf, nil
}
