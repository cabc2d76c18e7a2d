package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/repositories"
)

// weightSumTolerance bounds the allowed floating-point drift when checking
// that the four phase weights sum to 1.0.
const weightSumTolerance = 0.001

// Defaults applied when a create request omits weight fields.
const (
	defaultTournamentWeight = 1.0
	defaultWeightGroup      = 0.4
	defaultWeightQuarters   = 0.2
	defaultWeightSemis      = 0.2
	defaultWeightFinal      = 0.2
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	GetAllTournaments(ctx context.Context) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error

	AddTeam(ctx context.Context, tournamentID int, input AddTeamInput) (*models.Participation, error)
	RemoveTeam(ctx context.Context, tournamentID, teamID int) error
	ListParticipations(ctx context.Context, tournamentID int) ([]models.Participation, error)
}

type CreateTournamentInput struct {
	Name        string   `json:"name"`
	BracketType *string  `json:"bracket_type"`
	Weight      *float64 `json:"weight"`

	WeightGroup    *float64 `json:"weight_group"`
	WeightQuarters *float64 `json:"weight_quarters"`
	WeightSemis    *float64 `json:"weight_semis"`
	WeightFinal    *float64 `json:"weight_final"`

	WeightSemisOverride *float64 `json:"weight_semis_override"`
	WeightFinalOverride *float64 `json:"weight_final_override"`
}

type UpdateTournamentInput struct {
	Name        *string  `json:"name"`
	BracketType *string  `json:"bracket_type"`
	Weight      *float64 `json:"weight"`

	WeightGroup    *float64 `json:"weight_group"`
	WeightQuarters *float64 `json:"weight_quarters"`
	WeightSemis    *float64 `json:"weight_semis"`
	WeightFinal    *float64 `json:"weight_final"`

	WeightSemisOverride *float64 `json:"weight_semis_override"`
	WeightFinalOverride *float64 `json:"weight_final_override"`
}

// AddTeamInput enters a team into a tournament. Round counts default to 1
// when omitted, matching one map per phase.
type AddTeamInput struct {
	TeamID        int  `json:"team_id"`
	StartsInSemis bool `json:"starts_in_semis"`

	RoundsGroup    *int `json:"rounds_group"`
	RoundsQuarters *int `json:"rounds_quarters"`
	RoundsSemis    *int `json:"rounds_semis"`
	RoundsFinal    *int `json:"rounds_final"`
}

type tournamentService struct {
	tournamentRepo    repositories.TournamentRepository
	teamRepo          repositories.TeamRepository
	participationRepo repositories.ParticipationRepository
	notifier          RankingNotifier
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	participationRepo repositories.ParticipationRepository,
	notifier RankingNotifier,
) TournamentService {
	return &tournamentService{
		tournamentRepo:    tournamentRepo,
		teamRepo:          teamRepo,
		participationRepo: participationRepo,
		notifier:          notifier,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	tournament := &models.Tournament{
		Name:                name,
		BracketType:         models.BracketStandard8,
		Weight:              valueOr(input.Weight, defaultTournamentWeight),
		WeightGroup:         valueOr(input.WeightGroup, defaultWeightGroup),
		WeightQuarters:      valueOr(input.WeightQuarters, defaultWeightQuarters),
		WeightSemis:         valueOr(input.WeightSemis, defaultWeightSemis),
		WeightFinal:         valueOr(input.WeightFinal, defaultWeightFinal),
		WeightSemisOverride: input.WeightSemisOverride,
		WeightFinalOverride: input.WeightFinalOverride,
	}
	if input.BracketType != nil {
		tournament.BracketType = models.BracketType(*input.BracketType)
	}

	if err := validateTournament(tournament); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) GetAllTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.BracketType != nil {
		tournament.BracketType = models.BracketType(*input.BracketType)
	}
	if input.Weight != nil {
		tournament.Weight = *input.Weight
	}
	if input.WeightGroup != nil {
		tournament.WeightGroup = *input.WeightGroup
	}
	if input.WeightQuarters != nil {
		tournament.WeightQuarters = *input.WeightQuarters
	}
	if input.WeightSemis != nil {
		tournament.WeightSemis = *input.WeightSemis
	}
	if input.WeightFinal != nil {
		tournament.WeightFinal = *input.WeightFinal
	}
	if input.WeightSemisOverride != nil {
		tournament.WeightSemisOverride = input.WeightSemisOverride
	}
	if input.WeightFinalOverride != nil {
		tournament.WeightFinalOverride = input.WeightFinalOverride
	}

	if err := validateTournament(tournament); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		default:
			return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
		}
	}

	s.notifier.NotifyRankingChanged("tournament updated")
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	s.notifier.NotifyRankingChanged("tournament deleted")
	return nil
}

func (s *tournamentService) AddTeam(ctx context.Context, tournamentID int, input AddTeamInput) (*models.Participation, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to verify team %d: %w", input.TeamID, err)
	}

	participation := &models.Participation{
		TournamentID:   tournamentID,
		TeamID:         input.TeamID,
		StartsInSemis:  input.StartsInSemis,
		RoundsGroup:    valueOrInt(input.RoundsGroup, 1),
		RoundsQuarters: valueOrInt(input.RoundsQuarters, 1),
		RoundsSemis:    valueOrInt(input.RoundsSemis, 1),
		RoundsFinal:    valueOrInt(input.RoundsFinal, 1),
	}
	if participation.RoundsGroup < 0 || participation.RoundsQuarters < 0 ||
		participation.RoundsSemis < 0 || participation.RoundsFinal < 0 {
		return nil, ErrInvalidRoundCount
	}

	if err := s.participationRepo.Upsert(ctx, participation); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipationTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrParticipationTournamentInvalid):
			return nil, ErrTournamentNotFound
		default:
			return nil, fmt.Errorf("failed to upsert participation: %w", err)
		}
	}

	s.notifier.NotifyRankingChanged("participation changed")
	return participation, nil
}

func (s *tournamentService) RemoveTeam(ctx context.Context, tournamentID, teamID int) error {
	if err := s.participationRepo.Delete(ctx, tournamentID, teamID); err != nil {
		if errors.Is(err, repositories.ErrParticipationNotFound) {
			return ErrParticipationNotFound
		}
		return fmt.Errorf("failed to remove team %d from tournament %d: %w", teamID, tournamentID, err)
	}
	s.notifier.NotifyRankingChanged("participation removed")
	return nil
}

func (s *tournamentService) ListParticipations(ctx context.Context, tournamentID int) ([]models.Participation, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	participations, err := s.participationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations for tournament %d: %w", tournamentID, err)
	}
	return participations, nil
}

func validateTournament(t *models.Tournament) error {
	switch t.BracketType {
	case models.BracketStandard8, models.BracketShort6:
	default:
		return ErrInvalidBracketType
	}
	if t.Weight <= 0 {
		return ErrInvalidTournamentWeight
	}
	sum := t.WeightGroup + t.WeightQuarters + t.WeightSemis + t.WeightFinal
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: got %.4f", ErrPhaseWeightSum, sum)
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func valueOrInt(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
