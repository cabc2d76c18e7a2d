package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstasiak/cs2-tracker/models"
)

func newTournamentServiceForTest() (TournamentService, *fakeTournamentRepo, *fakeTeamRepo, *fakeParticipationRepo, *fakeNotifier) {
	tournamentRepo := newFakeTournamentRepo()
	teamRepo := newFakeTeamRepo()
	participationRepo := newFakeParticipationRepo()
	notifier := &fakeNotifier{}
	svc := NewTournamentService(tournamentRepo, teamRepo, participationRepo, notifier)
	return svc, tournamentRepo, teamRepo, participationRepo, notifier
}

func TestCreateTournamentDefaults(t *testing.T) {
	svc, _, _, _, _ := newTournamentServiceForTest()

	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "IEM Katowice"})
	require.NoError(t, err)

	assert.Equal(t, models.BracketStandard8, tournament.BracketType)
	assert.Equal(t, 1.0, tournament.Weight)
	assert.Equal(t, 0.4, tournament.WeightGroup)
	assert.Equal(t, 0.2, tournament.WeightQuarters)
	assert.Equal(t, 0.2, tournament.WeightSemis)
	assert.Equal(t, 0.2, tournament.WeightFinal)
	assert.Nil(t, tournament.WeightSemisOverride)
	assert.Nil(t, tournament.WeightFinalOverride)
}

func TestCreateTournamentValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateTournamentInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   CreateTournamentInput{Name: "   "},
			wantErr: ErrTournamentNameRequired,
		},
		{
			name:    "unknown bracket type",
			input:   CreateTournamentInput{Name: "Major", BracketType: sptr("double-elim")},
			wantErr: ErrInvalidBracketType,
		},
		{
			name:    "non-positive weight",
			input:   CreateTournamentInput{Name: "Major", Weight: fptr(0)},
			wantErr: ErrInvalidTournamentWeight,
		},
		{
			name: "phase weights off by more than tolerance",
			input: CreateTournamentInput{
				Name:        "Major",
				WeightGroup: fptr(0.5), // 0.5+0.2+0.2+0.2 = 1.1
			},
			wantErr: ErrPhaseWeightSum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _ := newTournamentServiceForTest()
			_, err := svc.CreateTournament(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTournamentWeightSumTolerance(t *testing.T) {
	svc, _, _, _, _ := newTournamentServiceForTest()

	// 0.4001 + 0.2 + 0.2 + 0.2 = 1.0001, within the 0.001 tolerance.
	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:        "BLAST Premier",
		WeightGroup: fptr(0.4001),
	})
	assert.NoError(t, err)

	// 0.403 pushes the sum to 1.003, outside the tolerance.
	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:        "BLAST Premier Fall",
		WeightGroup: fptr(0.403),
	})
	assert.ErrorIs(t, err, ErrPhaseWeightSum)
}

func TestCreateTournamentNameConflict(t *testing.T) {
	svc, _, _, _, _ := newTournamentServiceForTest()

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "ESL Pro League"})
	require.NoError(t, err)

	_, err = svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "ESL Pro League"})
	assert.ErrorIs(t, err, ErrTournamentNameConflict)
}

func TestUpdateTournamentRevalidatesWeights(t *testing.T) {
	svc, _, _, _, notifier := newTournamentServiceForTest()

	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "PGL Major"})
	require.NoError(t, err)

	_, err = svc.UpdateTournament(context.Background(), tournament.ID, UpdateTournamentInput{
		WeightFinal: fptr(0.9),
	})
	assert.ErrorIs(t, err, ErrPhaseWeightSum)

	updated, err := svc.UpdateTournament(context.Background(), tournament.ID, UpdateTournamentInput{
		Weight: fptr(2.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.Weight)
	assert.Contains(t, notifier.reasons, "tournament updated")
}

func TestAddTeamDefaultsRoundsToOne(t *testing.T) {
	svc, _, teamRepo, _, notifier := newTournamentServiceForTest()

	team := models.Team{Name: "NAVI"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "IEM Cologne"})
	require.NoError(t, err)

	participation, err := svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{TeamID: team.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, participation.RoundsGroup)
	assert.Equal(t, 1, participation.RoundsQuarters)
	assert.Equal(t, 1, participation.RoundsSemis)
	assert.Equal(t, 1, participation.RoundsFinal)
	assert.False(t, participation.StartsInSemis)
	assert.Contains(t, notifier.reasons, "participation changed")
}

func TestAddTeamRejectsNegativeRounds(t *testing.T) {
	svc, _, teamRepo, _, _ := newTournamentServiceForTest()

	team := models.Team{Name: "FaZe"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "IEM Dallas"})
	require.NoError(t, err)

	_, err = svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{
		TeamID:      team.ID,
		RoundsSemis: iptr(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidRoundCount)
}

func TestAddTeamUpsertsExistingParticipation(t *testing.T) {
	svc, _, teamRepo, participationRepo, _ := newTournamentServiceForTest()

	team := models.Team{Name: "Vitality"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "EPL S20"})
	require.NoError(t, err)

	first, err := svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{TeamID: team.ID})
	require.NoError(t, err)

	second, err := svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{
		TeamID:        team.ID,
		StartsInSemis: true,
		RoundsGroup:   iptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.StartsInSemis)
	assert.Equal(t, 0, second.RoundsGroup)

	all, err := participationRepo.ListByTournament(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddTeamUnknownTeamOrTournament(t *testing.T) {
	svc, _, teamRepo, _, _ := newTournamentServiceForTest()

	team := models.Team{Name: "G2"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Cluj Major"})
	require.NoError(t, err)

	_, err = svc.AddTeam(context.Background(), 999, AddTeamInput{TeamID: team.ID})
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	_, err = svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{TeamID: 999})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestRemoveTeam(t *testing.T) {
	svc, _, teamRepo, _, notifier := newTournamentServiceForTest()

	team := models.Team{Name: "MOUZ"}
	require.NoError(t, teamRepo.Create(context.Background(), &team))
	tournament, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Spring Final"})
	require.NoError(t, err)
	_, err = svc.AddTeam(context.Background(), tournament.ID, AddTeamInput{TeamID: team.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTeam(context.Background(), tournament.ID, team.ID))
	assert.Contains(t, notifier.reasons, "participation removed")

	err = svc.RemoveTeam(context.Background(), tournament.ID, team.ID)
	assert.ErrorIs(t, err, ErrParticipationNotFound)
}

func sptr(s string) *string   { return &s }
func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }
