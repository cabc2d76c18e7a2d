package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstasiak/cs2-tracker/models"
)

func iptr(v int) *int { return &v }

func snapshotFixture() Snapshot {
	tour := evenTournament()
	teamA := models.Team{ID: 1, Name: "Astralis"}
	teamB := models.Team{ID: 2, Name: "Vitality"}

	fullRounds := models.Participation{
		TournamentID:   tour.ID,
		TeamID:         teamA.ID,
		RoundsGroup:    1,
		RoundsQuarters: 1,
		RoundsSemis:    1,
		RoundsFinal:    1,
	}
	shortRounds := models.Participation{
		TournamentID:  tour.ID,
		TeamID:        teamB.ID,
		StartsInSemis: true,
		RoundsGroup:   1,
		RoundsSemis:   1,
		RoundsFinal:   1,
	}

	return Snapshot{
		Players: []models.Player{
			{ID: 1, Nickname: "dev1ce", TeamID: iptr(teamA.ID), Team: &teamA},
			{ID: 2, Nickname: "ZywOo", TeamID: iptr(teamB.ID), Team: &teamB},
			{ID: 3, Nickname: "lurker"},
		},
		Performances: map[int][]models.Performance{
			1: {{
				PlayerID:       1,
				TournamentID:   tour.ID,
				RatingGroup:    fptr(1.1),
				RatingQuarters: fptr(1.2),
				RatingSemis:    fptr(1.3),
				RatingFinal:    fptr(1.4),
				Tournament:     &tour,
			}},
			2: {{
				PlayerID:     2,
				TournamentID: tour.ID,
				RatingGroup:  fptr(0.9),
				RatingSemis:  fptr(1.0),
				RatingFinal:  fptr(1.1),
				Tournament:   &tour,
			}},
			3: {{
				PlayerID:     3,
				TournamentID: tour.ID,
				RatingGroup:  fptr(1.9),
				Tournament:   &tour,
			}},
		},
		Participations: map[ParticipationKey]models.Participation{
			{TournamentID: tour.ID, TeamID: teamA.ID}: fullRounds,
			{TournamentID: tour.ID, TeamID: teamB.ID}: shortRounds,
		},
	}
}

func TestBuildRanking(t *testing.T) {
	got := Build(snapshotFixture())
	require.Len(t, got, 3)

	// dev1ce: full standard path, 850 points.
	assert.Equal(t, models.RankingEntry{
		PlayerID:    1,
		Nickname:    "dev1ce",
		TeamName:    "Astralis",
		TotalPoints: 850,
	}, got[0])

	// ZywOo: short path, 206.67 rounds to 207.
	assert.Equal(t, 207, got[1].TotalPoints)
	assert.Equal(t, "Vitality", got[1].TeamName)

	// lurker has no team, so no participation resolves and the tournament
	// contributes nothing despite the big group rating.
	assert.Equal(t, models.RankingEntry{
		PlayerID:    3,
		Nickname:    "lurker",
		TeamName:    models.NoTeamName,
		TotalPoints: 0,
	}, got[2])
}

func TestBuildSortDescending(t *testing.T) {
	got := Build(snapshotFixture())
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalPoints, got[i].TotalPoints)
	}
}

func TestBuildDeterministic(t *testing.T) {
	snap := snapshotFixture()
	first := Build(snap)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Build(snap))
	}
}

func TestBuildStableOnTies(t *testing.T) {
	// Players with no performances all score zero; input order must hold.
	snap := Snapshot{
		Players: []models.Player{
			{ID: 7, Nickname: "alpha"},
			{ID: 3, Nickname: "bravo"},
			{ID: 5, Nickname: "charlie"},
		},
	}
	got := Build(snap)
	require.Len(t, got, 3)
	assert.Equal(t, []int{7, 3, 5}, []int{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID})
}

func TestBuildEmptySnapshot(t *testing.T) {
	got := Build(Snapshot{})
	assert.Empty(t, got)
}

func TestBuildSkipsUnresolvedTournament(t *testing.T) {
	snap := Snapshot{
		Players: []models.Player{{ID: 1, Nickname: "solo"}},
		Performances: map[int][]models.Performance{
			1: {{PlayerID: 1, TournamentID: 42, RatingGroup: fptr(1.5)}},
		},
	}
	got := Build(snap)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].TotalPoints)
}
