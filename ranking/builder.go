// Package ranking implements the global ranking computation: per-phase
// performance ratings are converted into points, aggregated per tournament
// with bracket-path and round-share weighting, and summed into a sorted
// leaderboard. The engine is pure and stateless; it operates on an immutable
// snapshot materialized by the caller and never touches storage itself.
package ranking

import (
	"math"
	"sort"

	"github.com/dstasiak/cs2-tracker/models"
)

// ParticipationKey identifies a team's entry in a tournament.
type ParticipationKey struct {
	TournamentID int
	TeamID       int
}

// Snapshot is the immutable input of one ranking computation: every player
// (with team resolved), their performances (with tournament resolved), and
// the participation rows keyed by (tournament, team).
type Snapshot struct {
	Players        []models.Player
	Performances   map[int][]models.Performance
	Participations map[ParticipationKey]models.Participation
}

// PerformancesFor returns the performance records of one player.
func (s Snapshot) PerformancesFor(playerID int) []models.Performance {
	return s.Performances[playerID]
}

// Participation looks up a team's participation in a tournament.
func (s Snapshot) Participation(tournamentID, teamID int) (models.Participation, bool) {
	p, ok := s.Participations[ParticipationKey{TournamentID: tournamentID, TeamID: teamID}]
	return p, ok
}

// Build computes the leaderboard: each player's tournament scores are summed,
// rounded to the nearest whole point, and sorted descending. The sort is
// stable, so ties keep player iteration order and repeated calls over the
// same snapshot return identical output.
func Build(snap Snapshot) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, len(snap.Players))

	for _, player := range snap.Players {
		total := 0.0
		for _, perf := range snap.PerformancesFor(player.ID) {
			if perf.Tournament == nil {
				continue
			}
			var part *models.Participation
			if player.TeamID != nil {
				if p, ok := snap.Participation(perf.TournamentID, *player.TeamID); ok {
					part = &p
				}
			}
			total += TournamentPoints(perf, *perf.Tournament, part)
		}

		teamName := models.NoTeamName
		if player.Team != nil {
			teamName = player.Team.Name
		}

		entries = append(entries, models.RankingEntry{
			PlayerID:    player.ID,
			Nickname:    player.Nickname,
			TeamName:    teamName,
			TotalPoints: int(math.Round(total)),
			PhotoURL:    player.PhotoURL,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}
