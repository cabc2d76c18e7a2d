package services

import (
	"context"
	"sort"

	"github.com/dstasiak/cs2-tracker/models"
	"github.com/dstasiak/cs2-tracker/repositories"
)

// In-memory repository fakes. They keep the sentinel-error contract of the
// postgres implementations so service error mapping can be exercised.

type fakeNotifier struct {
	reasons []string
}

func (n *fakeNotifier) NotifyRankingChanged(reason string) {
	n.reasons = append(n.reasons, reason)
}

type fakeTeamRepo struct {
	teams  map[int]models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]models.Team), nextID: 1}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, key *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = key
	r.teams[id] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakePlayerRepo struct {
	players map[int]models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]models.Player), nextID: 1}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	for _, p := range r.players {
		if p.Nickname == player.Nickname {
			return repositories.ErrPlayerNicknameConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &player, nil
}

func (r *fakePlayerRepo) ListWithTeam(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) UpdatePhotoKey(_ context.Context, id int, key *string) error {
	player, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.PhotoKey = key
	r.players[id] = player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeTournamentRepo struct {
	tournaments map[int]models.Tournament
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[int]models.Tournament), nextID: 1}
}

func (r *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	for _, t := range r.tournaments {
		if t.Name == tournament.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	tournament.ID = r.nextID
	r.nextID++
	r.tournaments[tournament.ID] = *tournament
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &tournament, nil
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[tournament.ID] = *tournament
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeParticipationRepo struct {
	participations map[int]models.Participation
	nextID         int
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{participations: make(map[int]models.Participation), nextID: 1}
}

func (r *fakeParticipationRepo) Upsert(_ context.Context, p *models.Participation) error {
	for id, existing := range r.participations {
		if existing.TournamentID == p.TournamentID && existing.TeamID == p.TeamID {
			p.ID = id
			r.participations[id] = *p
			return nil
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.participations[p.ID] = *p
	return nil
}

func (r *fakeParticipationRepo) FindByTournamentAndTeam(_ context.Context, tournamentID, teamID int) (*models.Participation, error) {
	for _, p := range r.participations {
		if p.TournamentID == tournamentID && p.TeamID == teamID {
			return &p, nil
		}
	}
	return nil, repositories.ErrParticipationNotFound
}

func (r *fakeParticipationRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Participation, error) {
	var out []models.Participation
	for _, p := range r.participations {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeParticipationRepo) ListAll(_ context.Context) ([]models.Participation, error) {
	out := make([]models.Participation, 0, len(r.participations))
	for _, p := range r.participations {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeParticipationRepo) Delete(_ context.Context, tournamentID, teamID int) error {
	for id, p := range r.participations {
		if p.TournamentID == tournamentID && p.TeamID == teamID {
			delete(r.participations, id)
			return nil
		}
	}
	return repositories.ErrParticipationNotFound
}

// fakePerformanceRepo resolves the Tournament pointer on ListByPlayer when
// given a tournament repo, mirroring the join the postgres version does.
type fakePerformanceRepo struct {
	performances map[int]models.Performance
	tournaments  *fakeTournamentRepo
	nextID       int
}

func newFakePerformanceRepo(tournaments *fakeTournamentRepo) *fakePerformanceRepo {
	return &fakePerformanceRepo{
		performances: make(map[int]models.Performance),
		tournaments:  tournaments,
		nextID:       1,
	}
}

func mergeRating(existing, incoming *float64) *float64 {
	if incoming != nil {
		return incoming
	}
	return existing
}

func (r *fakePerformanceRepo) Upsert(_ context.Context, perf *models.Performance) error {
	for id, existing := range r.performances {
		if existing.PlayerID == perf.PlayerID && existing.TournamentID == perf.TournamentID {
			perf.ID = id
			perf.RatingGroup = mergeRating(existing.RatingGroup, perf.RatingGroup)
			perf.RatingQuarters = mergeRating(existing.RatingQuarters, perf.RatingQuarters)
			perf.RatingSemis = mergeRating(existing.RatingSemis, perf.RatingSemis)
			perf.RatingFinal = mergeRating(existing.RatingFinal, perf.RatingFinal)
			r.performances[id] = *perf
			return nil
		}
	}
	perf.ID = r.nextID
	r.nextID++
	r.performances[perf.ID] = *perf
	return nil
}

func (r *fakePerformanceRepo) ListByPlayer(_ context.Context, playerID int) ([]models.Performance, error) {
	var out []models.Performance
	for _, p := range r.performances {
		if p.PlayerID == playerID {
			if r.tournaments != nil {
				if t, ok := r.tournaments.tournaments[p.TournamentID]; ok {
					tCopy := t
					p.Tournament = &tCopy
				}
			}
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TournamentID < out[j].TournamentID })
	return out, nil
}

func (r *fakePerformanceRepo) ListAll(_ context.Context) ([]models.Performance, error) {
	out := make([]models.Performance, 0, len(r.performances))
	for _, p := range r.performances {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
