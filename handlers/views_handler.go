package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/dstasiak/cs2-tracker/services"
)

//go:embed templates/*.html
var templateFS embed.FS

type ViewsHandler struct {
	teamService       services.TeamService
	playerService     services.PlayerService
	tournamentService services.TournamentService
	rankingService    services.RankingService
	templates         *template.Template
}

func NewViewsHandler(
	teamService services.TeamService,
	playerService services.PlayerService,
	tournamentService services.TournamentService,
	rankingService services.RankingService,
) *ViewsHandler {
	return &ViewsHandler{
		teamService:       teamService,
		playerService:     playerService,
		tournamentService: tournamentService,
		rankingService:    rankingService,
		templates: template.Must(template.New("").
			Funcs(template.FuncMap{"add": func(a, b int) int { return a + b }}).
			ParseFS(templateFS, "templates/*.html")),
	}
}

func (h *ViewsHandler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Index renders the players overview page.
func (h *ViewsHandler) Index(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.GetAllPlayers(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	h.render(w, r, "index.html", map[string]any{"Players": players})
}

// RankingPage renders the current ranking. It goes through the same
// ranking service as the JSON endpoint, so both always agree.
func (h *ViewsHandler) RankingPage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rankingService.GetRanking(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	h.render(w, r, "ranking.html", map[string]any{"Entries": entries})
}

// TeamsPage renders the team list.
func (h *ViewsHandler) TeamsPage(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	h.render(w, r, "teams.html", map[string]any{"Teams": teams})
}

// TournamentsPage renders the tournament list.
func (h *ViewsHandler) TournamentsPage(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.GetAllTournaments(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	h.render(w, r, "tournaments.html", map[string]any{"Tournaments": tournaments})
}
