package routes

import (
	"github.com/dstasiak/cs2-tracker/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Team        *handlers.TeamHandler
	Player      *handlers.PlayerHandler
	Tournament  *handlers.TournamentHandler
	Performance *handlers.PerformanceHandler
	Ranking     *handlers.RankingHandler
	DataOps     *handlers.DataOpsHandler
	WebSocket   *handlers.WebSocketHandler
	Views       *handlers.ViewsHandler
}

func InitRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.Team.CreateTeam)
			r.Get("/", h.Team.ListTeams)
			r.Get("/{teamID}", h.Team.GetTeamByID)
			r.Put("/{teamID}", h.Team.UpdateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
		})

		r.Route("/players", func(r chi.Router) {
			r.Post("/", h.Player.CreatePlayer)
			r.Get("/", h.Player.ListPlayers)
			r.Get("/{playerID}", h.Player.GetPlayerByID)
			r.Put("/{playerID}", h.Player.UpdatePlayer)
			r.Delete("/{playerID}", h.Player.DeletePlayer)
			r.Post("/{playerID}/photo", h.Player.UploadPhoto)
		})

		r.Get("/search/players/", h.Player.SearchPlayers)

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", h.Tournament.CreateTournament)
			r.Get("/", h.Tournament.ListTournaments)
			r.Get("/{tournamentID}", h.Tournament.GetTournamentByID)
			r.Put("/{tournamentID}", h.Tournament.UpdateTournament)
			r.Delete("/{tournamentID}", h.Tournament.DeleteTournament)

			r.Post("/{tournamentID}/teams", h.Tournament.AddTeam)
			r.Get("/{tournamentID}/teams", h.Tournament.ListParticipations)
			r.Delete("/{tournamentID}/teams/{teamID}", h.Tournament.RemoveTeam)
		})

		r.Post("/performances/", h.Performance.SetPerformance)
		r.Get("/ranking/", h.Ranking.GetRanking)

		r.Delete("/database/clear", h.DataOps.ClearDatabase)
		r.Get("/export", h.DataOps.ExportDatabase)
		r.Post("/import", h.DataOps.ImportDatabase)
	})

	router.Get("/ws/ranking", h.WebSocket.ServeRankingFeed)

	router.Get("/", h.Views.Index)
	router.Get("/ranking", h.Views.RankingPage)
	router.Get("/teams", h.Views.TeamsPage)
	router.Get("/tournaments", h.Views.TournamentsPage)

	return router
}
