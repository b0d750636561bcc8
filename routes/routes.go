package routes

import (
	"github.com/Polilla23/kempes-server/handlers"
	"github.com/Polilla23/kempes-server/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	competitionHandler *handlers.CompetitionHandler,
	fixtureHandler *handlers.FixtureHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/competitions", func(r chi.Router) {
		r.Get("/{competitionID}", competitionHandler.GetCompetitionOverview)
		r.Get("/{competitionID}/matches", matchHandler.ListCompetitionMatches)

		// Mutating fixture routes require a manager token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.RequireRole("manager"))

			r.Post("/", competitionHandler.CreateCompetition)
			r.Post("/{competitionID}/fixtures/league", fixtureHandler.CreateLeagueFixture)
			r.Post("/{competitionID}/fixtures/groups", fixtureHandler.CreateGroupStageFixtures)
			r.Post("/{competitionID}/fixtures/knockout", fixtureHandler.CreateKnockoutFixture)
			r.Post("/{competitionID}/groups/{groupRef}/qualifier", matchHandler.AssignGroupQualifier)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(jwtSecret)))
			r.Use(middleware.RequireRole("manager"))

			r.Post("/{matchID}/result", matchHandler.FinishMatch)
		})
	})

	router.Get("/ws/competitions/{competitionID}", webSocketHandler.ServeWs)
}
