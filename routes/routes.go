package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/szl-run/szl-backend/docs"
	"github.com/szl-run/szl-backend/handlers"
	"github.com/szl-run/szl-backend/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Event       *handlers.EventHandler
	Tag         *handlers.TagHandler
	Participate *handlers.ParticipateHandler
	Donation    *handlers.DonationHandler
	Round       *handlers.RoundHandler
	Team        *handlers.TeamHandler
	Runner      *handlers.RunnerHandler
	Category    *handlers.CategoryHandler
	Gift        *handlers.GiftHandler
	Receive     *handlers.ReceiveHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

// SetupRoutes собирает все маршруты API. Чтение открыто (табло и киоски
// ходят без токена), мутации закрыты JWT-аутентификацией.
func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Get("/dashboard", h.Dashboard.Stats)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Event.GetAllEvents)
			r.Get("/{eventID}", h.Event.GetEventByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Event.CreateEvent)
				r.Put("/{eventID}", h.Event.UpdateEvent)
				r.Delete("/{eventID}", h.Event.DeleteEvent)
				r.Post("/{eventID}/logo", h.Event.UploadEventLogo)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Tag.GetAllTags)
			r.Get("/{tagID}", h.Tag.GetTagByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Tag.CreateTag)
				r.Put("/{tagID}", h.Tag.SetTagStatus)
				r.Delete("/{tagID}", h.Tag.DeleteTag)
			})
		})

		r.Route("/participates", func(r chi.Router) {
			r.Get("/", h.Participate.GetAllParticipates)
			r.Get("/tag/{tagID}", h.Participate.GetParticipateByTag)
			r.Get("/{participateID}", h.Participate.GetParticipateByID)
			r.Get("/{participateID}/rounds", h.Round.GetRoundsByParticipate)
			r.Get("/{participateID}/rounds/count", h.Round.CountRoundsByParticipate)
			r.Get("/{participateID}/best-time", h.Round.GetBestTimeByParticipate)
			r.Get("/{participateID}/donation", h.Donation.GetDonationByParticipate)
			r.Get("/{participateID}/receives", h.Receive.GetReceivesByParticipate)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Participate.CreateParticipate)
				r.Put("/{participateID}", h.Participate.UpdateParticipate)
				r.Delete("/{participateID}", h.Participate.DeleteParticipate)
			})
		})

		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", h.Round.GetAllRounds)
			r.Get("/best-times", h.Round.GetBestTimes)
			r.Get("/{roundID}", h.Round.GetRoundByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Round.RecordRound)
				r.Put("/{roundID}", h.Round.UpdateRound)
				r.Delete("/{roundID}", h.Round.DeleteRound)
			})
		})

		r.Route("/donations", func(r chi.Router) {
			r.Get("/", h.Donation.GetAllDonations)
			r.Get("/{donationID}", h.Donation.GetDonationByID)

			// Запись доната открыта: киоски пожертвований не авторизуются.
			r.Post("/", h.Donation.RecordDonation)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Put("/{donationID}", h.Donation.UpdateDonation)
				r.Delete("/{donationID}", h.Donation.DeleteDonation)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.GetAllTeams)
			r.Get("/{teamID}", h.Team.GetTeamByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Team.CreateTeam)
				r.Put("/{teamID}", h.Team.UpdateTeam)
				r.Delete("/{teamID}", h.Team.DeleteTeam)
			})
		})

		r.Route("/runners", func(r chi.Router) {
			r.Get("/", h.Runner.GetAllRunners)
			r.Get("/{runnerID}", h.Runner.GetRunnerByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Runner.CreateRunner)
				r.Put("/{runnerID}", h.Runner.UpdateRunner)
				r.Delete("/{runnerID}", h.Runner.DeleteRunner)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.GetAllCategories)
			r.Get("/{categoryID}", h.Category.GetCategoryByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Category.CreateCategory)
				r.Put("/{categoryID}", h.Category.UpdateCategory)
				r.Delete("/{categoryID}", h.Category.DeleteCategory)
			})
		})

		r.Route("/gifts", func(r chi.Router) {
			r.Get("/", h.Gift.GetAllGifts)
			r.Get("/{giftID}", h.Gift.GetGiftByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Gift.CreateGift)
				r.Put("/{giftID}", h.Gift.UpdateGift)
				r.Delete("/{giftID}", h.Gift.DeleteGift)
			})
		})

		r.Route("/receives", func(r chi.Router) {
			r.Get("/", h.Receive.GetAllReceives)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Receive.CreateReceive)
				r.Delete("/{participateID}/{giftID}", h.Receive.DeleteReceive)
			})
		})
	})

	// Live-фид для табло.
	router.Get("/ws/events/{eventID}/rounds", h.WebSocket.ServeRoundsFeed)

	// Swagger UI поверх встроенного OpenAPI-описания.
	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(docs.OpenAPISpec)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
