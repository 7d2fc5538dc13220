package http

import (
	"net/http"

	gorilla "github.com/gorilla/handlers"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/http/handlers"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
)

func NewServer(store club.ClubStore, engine booking.Engine, sessions auth.Sessions, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Engine:         engine,
		Sessions:       sessions,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	// The web frontend is served from another origin.
	server.handler = gorilla.CORS(
		gorilla.AllowedOrigins([]string{"*"}),
		gorilla.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		gorilla.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(server.Router)
	return server
}

func (s *Server) routes() {
	authed := authMiddleware(s.Sessions)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(handlers.ClearStoreHandler(s.Store), paramsMiddleware))

	s.Router.Handle("POST /auth/login", Chain(handlers.LoginHandler(s.Store, s.Sessions), paramsMiddleware))
	s.Router.Handle("GET /me", Chain(handlers.MeHandler(), paramsMiddleware, authed))

	s.Router.Handle("POST /admin/courts", Chain(handlers.CreateCourtHandler(s.Store), paramsMiddleware, authed))
	s.Router.Handle("GET /courts", Chain(handlers.ListCourtsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /admin/equipment", Chain(handlers.CreateEquipmentHandler(s.Store), paramsMiddleware, authed))
	s.Router.Handle("GET /equipment", Chain(handlers.ListEquipmentHandler(s.Store), paramsMiddleware))

	s.Router.Handle("POST /bookings", Chain(handlers.CreateBookingHandler(s.Engine), paramsMiddleware, authed))
	s.Router.Handle("DELETE /bookings/{id}", Chain(handlers.CancelBookingHandler(s.Engine), paramsMiddleware, authed))
	s.Router.Handle("GET /my/bookings", Chain(handlers.MyBookingsHandler(s.Engine), paramsMiddleware, authed))
	s.Router.Handle("GET /courts/{id}/bookings", Chain(handlers.CourtBookingsHandler(s.Engine), paramsMiddleware))
	s.Router.Handle("POST /gear/reservations", Chain(handlers.CreateGearReservationHandler(s.Engine), paramsMiddleware, authed))

	s.Router.Handle("POST /admin/tournaments", Chain(handlers.CreateTournamentHandler(s.Store), paramsMiddleware, authed))
	s.Router.Handle("GET /tournaments", Chain(handlers.ListTournamentsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /results", Chain(handlers.SubmitResultHandler(s.Store, s.pubsub), paramsMiddleware, authed))
	s.Router.Handle("GET /results", Chain(handlers.ListResultsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(handlers.LeaderboardHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(handlers.PlayerDirectoryHandler(s.Store), paramsMiddleware))

	s.Router.Handle("POST /notify-booking", Chain(handlers.NotifyBookingHandler(s.Store, s.Notifier, s.pubsub), paramsMiddleware))
	s.Router.Handle("POST /notify-result", Chain(handlers.NotifyResultHandler(s.Store, s.Notifier, s.pubsub), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
