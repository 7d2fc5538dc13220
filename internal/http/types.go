package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/booking"
	"github.com/mauv0809/courtside/internal/club"
	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
)

type Server struct {
	Store          club.ClubStore
	Engine         booking.Engine
	Sessions       auth.Sessions
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux

	pubsub  pubsub.PubSubClient
	handler http.Handler
}
