package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BookingAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_booking_attempts_total",
			Help: "The total number of reservation creation attempts.",
		}),
		BookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_booking_conflicts_total",
			Help: "The total number of reservations rejected due to an overlapping interval.",
		}),
		BookingCancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_booking_cancellations_total",
			Help: "The total number of reservations cancelled by their owner.",
		}),
		ConflictCheckDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_booking_conflict_check_duration_seconds",
			Help:    "The duration of the overlap check on reservation creation.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BookingAttempts,
		s.BookingConflicts,
		s.BookingCancellations,
		s.ConflictCheckDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBookingAttempts() {
	s.BookingAttempts.Inc()
}

func (s *Service) IncBookingConflicts() {
	s.BookingConflicts.Inc()
}

func (s *Service) IncBookingCancellations() {
	s.BookingCancellations.Inc()
}

func (s *Service) ObserveConflictCheckDuration(duration float64) {
	s.ConflictCheckDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
