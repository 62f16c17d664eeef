package http

import (
	"net/http"

	"github.com/mauv0809/fairway-cup/internal/config"
	"github.com/mauv0809/fairway-cup/internal/engine"
	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/notifier"
	"github.com/mauv0809/fairway-cup/internal/pubsub"
	"github.com/mauv0809/fairway-cup/internal/tournament"
)

func NewServer(store tournament.Store, eng *engine.Engine, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Engine:         eng,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Pubsub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/metrics/db", Chain(s.DBMetricsHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments", Chain(s.TournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/tournament", Chain(s.TournamentHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/minigames", Chain(s.MiniGamesHandler(), paramsMiddleware))
	s.Router.Handle("/pairings", Chain(s.PairingsHandler(), paramsMiddleware))
	s.Router.Handle("/scores", Chain(s.SaveScoresHandler(), paramsMiddleware))
	s.Router.Handle("/events/standings-updated", Chain(s.StandingsEventHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
