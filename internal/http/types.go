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

type Server struct {
	Store          tournament.Store
	Engine         *engine.Engine
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Pubsub         pubsub.PubSubClient
	Router         *http.ServeMux
}
