package engine

import (
	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/pubsub"
)

// Engine handles the business logic of running the scoring pipeline.
type Engine struct {
	store        Store
	pubsub       pubsub.PubSubClient
	notifier     Notifier
	metrics      metrics.Metrics
	metricsStore metrics.MetricsStore
}

// StandingsEvent is the payload published when standings change.
type StandingsEvent struct {
	TournamentID string   `msgpack:"tournament_id"`
	Leader       string   `msgpack:"leader"`
	Order        []string `msgpack:"order"`
}

// PairingsEvent is the payload published when a pairing is generated.
type PairingsEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	RoundID      string `msgpack:"round_id"`
	Groups       int    `msgpack:"groups"`
}
