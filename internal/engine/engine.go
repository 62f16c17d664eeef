package engine

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/pubsub"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/mauv0809/fairway-cup/internal/tournament"
)

// New creates a new Engine.
func New(store Store, notifier Notifier, metrics metrics.Metrics, metricsStore metrics.MetricsStore, pubsub pubsub.PubSubClient) *Engine {
	return &Engine{
		store:        store,
		pubsub:       pubsub,
		notifier:     notifier,
		metrics:      metrics,
		metricsStore: metricsStore,
	}
}

// Standings runs the full scoring pipeline for a tournament and persists any
// freshly generated pairings. With dryRun set, nothing is written or
// published; the computed result is still returned.
func (e *Engine) Standings(tournamentID string, dryRun bool) (*scoring.Result, error) {
	startTime := time.Now()

	snap, prevOrder, err := e.store.LoadSnapshot(tournamentID)
	if err != nil {
		log.Error("Failed to load tournament snapshot", "error", err, "tournamentID", tournamentID)
		return nil, err
	}

	result := scoring.ComputeStandings(snap, prevOrder)

	e.metrics.IncPipelineRuns()
	e.metricsStore.Increment("pipeline_runs")
	duration := time.Since(startTime).Seconds()
	e.metrics.ObservePipelineDuration(duration)
	log.Debug("Scoring pipeline finished", "tournamentID", tournamentID, "duration", duration)

	for _, rv := range result.Rounds {
		if rv.Err != nil {
			log.Warn("Round skipped due to configuration error", "roundID", rv.RoundID, "error", rv.Err)
		}
		if !rv.PersistPairing {
			continue
		}
		log.Info("Persisting generated pairing", "roundID", rv.RoundID, "groups", len(rv.Groups))
		if !dryRun {
			if err := e.store.SavePairing(rv.RoundID, rv.Groups); err != nil {
				log.Error("Failed to persist pairing", "error", err, "roundID", rv.RoundID)
				continue
			}
			e.pubsub.SendMessage(pubsub.EventPairingsGenerated, PairingsEvent{
				TournamentID: tournamentID,
				RoundID:      rv.RoundID,
				Groups:       len(rv.Groups),
			})
		}
		e.metrics.IncPairingsGenerated()
		e.notifier.SendPairings(roundName(snap, rv.RoundID), rv.Groups, snap.Players, dryRun)
	}

	return result, nil
}

// SaveScores applies a full score save: the standings order before the save
// is captured for position-change indicators, the score set replaced, and the
// pipeline re-run. The fresh standings are announced. With dryRun set, nothing
// is written or published.
func (e *Engine) SaveScores(tournamentID string, scores []tournament.ScoreEntry, miniScores []tournament.MiniGameScoreEntry, dryRun bool) (*scoring.Result, error) {
	log.Info("Saving scores", "tournamentID", tournamentID, "scores", len(scores), "miniScores", len(miniScores), "dryRun", dryRun)

	snap, prevOrder, err := e.store.LoadSnapshot(tournamentID)
	if err != nil {
		log.Error("Failed to load tournament snapshot", "error", err, "tournamentID", tournamentID)
		return nil, err
	}

	// The order before this save becomes the baseline for movement arrows.
	before := scoring.ComputeStandings(snap, prevOrder)
	order := scoring.Order(before.Standings)

	if !dryRun {
		if err := e.store.SetPreviousStandings(tournamentID, order); err != nil {
			log.Error("Failed to store previous standings", "error", err, "tournamentID", tournamentID)
			return nil, err
		}
		if err := e.store.SaveScores(tournamentID, scores, miniScores); err != nil {
			log.Error("Failed to save scores", "error", err, "tournamentID", tournamentID)
			return nil, err
		}
		e.pubsub.SendMessage(pubsub.EventScoresSaved, StandingsEvent{
			TournamentID: tournamentID,
			Order:        order,
		})
	}
	e.metrics.IncScoreSaves()
	e.metricsStore.Increment("score_saves")

	result, err := e.Standings(tournamentID, dryRun)
	if err != nil {
		return nil, err
	}

	if len(result.Standings) > 0 {
		e.notifier.SendStandingsUpdate(snap.Name, result.Standings, result.TeamTotals, dryRun)
		if !dryRun {
			e.pubsub.SendMessage(pubsub.EventStandingsUpdated, StandingsEvent{
				TournamentID: tournamentID,
				Leader:       result.Standings[0].PlayerID,
				Order:        scoring.Order(result.Standings),
			})
		}
	}

	if len(result.MiniGames) > 0 && finalRoundScored(snap, scores) {
		log.Info("Final round scored, announcing side game podium", "tournamentID", tournamentID)
		e.notifier.SendMiniGamePodium(snap.Name, result.MiniGames, dryRun)
	}

	return result, nil
}

// finalRoundScored reports whether this save puts scores on the tournament's
// last round, the point where the side-game podium gets announced.
func finalRoundScored(snap *scoring.Snapshot, scores []tournament.ScoreEntry) bool {
	var lastID string
	lastOrder := -1
	for _, r := range snap.Rounds {
		if r.Order > lastOrder {
			lastOrder = r.Order
			lastID = r.ID
		}
	}
	if lastID == "" {
		return false
	}
	for _, sc := range scores {
		if sc.RoundID == lastID && sc.Score > 0 {
			return true
		}
	}
	return false
}

func roundName(snap *scoring.Snapshot, roundID string) string {
	for _, r := range snap.Rounds {
		if r.ID == roundID {
			return r.Name
		}
	}
	return roundID
}
