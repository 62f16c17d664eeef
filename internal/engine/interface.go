package engine

import (
	"github.com/mauv0809/fairway-cup/internal/notifier"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/mauv0809/fairway-cup/internal/tournament"
)

// Store defines the database operations required by the engine.
type Store interface {
	LoadSnapshot(tournamentID string) (*scoring.Snapshot, []string, error)
	SaveScores(tournamentID string, scores []tournament.ScoreEntry, miniScores []tournament.MiniGameScoreEntry) error
	SavePairing(roundID string, groups []scoring.Group) error
	SetPreviousStandings(tournamentID string, order []string) error
}

// Notifier defines the notification operations required by the engine.
type Notifier interface {
	notifier.Notifier
}
