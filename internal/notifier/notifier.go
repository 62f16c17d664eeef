package notifier

import (
	"github.com/mauv0809/fairway-cup/internal/scoring"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For standings changes after a score save
	SendStandingsUpdate(tournamentName string, standings []scoring.Standing, teamTotals []scoring.TeamTotal, dryRun bool) error
	// For freshly generated scramble pairings
	SendPairings(roundName string, groups []scoring.Group, players []scoring.Player, dryRun bool) error
	// For the mini-game podium
	SendMiniGamePodium(tournamentName string, standings []scoring.MiniGameStanding, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(tournamentName string, standings []scoring.Standing) (any, error)
}
