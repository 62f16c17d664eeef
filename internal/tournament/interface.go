package tournament

import "github.com/mauv0809/fairway-cup/internal/scoring"

// Store defines the interface for persisting and loading tournament data.
type Store interface {
	CreateTournament(t *Tournament) error
	GetTournament(id string) (*Tournament, error)
	ListTournaments(ownerID string) ([]Tournament, error)
	DeleteTournament(id string) error

	UpsertPlayers(ownerID string, players []scoring.Player) error
	GetAllPlayers(ownerID string) ([]scoring.Player, error)

	// LoadSnapshot collects the complete immutable input for the scoring
	// pipeline plus the last-saved standings order.
	LoadSnapshot(tournamentID string) (*scoring.Snapshot, []string, error)

	// SaveScores fully replaces the score set for the tournament's
	// (round x player) key space: a delete-then-insert, not a merge. Rounds
	// with any recorded score are frozen for pairing afterwards.
	SaveScores(tournamentID string, scores []ScoreEntry, miniScores []MiniGameScoreEntry) error

	// SavePairing writes back a freshly generated pairing for a round.
	SavePairing(roundID string, groups []scoring.Group) error

	SetPreviousStandings(tournamentID string, order []string) error
}
