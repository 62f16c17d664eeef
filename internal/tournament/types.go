package tournament

import (
	"database/sql"
	"sync"

	"github.com/mauv0809/fairway-cup/internal/scoring"
)

// store handles all database operations for tournaments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Tournament is the organizer-facing aggregate: the tournament record plus
// its rounds, mini-games and linked players.
type Tournament struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"owner_id"`
	Name      string              `json:"name"`
	TeamMode  bool                `json:"team_mode"`
	Teams     *scoring.TeamConfig `json:"teams,omitempty"`
	Players   []scoring.Player    `json:"players,omitempty"`
	Rounds    []scoring.Round     `json:"rounds,omitempty"`
	MiniGames []scoring.MiniGame  `json:"mini_games,omitempty"`
}

// ScoreEntry is one recorded score in a save request.
type ScoreEntry struct {
	RoundID  string  `json:"round_id"`
	PlayerID string  `json:"player_id"`
	Score    float64 `json:"score"`
}

// MiniGameScoreEntry is one recorded mini-game value in a save request.
type MiniGameScoreEntry struct {
	MiniGameID string  `json:"mini_game_id"`
	RoundID    string  `json:"round_id"`
	PlayerID   string  `json:"player_id"`
	Value      float64 `json:"value"`
}
