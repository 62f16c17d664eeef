package scoring

// Mode is the game mode played in a round.
type Mode string

const (
	ModeStroke         Mode = "stroke"
	ModeHandicapStroke Mode = "handicap_stroke"
	ModePointsBogey    Mode = "points_bogey"
	ModeScramble       Mode = "scramble_2man"
	ModeBestBall       Mode = "best_ball"
)

// PairingStrategy decides how scramble partners are chosen.
type PairingStrategy string

const (
	PairByPosition PairingStrategy = "position"
	PairByHandicap PairingStrategy = "handicap"
	PairCustom     PairingStrategy = "custom"
)

// PairingState tracks whether a round's pairing may still be regenerated.
// A pairing is frozen as soon as any score is recorded for the round.
type PairingState string

const (
	PairingUnset  PairingState = "unset"
	PairingFrozen PairingState = "frozen"
)

// TeamKey identifies one of the two tournament teams.
type TeamKey string

const (
	TeamRed   TeamKey = "red"
	TeamGreen TeamKey = "green"
)

// Player is a tournament participant.
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Handicap  float64 `json:"handicap"`
	HomeClub  string  `json:"home_club,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
}

// ScrambleConfig carries the scramble-only settings of a round.
type ScrambleConfig struct {
	WithHandicap bool            `json:"with_handicap"`
	Strategy     PairingStrategy `json:"strategy"`
	// LowPct and HighPct weight the lower and higher handicap of a pair.
	// They are independent values in [0,100]; no sum-to-100 constraint.
	LowPct  float64 `json:"low_pct"`
	HighPct float64 `json:"high_pct"`
	// CustomPairs maps a player to their partner. Always symmetric.
	CustomPairs map[string]string `json:"custom_pairs,omitempty"`
}

// Group is an ordered list of player IDs playing together in a scramble
// round. The first entry is the pair leader whose score is authoritative.
// An odd player count leaves one single-element group.
type Group []string

// Round is one round of a tournament. Scramble is only set when Mode is
// ModeScramble.
type Round struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Order        int             `json:"order"`
	Holes        int             `json:"holes"`
	Info         string          `json:"info,omitempty"`
	Mode         Mode            `json:"mode"`
	Scramble     *ScrambleConfig `json:"scramble,omitempty"`
	Pairing      []Group         `json:"pairing,omitempty"`
	PairingState PairingState    `json:"pairing_state"`
}

// TeamConfig holds the two-team setup of a tournament.
type TeamConfig struct {
	Names       map[TeamKey]string `json:"names"`
	Colors      map[TeamKey]string `json:"colors"`
	Assignments map[string]TeamKey `json:"assignments"`
}

// MiniGame is a supplementary contest tracked alongside the round score.
type MiniGame struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	SubtractFromScore bool    `json:"subtract_from_score"`
	DeductionValue    float64 `json:"deduction_value"`
}

// ScoreKey addresses one recorded score.
type ScoreKey struct {
	RoundID  string
	PlayerID string
}

// MiniScoreKey addresses one recorded mini-game value.
type MiniScoreKey struct {
	MiniGameID string
	RoundID    string
	PlayerID   string
}

// PairKey is the canonical identity of an unordered player pair. The lower
// ID always goes first so (A,B) and (B,A) collapse to the same key.
type PairKey struct {
	Low  string
	High string
}

// NewPairKey builds the canonical key for two player IDs.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// Snapshot is the complete immutable input to the scoring pipeline. It is
// collected once per user action; no stage mutates it.
type Snapshot struct {
	TournamentID   string                   `json:"tournament_id"`
	Name           string                   `json:"name"`
	TeamMode       bool                     `json:"team_mode"`
	Teams          *TeamConfig              `json:"teams,omitempty"`
	Players        []Player                 `json:"players"`
	Rounds         []Round                  `json:"rounds"`
	Scores         map[ScoreKey]float64     `json:"-"`
	MiniGames      []MiniGame               `json:"mini_games,omitempty"`
	MiniGameScores map[MiniScoreKey]float64 `json:"-"`
}

// Score returns the recorded score for a round and player, zero when absent.
func (s *Snapshot) Score(roundID, playerID string) float64 {
	return s.Scores[ScoreKey{RoundID: roundID, PlayerID: playerID}]
}

// MiniGameScore returns the recorded stars for a mini-game, round and
// player, zero when absent.
func (s *Snapshot) MiniGameScore(miniGameID, roundID, playerID string) float64 {
	return s.MiniGameScores[MiniScoreKey{MiniGameID: miniGameID, RoundID: roundID, PlayerID: playerID}]
}

// HasScores reports whether any non-zero score is recorded for the round.
func (s *Snapshot) HasScores(roundID string) bool {
	for _, p := range s.Players {
		if s.Score(roundID, p.ID) > 0 {
			return true
		}
	}
	return false
}

// Standing is one row of the ranked tournament table.
type Standing struct {
	PlayerID    string    `json:"player_id"`
	Name        string    `json:"name"`
	Rank        int       `json:"rank"`
	Total       float64   `json:"total"`
	RoundScores []float64 `json:"round_scores"`
	Deduction   float64   `json:"deduction"`
	// Delta is previous position minus current position; positive means the
	// player moved up. Nil when no previous position exists or the delta is
	// suppressed (no score recorded in the second round yet).
	Delta *int    `json:"delta,omitempty"`
	Team  TeamKey `json:"team,omitempty"`
}

// TeamTotal is the aggregate score of one tournament team.
type TeamTotal struct {
	Key   TeamKey `json:"key"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Total float64 `json:"total"`
}

// MiniGameStanding is one row of the mini-game leaderboard.
type MiniGameStanding struct {
	PlayerID  string             `json:"player_id"`
	Name      string             `json:"name"`
	Rank      int                `json:"rank"`
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
	Podium    bool               `json:"podium"`
}

// RoundView is the derived per-round output of the pipeline.
type RoundView struct {
	RoundID string  `json:"round_id"`
	Index   int     `json:"index"`
	Mode    Mode    `json:"mode"`
	Groups  []Group `json:"groups,omitempty"`
	// Adjustments maps each pair to its handicap stroke adjustment, only
	// populated for handicap-adjusted scramble rounds.
	Adjustments map[PairKey]float64 `json:"-"`
	// PersistPairing is set when a freshly generated pairing differs from
	// the stored one and should be written back by the caller.
	PersistPairing bool `json:"-"`
	// Err carries a per-round configuration failure. Other rounds still
	// compute.
	Err error `json:"-"`
}

// Result is the full output of the four-stage pipeline.
type Result struct {
	Standings   []Standing         `json:"standings"`
	TeamTotals  []TeamTotal        `json:"team_totals,omitempty"`
	MiniGames   []MiniGameStanding `json:"mini_games,omitempty"`
	Rounds      []RoundView        `json:"rounds"`
	ActiveRound int                `json:"active_round"`
}
