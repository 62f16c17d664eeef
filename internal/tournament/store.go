package tournament

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/fairway-cup/internal/scoring"
)

// New creates a new Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// CreateTournament inserts a tournament with its rounds, mini-games and
// player links in one transaction. Missing IDs are generated.
func (s *store) CreateTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	teamsJSON, err := marshalNullable(t.Teams)
	if err != nil {
		return fmt.Errorf("failed to marshal team config: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO tournaments (id, owner_id, name, team_mode, team_data_json)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.OwnerID, t.Name, t.TeamMode, teamsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}

	for i := range t.Rounds {
		r := &t.Rounds[i]
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if r.PairingState == "" {
			r.PairingState = scoring.PairingUnset
		}
		scrambleJSON, err := marshalNullable(r.Scramble)
		if err != nil {
			return fmt.Errorf("failed to marshal scramble config: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO rounds (id, tournament_id, name, order_index, hole_count, info, mode, scramble_json, pairing_state)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ID, t.ID, r.Name, r.Order, r.Holes, r.Info, r.Mode, scrambleJSON, r.PairingState)
		if err != nil {
			return fmt.Errorf("failed to insert round %q: %w", r.Name, err)
		}
	}

	for i := range t.MiniGames {
		mg := &t.MiniGames[i]
		if mg.ID == "" {
			mg.ID = uuid.New().String()
		}
		_, err = tx.Exec(`
			INSERT INTO mini_games (id, tournament_id, name, subtract_from_score, deduction_value)
			VALUES (?, ?, ?, ?, ?)
		`, mg.ID, t.ID, mg.Name, mg.SubtractFromScore, mg.DeductionValue)
		if err != nil {
			return fmt.Errorf("failed to insert mini-game %q: %w", mg.Name, err)
		}
	}

	for _, p := range t.Players {
		_, err = tx.Exec(`
			INSERT INTO players (id, owner_id, name, handicap, home_club, avatar_url)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				handicap = excluded.handicap,
				home_club = excluded.home_club,
				avatar_url = excluded.avatar_url;
		`, p.ID, t.OwnerID, p.Name, p.Handicap, p.HomeClub, p.AvatarURL)
		if err != nil {
			return fmt.Errorf("failed to upsert player %q: %w", p.Name, err)
		}
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO tournament_players (tournament_id, player_id) VALUES (?, ?)
		`, t.ID, p.ID)
		if err != nil {
			return fmt.Errorf("failed to link player %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// GetTournament loads one tournament aggregate without scores.
func (s *store) GetTournament(id string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTournamentLocked(id)
}

func (s *store) getTournamentLocked(id string) (*Tournament, error) {
	var t Tournament
	var teamsJSON sql.NullString
	err := s.db.QueryRow(`
		SELECT id, owner_id, name, team_mode, team_data_json
		FROM tournaments WHERE id = ?
	`, id).Scan(&t.ID, &t.OwnerID, &t.Name, &t.TeamMode, &teamsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tournament not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	if teamsJSON.Valid && teamsJSON.String != "" {
		var teams scoring.TeamConfig
		if err := json.Unmarshal([]byte(teamsJSON.String), &teams); err != nil {
			log.Warn("Failed to unmarshal team config", "error", err, "tournamentID", id)
		} else {
			t.Teams = &teams
		}
	}

	t.Players, err = s.playersForTournament(id)
	if err != nil {
		return nil, err
	}
	t.Rounds, err = s.roundsForTournament(id)
	if err != nil {
		return nil, err
	}
	t.MiniGames, err = s.miniGamesForTournament(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTournaments returns all tournaments owned by the organizer.
func (s *store) ListTournaments(ownerID string) ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, owner_id, name, team_mode FROM tournaments WHERE owner_id = ? ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var out []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.TeamMode); err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTournament removes a tournament. Rounds, scores, mini-games and
// player links go with it via cascading foreign keys.
func (s *store) DeleteTournament(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tournament not found: %s", id)
	}
	return nil
}

// UpsertPlayers inserts or updates players owned by the organizer.
func (s *store) UpsertPlayers(ownerID string, players []scoring.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range players {
		p := &players[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.Exec(`
			INSERT INTO players (id, owner_id, name, handicap, home_club, avatar_url)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				handicap = excluded.handicap,
				home_club = excluded.home_club,
				avatar_url = excluded.avatar_url;
		`, p.ID, ownerID, p.Name, p.Handicap, p.HomeClub, p.AvatarURL)
		if err != nil {
			return fmt.Errorf("failed to upsert player %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// GetAllPlayers returns every player owned by the organizer.
func (s *store) GetAllPlayers(ownerID string) ([]scoring.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, handicap, home_club, avatar_url FROM players WHERE owner_id = ? ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// LoadSnapshot collects the full scoring input for a tournament plus the
// previously saved standings order.
func (s *store) LoadSnapshot(tournamentID string) (*scoring.Snapshot, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.getTournamentLocked(tournamentID)
	if err != nil {
		return nil, nil, err
	}

	snap := &scoring.Snapshot{
		TournamentID:   t.ID,
		Name:           t.Name,
		TeamMode:       t.TeamMode,
		Teams:          t.Teams,
		Players:        t.Players,
		Rounds:         t.Rounds,
		MiniGames:      t.MiniGames,
		Scores:         make(map[scoring.ScoreKey]float64),
		MiniGameScores: make(map[scoring.MiniScoreKey]float64),
	}

	rows, err := s.db.Query(`
		SELECT sc.round_id, sc.player_id, sc.score
		FROM scores sc
		JOIN rounds r ON r.id = sc.round_id
		WHERE r.tournament_id = ?
	`, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key scoring.ScoreKey
		var score float64
		if err := rows.Scan(&key.RoundID, &key.PlayerID, &score); err != nil {
			log.Error("Failed to scan score row", "error", err)
			continue
		}
		snap.Scores[key] = score
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to load scores: %w", err)
	}

	mgRows, err := s.db.Query(`
		SELECT mgs.mini_game_id, mgs.round_id, mgs.player_id, mgs.value
		FROM mini_game_scores mgs
		JOIN mini_games mg ON mg.id = mgs.mini_game_id
		WHERE mg.tournament_id = ?
	`, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mini-game scores: %w", err)
	}
	defer mgRows.Close()
	for mgRows.Next() {
		var key scoring.MiniScoreKey
		var value float64
		if err := mgRows.Scan(&key.MiniGameID, &key.RoundID, &key.PlayerID, &value); err != nil {
			log.Error("Failed to scan mini-game score row", "error", err)
			continue
		}
		snap.MiniGameScores[key] = value
	}
	if err := mgRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to load mini-game scores: %w", err)
	}

	var prevJSON sql.NullString
	if err := s.db.QueryRow(`SELECT prev_standings_json FROM tournaments WHERE id = ?`, tournamentID).Scan(&prevJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to load previous standings: %w", err)
	}
	var prevOrder []string
	if prevJSON.Valid && prevJSON.String != "" {
		if err := json.Unmarshal([]byte(prevJSON.String), &prevOrder); err != nil {
			log.Warn("Failed to unmarshal previous standings", "error", err, "tournamentID", tournamentID)
		}
	}

	return snap, prevOrder, nil
}

// SaveScores replaces the whole score set for the tournament. The previous
// scores for every (round, player) combination are deleted first, then the
// given entries inserted; finally each round's pairing state is settled:
// frozen when any score was recorded, unset again otherwise.
func (s *store) SaveScores(tournamentID string, scores []ScoreEntry, miniScores []MiniGameScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM scores WHERE round_id IN (SELECT id FROM rounds WHERE tournament_id = ?)
	`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	_, err = tx.Exec(`
		DELETE FROM mini_game_scores WHERE mini_game_id IN (SELECT id FROM mini_games WHERE tournament_id = ?)
	`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to clear mini-game scores: %w", err)
	}

	for _, e := range scores {
		_, err := tx.Exec(`
			INSERT INTO scores (round_id, player_id, score) VALUES (?, ?, ?)
		`, e.RoundID, e.PlayerID, e.Score)
		if err != nil {
			return fmt.Errorf("failed to insert score for round %s player %s: %w", e.RoundID, e.PlayerID, err)
		}
	}
	for _, e := range miniScores {
		_, err := tx.Exec(`
			INSERT INTO mini_game_scores (mini_game_id, round_id, player_id, value) VALUES (?, ?, ?, ?)
		`, e.MiniGameID, e.RoundID, e.PlayerID, e.Value)
		if err != nil {
			return fmt.Errorf("failed to insert mini-game score: %w", err)
		}
	}

	_, err = tx.Exec(`
		UPDATE rounds SET pairing_state = CASE
			WHEN EXISTS (SELECT 1 FROM scores WHERE scores.round_id = rounds.id AND scores.score > 0) THEN 'frozen'
			ELSE 'unset'
		END
		WHERE tournament_id = ?
	`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to settle pairing states: %w", err)
	}

	return tx.Commit()
}

// SavePairing writes back a generated pairing for a round.
func (s *store) SavePairing(roundID string, groups []scoring.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairingJSON, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to marshal pairing: %w", err)
	}
	res, err := s.db.Exec(`UPDATE rounds SET pairing_json = ? WHERE id = ?`, string(pairingJSON), roundID)
	if err != nil {
		return fmt.Errorf("failed to save pairing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("round not found: %s", roundID)
	}
	log.Debug("Saved generated pairing", "roundID", roundID, "groups", len(groups))
	return nil
}

// SetPreviousStandings stores the standings order captured before a save,
// used for position-change indicators on the next read.
func (s *store) SetPreviousStandings(tournamentID string, order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal standings order: %w", err)
	}
	_, err = s.db.Exec(`UPDATE tournaments SET prev_standings_json = ? WHERE id = ?`, string(orderJSON), tournamentID)
	if err != nil {
		return fmt.Errorf("failed to save previous standings: %w", err)
	}
	return nil
}

func (s *store) playersForTournament(tournamentID string) ([]scoring.Player, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.handicap, p.home_club, p.avatar_url
		FROM players p
		JOIN tournament_players tp ON tp.player_id = p.id
		WHERE tp.tournament_id = ?
		ORDER BY p.name
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament players: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *store) roundsForTournament(tournamentID string) ([]scoring.Round, error) {
	rows, err := s.db.Query(`
		SELECT id, name, order_index, hole_count, info, mode, scramble_json, pairing_json, pairing_state
		FROM rounds
		WHERE tournament_id = ?
		ORDER BY order_index ASC
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}
	defer rows.Close()

	var rounds []scoring.Round
	for rows.Next() {
		var r scoring.Round
		var info, scrambleJSON, pairingJSON sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &r.Order, &r.Holes, &info, &r.Mode, &scrambleJSON, &pairingJSON, &r.PairingState); err != nil {
			log.Error("Failed to scan round row", "error", err)
			continue
		}
		r.Info = info.String
		if scrambleJSON.Valid && scrambleJSON.String != "" {
			var cfg scoring.ScrambleConfig
			if err := json.Unmarshal([]byte(scrambleJSON.String), &cfg); err != nil {
				log.Warn("Failed to unmarshal scramble config", "error", err, "roundID", r.ID)
			} else {
				r.Scramble = &cfg
			}
		}
		if pairingJSON.Valid && pairingJSON.String != "" {
			if err := json.Unmarshal([]byte(pairingJSON.String), &r.Pairing); err != nil {
				log.Warn("Failed to unmarshal pairing", "error", err, "roundID", r.ID)
			}
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

func (s *store) miniGamesForTournament(tournamentID string) ([]scoring.MiniGame, error) {
	rows, err := s.db.Query(`
		SELECT id, name, subtract_from_score, deduction_value
		FROM mini_games
		WHERE tournament_id = ?
		ORDER BY name
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mini-games: %w", err)
	}
	defer rows.Close()

	var games []scoring.MiniGame
	for rows.Next() {
		var mg scoring.MiniGame
		if err := rows.Scan(&mg.ID, &mg.Name, &mg.SubtractFromScore, &mg.DeductionValue); err != nil {
			log.Error("Failed to scan mini-game row", "error", err)
			continue
		}
		games = append(games, mg)
	}
	return games, rows.Err()
}

func scanPlayers(rows *sql.Rows) ([]scoring.Player, error) {
	var players []scoring.Player
	for rows.Next() {
		var p scoring.Player
		var club, avatar sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Handicap, &club, &avatar); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.HomeClub = club.String
		p.AvatarURL = avatar.String
		players = append(players, p)
	}
	return players, rows.Err()
}

func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case *scoring.TeamConfig:
		if val == nil {
			return nil, nil
		}
	case *scoring.ScrambleConfig:
		if val == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
