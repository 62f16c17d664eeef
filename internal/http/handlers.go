package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fairway-cup/internal/engine"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/mauv0809/fairway-cup/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// DBMetricsHandler exposes the persistent counters kept in the database.
func (s *Server) DBMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			log.Error("Failed to read metrics from database", "error", err)
			http.Error(w, "Failed to read metrics", http.StatusInternalServerError)
			return
		}
		writeJSON(w, counters)
	}
}

// TournamentsHandler lists tournaments on GET and creates one on POST.
func (s *Server) TournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tournaments, err := s.Store.ListTournaments(s.Cfg.OwnerID)
			if err != nil {
				log.Error("Failed to list tournaments", "error", err)
				http.Error(w, "Failed to list tournaments", http.StatusInternalServerError)
				return
			}
			writeJSON(w, tournaments)

		case http.MethodPost:
			var t tournament.Tournament
			if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
				log.Error("Failed to decode tournament payload", "error", err)
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if t.OwnerID == "" {
				t.OwnerID = s.Cfg.OwnerID
			}
			if err := s.Store.CreateTournament(&t); err != nil {
				log.Error("Failed to create tournament", "error", err)
				http.Error(w, "Failed to create tournament", http.StatusInternalServerError)
				return
			}
			log.Info("Created tournament", "tournamentID", t.ID, "name", t.Name)
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, t)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// TournamentHandler returns one tournament on GET and removes it on DELETE.
func (s *Server) TournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodGet:
			t, err := s.Store.GetTournament(id)
			if err != nil {
				log.Error("Failed to get tournament", "error", err, "tournamentID", id)
				http.Error(w, "Tournament not found", http.StatusNotFound)
				return
			}
			writeJSON(w, t)

		case http.MethodDelete:
			if isDryRunFromContext(r) {
				log.Info("[Dry Run] Would delete tournament", "tournamentID", id)
				fmt.Fprint(w, "Dry run: tournament not deleted")
				return
			}
			if err := s.Store.DeleteTournament(id); err != nil {
				log.Error("Failed to delete tournament", "error", err, "tournamentID", id)
				http.Error(w, "Tournament not found", http.StatusNotFound)
				return
			}
			log.Info("Deleted tournament", "tournamentID", id)
			fmt.Fprint(w, "Tournament deleted")

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// PlayersHandler lists the owner's players on GET and upserts on POST.
func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			players, err := s.Store.GetAllPlayers(s.Cfg.OwnerID)
			if err != nil {
				log.Error("Failed to list players", "error", err)
				http.Error(w, "Failed to list players", http.StatusInternalServerError)
				return
			}
			writeJSON(w, players)

		case http.MethodPost:
			var players []scoring.Player
			if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
				log.Error("Failed to decode players payload", "error", err)
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if isDryRunFromContext(r) {
				log.Info("[Dry Run] Would upsert players", "count", len(players))
				fmt.Fprint(w, "Dry run: players not saved")
				return
			}
			if err := s.Store.UpsertPlayers(s.Cfg.OwnerID, players); err != nil {
				log.Error("Failed to upsert players", "error", err)
				http.Error(w, "Failed to save players", http.StatusInternalServerError)
				return
			}
			writeJSON(w, players)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// StandingsHandler runs the scoring pipeline and returns the full result.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
			return
		}
		result, err := s.Engine.Standings(id, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to compute standings", "error", err, "tournamentID", id)
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, result)
	}
}

// MiniGamesHandler returns just the mini-game leaderboard.
func (s *Server) MiniGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
			return
		}
		result, err := s.Engine.Standings(id, true)
		if err != nil {
			log.Error("Failed to compute mini-game standings", "error", err, "tournamentID", id)
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, result.MiniGames)
	}
}

// PairingsHandler returns the per-round views with resolved groups. Pairings
// that were freshly generated are persisted unless dry_run is set.
func (s *Server) PairingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing 'id' parameter", http.StatusBadRequest)
			return
		}
		result, err := s.Engine.Standings(id, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to resolve pairings", "error", err, "tournamentID", id)
			http.Error(w, "Failed to resolve pairings", http.StatusInternalServerError)
			return
		}

		roundID := r.URL.Query().Get("round")
		if roundID != "" {
			for _, rv := range result.Rounds {
				if rv.RoundID == roundID {
					writeJSON(w, rv)
					return
				}
			}
			http.Error(w, "Round not found", http.StatusNotFound)
			return
		}
		writeJSON(w, result.Rounds)
	}
}

// SaveScoresHandler applies a full score save and returns the fresh result.
func (s *Server) SaveScoresHandler() http.HandlerFunc {
	type payload struct {
		TournamentID string                          `json:"tournament_id"`
		Scores       []tournament.ScoreEntry         `json:"scores"`
		MiniScores   []tournament.MiniGameScoreEntry `json:"mini_scores"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			log.Error("Failed to decode scores payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if p.TournamentID == "" {
			http.Error(w, "Missing 'tournament_id'", http.StatusBadRequest)
			return
		}

		result, err := s.Engine.SaveScores(p.TournamentID, p.Scores, p.MiniScores, isDryRunFromContext(r))
		if err != nil {
			log.Error("Failed to save scores", "error", err, "tournamentID", p.TournamentID)
			http.Error(w, "Failed to save scores", http.StatusInternalServerError)
			return
		}
		writeJSON(w, result)
	}
}

// StandingsEventHandler receives standings-updated events pushed back from
// the Pub/Sub subscription and logs the new leader.
func (s *Server) StandingsEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		event := engine.StandingsEvent{}
		if err := s.Pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode event payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Standings updated", "tournamentID", event.TournamentID, "leader", event.Leader)
		w.Write([]byte("OK"))
	}
}

// StandingsCommandHandler answers the /standings Slack slash command. The
// command text carries the tournament ID.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		id := strings.TrimSpace(r.FormValue("text"))
		if id == "" {
			http.Error(w, "Missing tournament id in command text", http.StatusBadRequest)
			return
		}

		tour, err := s.Store.GetTournament(id)
		if err != nil {
			log.Error("Failed to get tournament", "error", err, "tournamentID", id)
			http.Error(w, "Tournament not found", http.StatusNotFound)
			return
		}
		result, err := s.Engine.Standings(id, true)
		if err != nil {
			log.Error("Failed to compute standings", "error", err, "tournamentID", id)
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(tour.Name, result.Standings)
		if err != nil {
			log.Error("Failed to format standings", "error", err)
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, msg)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
