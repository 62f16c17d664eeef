package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mauv0809/fairway-cup/internal/config"
	"github.com/mauv0809/fairway-cup/internal/database"
	"github.com/mauv0809/fairway-cup/internal/engine"
	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/notifier"
	"github.com/mauv0809/fairway-cup/internal/pubsub"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/mauv0809/fairway-cup/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(dbTeardown)

	store := tournament.New(db)
	metricsStore := metrics.New(db)
	cfg := config.Config{OwnerID: "owner-1"}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	notif := notifier.NewMock()
	ps := pubsub.NewMock("TEST")
	eng := engine.New(store, notif, metricsSvc, metricsStore, ps)

	return NewServer(store, eng, metricsSvc, metricsStore, metricsHandler, cfg, notif, ps)
}

func seedTournament(t *testing.T, server *Server) *tournament.Tournament {
	t.Helper()
	tour := &tournament.Tournament{
		OwnerID: "owner-1",
		Name:    "Fairway Cup 2026",
		Players: []scoring.Player{
			{ID: "p1", Name: "Anna", Handicap: 8},
			{ID: "p2", Name: "Bo", Handicap: 18},
		},
		Rounds: []scoring.Round{
			{ID: "r1", Name: "Friday", Order: 0, Holes: 18, Mode: scoring.ModeStroke},
			{ID: "r2", Name: "Saturday", Order: 1, Holes: 18, Mode: scoring.ModeScramble,
				Scramble: &scoring.ScrambleConfig{Strategy: scoring.PairByHandicap, LowPct: 20, HighPct: 80}},
		},
		MiniGames: []scoring.MiniGame{
			{ID: "mg1", Name: "Longest drive", SubtractFromScore: false, DeductionValue: 0},
		},
	}
	require.NoError(t, server.Store.CreateTournament(tour))
	return tour
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestTournamentsHandler_CreateAndList(t *testing.T) {
	server := setupTestServer(t)

	body, err := json.Marshal(tournament.Tournament{Name: "New Cup"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/tournaments", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created tournament.Tournament
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID, "owner should default from config")

	req = httptest.NewRequest("GET", "/tournaments", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []tournament.Tournament
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "New Cup", list[0].Name)
}

func TestTournamentHandler_GetAndDelete(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	req := httptest.NewRequest("GET", "/tournament?id="+tour.ID, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got tournament.Tournament
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, tour.Name, got.Name)
	assert.Len(t, got.Rounds, 2)

	req = httptest.NewRequest("DELETE", "/tournament?id="+tour.ID, nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/tournament?id="+tour.ID, nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTournamentHandler_MissingID(t *testing.T) {
	server := setupTestServer(t)
	req := httptest.NewRequest("GET", "/tournament", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayersHandler_UpsertAndList(t *testing.T) {
	server := setupTestServer(t)

	body, err := json.Marshal([]scoring.Player{{Name: "Carl", Handicap: 11.3}})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/players", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/players", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var players []scoring.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Carl", players[0].Name)
}

func TestStandingsHandler(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	payload := fmt.Sprintf(`{"tournament_id":%q,"scores":[{"round_id":"r1","player_id":"p1","score":72},{"round_id":"r1","player_id":"p2","score":85}]}`, tour.ID)
	req := httptest.NewRequest("POST", "/scores", bytes.NewReader([]byte(payload)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/standings?id="+tour.ID, nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var result scoring.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result.Standings, 2)
	assert.Equal(t, "p1", result.Standings[0].PlayerID)
	assert.Equal(t, 1, result.Standings[0].Rank)
	assert.Equal(t, 72.0, result.Standings[0].Total)
	assert.Equal(t, 1, result.ActiveRound, "scored first round moves play to the second")
}

func TestSaveScoresHandler_MissingTournamentID(t *testing.T) {
	server := setupTestServer(t)
	req := httptest.NewRequest("POST", "/scores", bytes.NewReader([]byte(`{"scores":[]}`)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSaveScoresHandler_DryRunDoesNotPersist(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	payload := fmt.Sprintf(`{"tournament_id":%q,"scores":[{"round_id":"r1","player_id":"p1","score":72}]}`, tour.ID)
	req := httptest.NewRequest("POST", "/scores?dry_run=true", bytes.NewReader([]byte(payload)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	snap, _, err := server.Store.LoadSnapshot(tour.ID)
	require.NoError(t, err)
	assert.Zero(t, snap.Score("r1", "p1"), "dry run must not persist scores")
}

func TestPairingsHandler(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	req := httptest.NewRequest("GET", "/pairings?id="+tour.ID+"&round=r2", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var view scoring.RoundView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "r2", view.RoundID)
	assert.Equal(t, []scoring.Group{{"p1", "p2"}}, view.Groups)

	// The generated pairing should have been written back.
	got, err := server.Store.GetTournament(tour.ID)
	require.NoError(t, err)
	assert.Equal(t, []scoring.Group{{"p1", "p2"}}, got.Rounds[1].Pairing)
}

func TestPairingsHandler_UnknownRound(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	req := httptest.NewRequest("GET", "/pairings?id="+tour.ID+"&round=nope", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMiniGamesHandler(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	payload := fmt.Sprintf(`{"tournament_id":%q,"mini_scores":[{"mini_game_id":"mg1","round_id":"r1","player_id":"p2","value":3}]}`, tour.ID)
	req := httptest.NewRequest("POST", "/scores", bytes.NewReader([]byte(payload)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/minigames?id="+tour.ID, nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var standings []scoring.MiniGameStanding
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, "p2", standings[0].PlayerID)
	assert.Equal(t, 3.0, standings[0].Total)
	assert.True(t, standings[0].Podium)
}

func TestStandingsEventHandler(t *testing.T) {
	server := setupTestServer(t)

	event := engine.StandingsEvent{TournamentID: "t1", Leader: "p1"}
	data, err := msgpack.Marshal(event)
	require.NoError(t, err)
	wrapper := fmt.Sprintf(`{"subscription":"sub","message":{"data":%q}}`, base64.StdEncoding.EncodeToString(data))

	req := httptest.NewRequest("POST", "/events/standings-updated", bytes.NewReader([]byte(wrapper)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	ps := server.Pubsub.(*pubsub.MockPubSubClient)
	require.Len(t, ps.ProcessMessageCalls, 1)
	assert.Equal(t, data, ps.ProcessMessageCalls[0].Data, "handler should hand the raw payload to the client")
}

func TestStandingsEventHandler_BadPayload(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest("POST", "/events/standings-updated", bytes.NewReader([]byte(`{"message":{"data":"not-base64!!"}}`)))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStandingsCommandHandler(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	form := url.Values{"text": {tour.ID}}
	req := httptest.NewRequest("POST", "/slack/command/standings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "formatted_standings")
}

func TestStandingsCommandHandler_MissingText(t *testing.T) {
	server := setupTestServer(t)

	req := httptest.NewRequest("POST", "/slack/command/standings", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDBMetricsHandler(t *testing.T) {
	server := setupTestServer(t)
	tour := seedTournament(t, server)

	// One pipeline run via /standings bumps the persistent counter.
	req := httptest.NewRequest("GET", "/standings?id="+tour.ID, nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", "/metrics/db", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var counters map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counters))
	assert.Equal(t, 1, counters["pipeline_runs"])
}
