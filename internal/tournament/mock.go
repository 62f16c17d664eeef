package tournament

import (
	"sync"

	"github.com/mauv0809/fairway-cup/internal/scoring"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateTournamentFunc     func(t *Tournament) error
	GetTournamentFunc        func(id string) (*Tournament, error)
	ListTournamentsFunc      func(ownerID string) ([]Tournament, error)
	DeleteTournamentFunc     func(id string) error
	UpsertPlayersFunc        func(ownerID string, players []scoring.Player) error
	GetAllPlayersFunc        func(ownerID string) ([]scoring.Player, error)
	LoadSnapshotFunc         func(tournamentID string) (*scoring.Snapshot, []string, error)
	SaveScoresFunc           func(tournamentID string, scores []ScoreEntry, miniScores []MiniGameScoreEntry) error
	SavePairingFunc          func(roundID string, groups []scoring.Group) error
	SetPreviousStandingsFunc func(tournamentID string, order []string) error

	// Call records
	CreateTournamentCalls []*Tournament
	GetTournamentCalls    []string
	DeleteTournamentCalls []string
	UpsertPlayersCalls    []struct {
		OwnerID string
		Players []scoring.Player
	}
	LoadSnapshotCalls []string
	SaveScoresCalls   []struct {
		TournamentID string
		Scores       []ScoreEntry
		MiniScores   []MiniGameScoreEntry
	}
	SavePairingCalls []struct {
		RoundID string
		Groups  []scoring.Group
	}
	SetPreviousStandingsCalls []struct {
		TournamentID string
		Order        []string
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTournamentCalls = nil
	m.GetTournamentCalls = nil
	m.DeleteTournamentCalls = nil
	m.UpsertPlayersCalls = nil
	m.LoadSnapshotCalls = nil
	m.SaveScoresCalls = nil
	m.SavePairingCalls = nil
	m.SetPreviousStandingsCalls = nil
}

func (m *MockStore) CreateTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTournamentCalls = append(m.CreateTournamentCalls, t)
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(id string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTournamentCalls = append(m.GetTournamentCalls, id)
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(id)
	}
	return &Tournament{ID: id}, nil
}

func (m *MockStore) ListTournaments(ownerID string) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(ownerID)
	}
	return nil, nil
}

func (m *MockStore) DeleteTournament(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteTournamentCalls = append(m.DeleteTournamentCalls, id)
	if m.DeleteTournamentFunc != nil {
		return m.DeleteTournamentFunc(id)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(ownerID string, players []scoring.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, struct {
		OwnerID string
		Players []scoring.Player
	}{ownerID, players})
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(ownerID, players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers(ownerID string) ([]scoring.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(ownerID)
	}
	return nil, nil
}

func (m *MockStore) LoadSnapshot(tournamentID string) (*scoring.Snapshot, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadSnapshotCalls = append(m.LoadSnapshotCalls, tournamentID)
	if m.LoadSnapshotFunc != nil {
		return m.LoadSnapshotFunc(tournamentID)
	}
	return &scoring.Snapshot{TournamentID: tournamentID}, nil, nil
}

func (m *MockStore) SaveScores(tournamentID string, scores []ScoreEntry, miniScores []MiniGameScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveScoresCalls = append(m.SaveScoresCalls, struct {
		TournamentID string
		Scores       []ScoreEntry
		MiniScores   []MiniGameScoreEntry
	}{tournamentID, scores, miniScores})
	if m.SaveScoresFunc != nil {
		return m.SaveScoresFunc(tournamentID, scores, miniScores)
	}
	return nil
}

func (m *MockStore) SavePairing(roundID string, groups []scoring.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavePairingCalls = append(m.SavePairingCalls, struct {
		RoundID string
		Groups  []scoring.Group
	}{roundID, groups})
	if m.SavePairingFunc != nil {
		return m.SavePairingFunc(roundID, groups)
	}
	return nil
}

func (m *MockStore) SetPreviousStandings(tournamentID string, order []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetPreviousStandingsCalls = append(m.SetPreviousStandingsCalls, struct {
		TournamentID string
		Order        []string
	}{tournamentID, order})
	if m.SetPreviousStandingsFunc != nil {
		return m.SetPreviousStandingsFunc(tournamentID, order)
	}
	return nil
}
