package notifier

import (
	"sync"

	"github.com/mauv0809/fairway-cup/internal/scoring"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendStandingsUpdateFunc func(tournamentName string, standings []scoring.Standing, teamTotals []scoring.TeamTotal, dryRun bool) error
	SendPairingsFunc        func(roundName string, groups []scoring.Group, players []scoring.Player, dryRun bool) error
	SendMiniGamePodiumFunc  func(tournamentName string, standings []scoring.MiniGameStanding, dryRun bool) error

	// Call records
	SendStandingsUpdateCalls []struct {
		TournamentName string
		Standings      []scoring.Standing
		TeamTotals     []scoring.TeamTotal
	}
	SendPairingsCalls []struct {
		RoundName string
		Groups    []scoring.Group
	}
	SendMiniGamePodiumCalls []struct {
		TournamentName string
		Standings      []scoring.MiniGameStanding
	}

	// Last formatted response
	LastStandingsResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsUpdateCalls = nil
	m.SendPairingsCalls = nil
	m.SendMiniGamePodiumCalls = nil
	m.LastStandingsResponse = nil
}

func (m *Mock) SendStandingsUpdate(tournamentName string, standings []scoring.Standing, teamTotals []scoring.TeamTotal, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsUpdateCalls = append(m.SendStandingsUpdateCalls, struct {
		TournamentName string
		Standings      []scoring.Standing
		TeamTotals     []scoring.TeamTotal
	}{tournamentName, standings, teamTotals})
	if m.SendStandingsUpdateFunc != nil {
		return m.SendStandingsUpdateFunc(tournamentName, standings, teamTotals, dryRun)
	}
	return nil
}

func (m *Mock) SendPairings(roundName string, groups []scoring.Group, players []scoring.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingsCalls = append(m.SendPairingsCalls, struct {
		RoundName string
		Groups    []scoring.Group
	}{roundName, groups})
	if m.SendPairingsFunc != nil {
		return m.SendPairingsFunc(roundName, groups, players, dryRun)
	}
	return nil
}

func (m *Mock) SendMiniGamePodium(tournamentName string, standings []scoring.MiniGameStanding, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMiniGamePodiumCalls = append(m.SendMiniGamePodiumCalls, struct {
		TournamentName string
		Standings      []scoring.MiniGameStanding
	}{tournamentName, standings})
	if m.SendMiniGamePodiumFunc != nil {
		return m.SendMiniGamePodiumFunc(tournamentName, standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(tournamentName string, standings []scoring.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastStandingsResponse = "formatted_standings"
	return "formatted_standings", nil
}
