package scoring_test

import (
	"testing"

	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// standingsSnapshot builds three players with two stroke rounds whose totals
// can be dialed in via the scores map.
func standingsSnapshot(scores map[scoring.ScoreKey]float64) *scoring.Snapshot {
	return &scoring.Snapshot{
		TournamentID: "t1",
		Players: []scoring.Player{
			{ID: "p1", Name: "One"},
			{ID: "p2", Name: "Two"},
			{ID: "p3", Name: "Three"},
		},
		Rounds: []scoring.Round{
			{ID: "r1", Order: 0, Holes: 18, Mode: scoring.ModeStroke},
			{ID: "r2", Order: 1, Holes: 18, Mode: scoring.ModeStroke},
		},
		Scores:         scores,
		MiniGameScores: map[scoring.MiniScoreKey]float64{},
	}
}

func TestComputeStandings_Ranking(t *testing.T) {
	t.Run("ties share a rank and the next rank skips ahead", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 70,
			{RoundID: "r1", PlayerID: "p2"}: 70,
			{RoundID: "r1", PlayerID: "p3"}: 72,
		})
		res := scoring.ComputeStandings(snap, nil)
		require.Len(t, res.Standings, 3)
		assert.Equal(t, []int{1, 1, 3}, []int{res.Standings[0].Rank, res.Standings[1].Rank, res.Standings[2].Rank})
	})

	t.Run("distinct totals rank 1 2 3", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 70,
			{RoundID: "r1", PlayerID: "p2"}: 71,
			{RoundID: "r1", PlayerID: "p3"}: 72,
		})
		res := scoring.ComputeStandings(snap, nil)
		assert.Equal(t, []int{1, 2, 3}, []int{res.Standings[0].Rank, res.Standings[1].Rank, res.Standings[2].Rank})
	})

	t.Run("ties keep input order", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 70,
			{RoundID: "r1", PlayerID: "p2"}: 70,
		})
		res := scoring.ComputeStandings(snap, nil)
		assert.Equal(t, "p3", res.Standings[0].PlayerID, "p3 has total 0 and leads")
		assert.Equal(t, "p1", res.Standings[1].PlayerID)
		assert.Equal(t, "p2", res.Standings[2].PlayerID)
	})
}

func TestComputeStandings_Delta(t *testing.T) {
	t.Run("delta is previous minus current position", func(t *testing.T) {
		// Previous order [p1, p2, p3]; new totals flip p1 and p2.
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 72,
			{RoundID: "r1", PlayerID: "p2"}: 70,
			{RoundID: "r1", PlayerID: "p3"}: 75,
			{RoundID: "r2", PlayerID: "p1"}: 1,
			{RoundID: "r2", PlayerID: "p2"}: 1,
			{RoundID: "r2", PlayerID: "p3"}: 1,
		})
		res := scoring.ComputeStandings(snap, []string{"p1", "p2", "p3"})

		byID := make(map[string]scoring.Standing)
		for _, s := range res.Standings {
			byID[s.PlayerID] = s
		}
		require.NotNil(t, byID["p2"].Delta)
		assert.Equal(t, 1, *byID["p2"].Delta, "p2 moved up")
		require.NotNil(t, byID["p1"].Delta)
		assert.Equal(t, -1, *byID["p1"].Delta, "p1 moved down")
		assert.Nil(t, byID["p3"].Delta, "unchanged position shows no delta")
	})

	t.Run("delta is suppressed before the second round is scored", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 72,
			{RoundID: "r1", PlayerID: "p2"}: 70,
		})
		res := scoring.ComputeStandings(snap, []string{"p1", "p2", "p3"})
		for _, s := range res.Standings {
			assert.Nil(t, s.Delta, "player %s", s.PlayerID)
		}
	})

	t.Run("player missing from the previous order shows no delta", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 72,
			{RoundID: "r2", PlayerID: "p1"}: 40,
		})
		res := scoring.ComputeStandings(snap, []string{"p2", "p3"})
		for _, s := range res.Standings {
			if s.PlayerID == "p1" {
				assert.Nil(t, s.Delta)
			}
		}
	})
}

func TestComputeStandings_MiniGames(t *testing.T) {
	snap := standingsSnapshot(map[scoring.ScoreKey]float64{})
	snap.MiniGames = []scoring.MiniGame{
		{ID: "mg1", Name: "Closest to pin"},
		{ID: "mg2", Name: "Longest drive"},
	}
	snap.MiniGameScores = map[scoring.MiniScoreKey]float64{
		{MiniGameID: "mg1", RoundID: "r1", PlayerID: "p1"}: 3,
		{MiniGameID: "mg2", RoundID: "r2", PlayerID: "p1"}: 1,
		{MiniGameID: "mg1", RoundID: "r1", PlayerID: "p2"}: 4,
		{MiniGameID: "mg1", RoundID: "r1", PlayerID: "p3"}: 4,
	}

	res := scoring.ComputeStandings(snap, nil)
	require.Len(t, res.MiniGames, 3)

	assert.Equal(t, "p1", res.MiniGames[0].PlayerID, "most stars first")
	assert.Equal(t, 1, res.MiniGames[0].Rank)
	assert.Equal(t, 4.0, res.MiniGames[0].Total)
	assert.Equal(t, 3.0, res.MiniGames[0].Breakdown["mg1"])

	assert.Equal(t, res.MiniGames[1].Rank, res.MiniGames[2].Rank, "tied stars share a rank")
	assert.True(t, res.MiniGames[1].Podium)
	assert.True(t, res.MiniGames[2].Podium)
}

func TestComputeStandings_RoundIsolation(t *testing.T) {
	// One round with a broken config must not take the tournament down.
	snap := standingsSnapshot(map[scoring.ScoreKey]float64{
		{RoundID: "r1", PlayerID: "p1"}: 70,
		{RoundID: "r2", PlayerID: "p1"}: 80,
	})
	snap.Rounds[1].Mode = scoring.ModeScramble // no scramble config

	res := scoring.ComputeStandings(snap, nil)
	require.Len(t, res.Rounds, 2)
	assert.NoError(t, res.Rounds[0].Err)
	assert.ErrorIs(t, res.Rounds[1].Err, scoring.ErrMissingScrambleConfig)

	byID := make(map[string]scoring.Standing)
	for _, s := range res.Standings {
		byID[s.PlayerID] = s
	}
	assert.Equal(t, 70.0, byID["p1"].Total, "the bad round contributes nothing")
}

func TestComputeStandings_ScramblePairingWriteBack(t *testing.T) {
	snap := standingsSnapshot(nil)
	snap.Scores = map[scoring.ScoreKey]float64{}
	snap.Rounds[1].Mode = scoring.ModeScramble
	snap.Rounds[1].Scramble = &scoring.ScrambleConfig{Strategy: scoring.PairByHandicap}
	snap.Players[0].Handicap = 5
	snap.Players[1].Handicap = 10
	snap.Players[2].Handicap = 15

	res := scoring.ComputeStandings(snap, nil)
	view := res.Rounds[1]
	require.NoError(t, view.Err)
	require.Len(t, view.Groups, 2)
	assert.Equal(t, scoring.Group{"p1", "p3"}, view.Groups[0])
	assert.Equal(t, scoring.Group{"p2"}, view.Groups[1])
	assert.True(t, view.PersistPairing, "fresh pairing should be written back")
}

func TestComputeStandings_PositionPairingUsesNetTotals(t *testing.T) {
	// A high-handicap player leading on net must pair as the leader, even
	// though their gross is the worst of the field.
	snap := &scoring.Snapshot{
		TournamentID: "t1",
		Players: []scoring.Player{
			{ID: "p1", Name: "One", Handicap: 20},
			{ID: "p2", Name: "Two"},
			{ID: "p3", Name: "Three"},
			{ID: "p4", Name: "Four"},
		},
		Rounds: []scoring.Round{
			{ID: "r1", Order: 0, Holes: 18, Mode: scoring.ModeHandicapStroke},
			{ID: "r2", Order: 1, Holes: 18, Mode: scoring.ModeScramble,
				Scramble: &scoring.ScrambleConfig{Strategy: scoring.PairByPosition}},
		},
		Scores: map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 90, // net 70, leads
			{RoundID: "r1", PlayerID: "p2"}: 75,
			{RoundID: "r1", PlayerID: "p3"}: 80,
			{RoundID: "r1", PlayerID: "p4"}: 85,
		},
		MiniGameScores: map[scoring.MiniScoreKey]float64{},
	}

	res := scoring.ComputeStandings(snap, nil)
	view := res.Rounds[1]
	require.NoError(t, view.Err)
	require.Len(t, view.Groups, 2)
	assert.Equal(t, scoring.Group{"p1", "p4"}, view.Groups[0], "net leader pairs with the player furthest behind")
	assert.Equal(t, scoring.Group{"p2", "p3"}, view.Groups[1])
}

func TestActiveRoundIndex(t *testing.T) {
	t.Run("advances past scored rounds", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 70,
		})
		assert.Equal(t, 1, scoring.ActiveRoundIndex(snap))
	})

	t.Run("caps at the final round", func(t *testing.T) {
		snap := standingsSnapshot(map[scoring.ScoreKey]float64{
			{RoundID: "r1", PlayerID: "p1"}: 70,
			{RoundID: "r2", PlayerID: "p1"}: 72,
		})
		assert.Equal(t, 1, scoring.ActiveRoundIndex(snap))
	})

	t.Run("fresh tournament starts at round zero", func(t *testing.T) {
		assert.Equal(t, 0, scoring.ActiveRoundIndex(standingsSnapshot(nil)))
	})
}
