package scoring

import (
	"math"
	"sort"
)

// nanToZero maps an unknown value to the neutral element for summation.
func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// EffectiveScore is the score that counts for a player in one round.
//
// Scramble rounds score by pair: every member inherits the pair leader's
// recorded score, adjusted by the team handicap when the round plays with
// handicaps. An unpaired player contributes nothing. Handicap-adjusted
// stroke play nets the recorded gross against the player's handicap. All
// other modes use the recorded value as-is.
func EffectiveScore(snap *Snapshot, round Round, groups []Group, playerID string) float64 {
	switch round.Mode {
	case ModeScramble:
		g := GroupFor(groups, playerID)
		if g == nil {
			return 0
		}
		leader := g[0]
		gross := snap.Score(round.ID, leader)
		cfg := round.Scramble
		if cfg != nil && cfg.WithHandicap && len(g) == 2 {
			a, okA := playerByID(snap, g[0])
			b, okB := playerByID(snap, g[1])
			if okA && okB {
				adj := TeamHandicap(a.Handicap, b.Handicap, cfg.LowPct, cfg.HighPct, round.Holes)
				return TeamNet(gross, adj)
			}
		}
		return gross
	case ModeHandicapStroke:
		p, ok := playerByID(snap, playerID)
		if !ok {
			return 0
		}
		return IndividualNet(snap.Score(round.ID, playerID), p.Handicap, round.Holes)
	default:
		return snap.Score(round.ID, playerID)
	}
}

// Deduction sums the player's stroke deductions from mini-games flagged
// subtract-from-score: stars earned times the game's deduction value, over
// every round. Never negative; games without the flag contribute nothing.
func Deduction(snap *Snapshot, playerID string) float64 {
	var total float64
	for _, mg := range snap.MiniGames {
		if !mg.SubtractFromScore {
			continue
		}
		for _, r := range snap.Rounds {
			stars := nanToZero(snap.MiniGameScore(mg.ID, r.ID, playerID))
			if stars > 0 {
				total += stars * mg.DeductionValue
			}
		}
	}
	return total
}

// TotalForPlayer is the player's final tournament total: the sum of
// effective round scores minus mini-game deductions. Pure in the snapshot;
// identical inputs always yield the identical total.
func TotalForPlayer(snap *Snapshot, groupsByRound map[string][]Group, playerID string) float64 {
	var raw float64
	for _, r := range snap.Rounds {
		raw += nanToZero(EffectiveScore(snap, r, groupsByRound[r.ID], playerID))
	}
	return raw - Deduction(snap, playerID)
}

// TeamTotals aggregates player totals per tournament team, ranked ascending
// (fewest strokes wins).
func TeamTotals(snap *Snapshot, totals map[string]float64) []TeamTotal {
	if snap.Teams == nil || len(snap.Teams.Assignments) == 0 {
		return nil
	}
	defaults := map[TeamKey]TeamTotal{
		TeamRed:   {Key: TeamRed, Name: "Red", Color: "#DC2626"},
		TeamGreen: {Key: TeamGreen, Name: "Green", Color: "#059669"},
	}
	out := make([]TeamTotal, 0, 2)
	for _, key := range []TeamKey{TeamRed, TeamGreen} {
		tt := defaults[key]
		if name, ok := snap.Teams.Names[key]; ok && name != "" {
			tt.Name = name
		}
		if color, ok := snap.Teams.Colors[key]; ok && color != "" {
			tt.Color = color
		}
		for _, p := range snap.Players {
			if snap.Teams.Assignments[p.ID] == key {
				tt.Total += totals[p.ID]
			}
		}
		out = append(out, tt)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total < out[j].Total })
	return out
}

func playerByID(snap *Snapshot, id string) (Player, bool) {
	for _, p := range snap.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
