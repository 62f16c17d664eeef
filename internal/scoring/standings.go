package scoring

import (
	"sort"
)

// Rank orders players ascending by final total (stable, ties keep input
// order) and assigns competition ranks: equal totals share a rank and the
// next distinct total skips ahead, so totals 70,70,72 rank 1,1,3.
//
// previousOrder is the last-saved standings snapshot as an ordered player-id
// list. A player found there gets Delta = previous index minus current
// index (positive = moved up). The delta is suppressed until the player has
// a non-zero score recorded in the second round, so the very first scored
// round shows no movement.
func Rank(snap *Snapshot, standings []Standing, previousOrder []string) []Standing {
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total < standings[j].Total
	})

	prevIndex := make(map[string]int, len(previousOrder))
	for i, id := range previousOrder {
		prevIndex[id] = i
	}

	var secondRoundID string
	for _, r := range snap.Rounds {
		if r.Order == 1 {
			secondRoundID = r.ID
			break
		}
	}

	for i := range standings {
		if i > 0 && standings[i].Total == standings[i-1].Total {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}

		if secondRoundID == "" || snap.Score(secondRoundID, standings[i].PlayerID) == 0 {
			continue
		}
		if prev, ok := prevIndex[standings[i].PlayerID]; ok {
			delta := prev - i
			if delta != 0 {
				d := delta
				standings[i].Delta = &d
			}
		}
	}
	return standings
}

// RankMiniGames builds the mini-game leaderboard: total stars across all
// games and rounds, descending, competition-ranked, with the top three
// flagged as the podium.
func RankMiniGames(snap *Snapshot) []MiniGameStanding {
	if len(snap.MiniGames) == 0 {
		return nil
	}
	out := make([]MiniGameStanding, 0, len(snap.Players))
	for _, p := range snap.Players {
		row := MiniGameStanding{
			PlayerID:  p.ID,
			Name:      p.Name,
			Breakdown: make(map[string]float64, len(snap.MiniGames)),
		}
		for _, mg := range snap.MiniGames {
			var stars float64
			for _, r := range snap.Rounds {
				stars += nanToZero(snap.MiniGameScore(mg.ID, r.ID, p.ID))
			}
			row.Breakdown[mg.ID] = stars
			row.Total += stars
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	for i := range out {
		if i > 0 && out[i].Total == out[i-1].Total {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
		out[i].Podium = out[i].Rank <= 3
	}
	return out
}

// Order flattens ranked standings into the ordered player-id list that gets
// persisted as the previous-standings snapshot.
func Order(standings []Standing) []string {
	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.PlayerID
	}
	return ids
}

// ActiveRoundIndex is the round the tournament is currently at: the round
// after the last one with any recorded score, capped at the final round.
func ActiveRoundIndex(snap *Snapshot) int {
	if len(snap.Rounds) == 0 {
		return 0
	}
	target := 0
	for i, r := range snap.Rounds {
		if snap.HasScores(r.ID) {
			target = i + 1
		}
	}
	if target >= len(snap.Rounds) {
		target = len(snap.Rounds) - 1
	}
	return target
}

// ComputeStandings runs the four-stage pipeline over one immutable
// snapshot: pairing resolution per round, handicap adjustment, aggregation
// and ranking. A round with a bad configuration loses its own contribution
// (its view carries the error); every other round still computes. The
// caller is responsible for persisting any pairing flagged PersistPairing.
func ComputeStandings(snap *Snapshot, previousOrder []string) *Result {
	rounds := make([]Round, len(snap.Rounds))
	copy(rounds, snap.Rounds)
	sort.SliceStable(rounds, func(i, j int) bool { return rounds[i].Order < rounds[j].Order })

	views := make([]RoundView, 0, len(rounds))
	groupsByRound := make(map[string][]Group, len(rounds))
	failed := make(map[string]bool)

	for i, r := range rounds {
		view := RoundView{RoundID: r.ID, Index: i, Mode: r.Mode}
		if err := ValidateRound(r); err != nil {
			view.Err = err
			failed[r.ID] = true
			views = append(views, view)
			continue
		}
		if r.Mode == ModeScramble {
			frozen := r.PairingState == PairingFrozen || snap.HasScores(r.ID)
			res, err := ResolvePairings(r, snap.Players, PriorTotals(snap, groupsByRound, r.Order), snap.Teams, frozen)
			if err != nil {
				view.Err = err
				failed[r.ID] = true
				views = append(views, view)
				continue
			}
			view.Groups = res.Groups
			view.PersistPairing = res.Persist
			groupsByRound[r.ID] = res.Groups

			if cfg := r.Scramble; cfg.WithHandicap {
				view.Adjustments = make(map[PairKey]float64)
				for _, g := range res.Groups {
					if len(g) != 2 {
						continue
					}
					a, okA := playerByID(snap, g[0])
					b, okB := playerByID(snap, g[1])
					if okA && okB {
						view.Adjustments[NewPairKey(g[0], g[1])] = TeamHandicap(a.Handicap, b.Handicap, cfg.LowPct, cfg.HighPct, r.Holes)
					}
				}
			}
		}
		views = append(views, view)
	}

	standings := make([]Standing, 0, len(snap.Players))
	for _, p := range snap.Players {
		row := Standing{PlayerID: p.ID, Name: p.Name, RoundScores: make([]float64, len(rounds))}
		if snap.Teams != nil {
			row.Team = snap.Teams.Assignments[p.ID]
		}
		for i, r := range rounds {
			if failed[r.ID] {
				continue
			}
			score := nanToZero(EffectiveScore(snap, r, groupsByRound[r.ID], p.ID))
			row.RoundScores[i] = score
			row.Total += score
		}
		row.Deduction = Deduction(snap, p.ID)
		row.Total -= row.Deduction
		standings = append(standings, row)
	}

	totals := make(map[string]float64, len(standings))
	for _, s := range standings {
		totals[s.PlayerID] = s.Total
	}

	return &Result{
		Standings:   Rank(snap, standings, previousOrder),
		TeamTotals:  TeamTotals(snap, totals),
		MiniGames:   RankMiniGames(snap),
		Rounds:      views,
		ActiveRound: ActiveRoundIndex(snap),
	}
}
