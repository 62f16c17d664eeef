package scoring

import (
	"slices"
)

// PairingResolution is the outcome of resolving a round's pairing. Persist
// is set when a freshly generated pairing differs from the stored one and
// must be written back before scores arrive.
type PairingResolution struct {
	Groups  []Group
	Persist bool
}

// ResolvePairings returns the scramble groups for a round, honoring the
// freeze rule: once the round is frozen (any score recorded) the stored
// pairing is returned untouched, no matter how the inputs changed. Before
// that, the pairing is regenerated from the current inputs and flagged for
// write-back when it differs from what is stored.
func ResolvePairings(round Round, players []Player, priorTotals map[string]float64, teams *TeamConfig, frozen bool) (PairingResolution, error) {
	if err := ValidateRound(round); err != nil {
		return PairingResolution{}, err
	}
	if frozen {
		return PairingResolution{Groups: round.Pairing}, nil
	}
	groups, err := ComputePairings(round, players, priorTotals, teams)
	if err != nil {
		return PairingResolution{}, err
	}
	return PairingResolution{
		Groups:  groups,
		Persist: !groupsEqual(round.Pairing, groups),
	}, nil
}

// ComputePairings derives the scramble groups for one round from the
// pairing strategy, the player list, the cumulative strokes through prior
// rounds (position strategy only) and the optional team assignments. With
// teams present, pairing runs independently within each team; cross-team
// pairs are never produced.
func ComputePairings(round Round, players []Player, priorTotals map[string]float64, teams *TeamConfig) ([]Group, error) {
	if err := ValidateRound(round); err != nil {
		return nil, err
	}
	cfg := round.Scramble

	if cfg.Strategy == PairCustom {
		return pairCustom(players, cfg.CustomPairs), nil
	}

	key := func(p Player) float64 {
		if cfg.Strategy == PairByHandicap {
			return p.Handicap
		}
		return priorTotals[p.ID]
	}

	if teams != nil && len(teams.Assignments) > 0 {
		var groups []Group
		for _, team := range []TeamKey{TeamRed, TeamGreen} {
			var members []Player
			for _, p := range players {
				if teams.Assignments[p.ID] == team {
					members = append(members, p)
				}
			}
			groups = append(groups, pairByKey(members, key)...)
		}
		return groups, nil
	}
	return pairByKey(players, key), nil
}

// pairByKey sorts the group ascending by key and pairs the lowest remaining
// entry with the highest, two pointers advancing inward. An odd group
// leaves the middle player as a single-element group.
func pairByKey(group []Player, key func(Player) float64) []Group {
	sorted := make([]Player, len(group))
	copy(sorted, group)
	slices.SortStableFunc(sorted, func(a, b Player) int {
		ka, kb := key(a), key(b)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})

	var groups []Group
	left, right := 0, len(sorted)-1
	for left < right {
		groups = append(groups, Group{sorted[left].ID, sorted[right].ID})
		left++
		right--
	}
	if left == right {
		groups = append(groups, Group{sorted[left].ID})
	}
	return groups
}

// pairCustom consumes the explicit symmetric pair map. Each unordered pair
// appears once, in the order its first member appears in the player list.
// Players absent from the map stay unpaired for the round.
func pairCustom(players []Player, pairs map[string]string) []Group {
	seen := make(map[PairKey]bool)
	var groups []Group
	for _, p := range players {
		partner, ok := pairs[p.ID]
		if !ok {
			continue
		}
		k := NewPairKey(p.ID, partner)
		if seen[k] {
			continue
		}
		seen[k] = true
		groups = append(groups, Group{p.ID, partner})
	}
	return groups
}

// GroupFor returns the group containing the player, or nil when unpaired.
func GroupFor(groups []Group, playerID string) Group {
	for _, g := range groups {
		if slices.Contains(g, playerID) {
			return g
		}
	}
	return nil
}

func groupsEqual(a, b []Group) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// PriorTotals sums each player's effective scores for the rounds before the
// given order index, the same values the standings accumulate. This is the
// sort key for position-based pairing, so a high-handicap player leading on
// net pairs as the leader. groupsByRound carries the resolved groups of the
// prior rounds; rounds that fail validation contribute nothing, matching the
// standings.
func PriorTotals(snap *Snapshot, groupsByRound map[string][]Group, order int) map[string]float64 {
	totals := make(map[string]float64, len(snap.Players))
	for _, p := range snap.Players {
		var sum float64
		for _, r := range snap.Rounds {
			if r.Order >= order || ValidateRound(r) != nil {
				continue
			}
			sum += nanToZero(EffectiveScore(snap, r, groupsByRound[r.ID], p.ID))
		}
		totals[p.ID] = sum
	}
	return totals
}
