package scoring

import "math"

// roundHalfUp rounds to the nearest integer with halves going up, matching
// how scorecards are settled.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// IndividualNet computes a player's net score: gross minus the handicap
// allowance, rounded half-up and floored at zero. For a 9-hole round only
// half the handicap counts. NaN inputs propagate as NaN so the caller can
// render "no data"; the aggregator treats NaN as zero.
func IndividualNet(gross, handicap float64, holes int) float64 {
	if math.IsNaN(gross) || math.IsNaN(handicap) {
		return math.NaN()
	}
	allowance := handicap
	if holes == 9 {
		allowance /= 2
	}
	net := roundHalfUp(gross - allowance)
	if net < 0 {
		return 0
	}
	return net
}

// TeamHandicap computes the stroke adjustment for a handicap-adjusted
// scramble pair. The lower handicap is weighted by lowPct and the higher by
// highPct (both percentages). A 9-hole round halves the adjustment before
// rounding. The result is an integral stroke count, or NaN when any input
// is NaN.
func TeamHandicap(handicapA, handicapB, lowPct, highPct float64, holes int) float64 {
	if math.IsNaN(handicapA) || math.IsNaN(handicapB) || math.IsNaN(lowPct) || math.IsNaN(highPct) {
		return math.NaN()
	}
	low := math.Min(handicapA, handicapB)
	high := math.Max(handicapA, handicapB)
	adjustment := low*lowPct/100 + high*highPct/100
	if holes == 9 {
		adjustment /= 2
	}
	return roundHalfUp(adjustment)
}

// IndividualGross reverses IndividualNet for score editing: the gross a
// player must have carded to end up at the given net. Rounded half-up; a
// 9-hole round adds back only half the handicap.
func IndividualGross(net, handicap float64, holes int) float64 {
	if math.IsNaN(net) || math.IsNaN(handicap) {
		return math.NaN()
	}
	allowance := handicap
	if holes == 9 {
		allowance /= 2
	}
	return roundHalfUp(net + allowance)
}

// TeamNet applies a pair's stroke adjustment to its gross score, floored at
// zero.
func TeamNet(gross, adjustment float64) float64 {
	if math.IsNaN(gross) || math.IsNaN(adjustment) {
		return math.NaN()
	}
	net := gross - adjustment
	if net < 0 {
		return 0
	}
	return net
}
