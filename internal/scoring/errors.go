package scoring

import (
	"errors"
	"fmt"
)

// Configuration errors are rejected before any computation runs.
var (
	ErrPositionPairingFirstRound = errors.New("position pairing requires prior standings; the first round has none")
	ErrBadHoleCount              = errors.New("hole count must be 9 or 18")
	ErrBadHandicapWeight         = errors.New("handicap weight must be in [0,100]")
	ErrMissingScrambleConfig     = errors.New("scramble round has no scramble config")
	ErrUnexpectedScrambleConfig  = errors.New("non-scramble round carries a scramble config")
	ErrAsymmetricCustomPairs     = errors.New("custom pairing map is not symmetric")
)

// ConfigError wraps a configuration failure with the round it belongs to,
// so one bad round fails only its own contribution.
type ConfigError struct {
	RoundID string
	Reason  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("round %s: %s", e.RoundID, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Reason }

// ValidateRound checks a round's configuration. It returns nil when the
// round can be computed.
func ValidateRound(r Round) error {
	if r.Holes != 9 && r.Holes != 18 {
		return &ConfigError{RoundID: r.ID, Reason: ErrBadHoleCount}
	}
	if r.Mode != ModeScramble {
		if r.Scramble != nil {
			return &ConfigError{RoundID: r.ID, Reason: ErrUnexpectedScrambleConfig}
		}
		return nil
	}
	cfg := r.Scramble
	if cfg == nil {
		return &ConfigError{RoundID: r.ID, Reason: ErrMissingScrambleConfig}
	}
	if cfg.Strategy == PairByPosition && r.Order == 0 {
		return &ConfigError{RoundID: r.ID, Reason: ErrPositionPairingFirstRound}
	}
	if cfg.WithHandicap {
		if cfg.LowPct < 0 || cfg.LowPct > 100 {
			return &ConfigError{RoundID: r.ID, Reason: fmt.Errorf("low weight %v: %w", cfg.LowPct, ErrBadHandicapWeight)}
		}
		if cfg.HighPct < 0 || cfg.HighPct > 100 {
			return &ConfigError{RoundID: r.ID, Reason: fmt.Errorf("high weight %v: %w", cfg.HighPct, ErrBadHandicapWeight)}
		}
	}
	if cfg.Strategy == PairCustom {
		for a, b := range cfg.CustomPairs {
			if partner, ok := cfg.CustomPairs[b]; !ok || partner != a {
				return &ConfigError{RoundID: r.ID, Reason: fmt.Errorf("player %s paired with %s: %w", a, b, ErrAsymmetricCustomPairs)}
			}
		}
	}
	return nil
}
