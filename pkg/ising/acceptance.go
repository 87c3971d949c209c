package ising

import (
	"fmt"
	"math"
	"strings"
)

// Source supplies the randomness a Model consumes. *math/rand/v2.Rand and
// *core.RNG both satisfy it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// Policy selects the rule that decides whether a proposed flip is kept.
type Policy uint8

const (
	// PolicyLegacy accepts whenever the pre-flip contribution is non-negative
	// and otherwise draws against exp(2e/T). It favours raising the local
	// contribution, which is the reverse of textbook Metropolis.
	PolicyLegacy Policy = iota
	// PolicyMetropolis uses the energy change of the flip, dE = 2e: flips with
	// dE <= 0 are always kept, others with probability exp(-dE/T).
	PolicyMetropolis
)

func (p Policy) String() string {
	switch p {
	case PolicyLegacy:
		return "legacy"
	case PolicyMetropolis:
		return "metropolis"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy resolves a policy from its name. Matching ignores case and
// surrounding whitespace; the empty string selects PolicyLegacy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return PolicyLegacy, nil
	case "metropolis":
		return PolicyMetropolis, nil
	default:
		return PolicyLegacy, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// BoltzmannFactor returns exp(2e/T).
func BoltzmannFactor(energyContribution float64, t Temperature) float64 {
	return math.Exp(2 * energyContribution / float64(t))
}

// accept decides a proposed flip for a site whose current contribution is e.
// The uniform draw is only consumed when the deterministic branch does not
// already decide.
func (p Policy) accept(e float64, t Temperature, src Source) bool {
	switch p {
	case PolicyMetropolis:
		if e <= 0 {
			return true
		}
		return src.Float64() < BoltzmannFactor(-e, t)
	default:
		if e >= 0 {
			return true
		}
		return src.Float64() < BoltzmannFactor(e, t)
	}
}
