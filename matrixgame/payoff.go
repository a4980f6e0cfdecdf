package matrixgame

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Player identifies one side of a two-player strategic-form game.
// Player1 chooses rows and Player2 chooses columns.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

func (p Player) String() string {
	return strconv.Itoa(int(p))
}

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}

	panic(fmt.Errorf("invalid player: %d", p))
}

func (p Player) index() int {
	switch p {
	case Player1:
		return 0
	case Player2:
		return 1
	}

	panic(fmt.Errorf("invalid player: %d", p))
}

// Payoffs holds the payoff of each player for a single strategy profile.
// Values are exact rationals so that dominance comparisons never suffer
// from floating point rounding.
type Payoffs [2]*big.Rat

func NewPayoffs(p1, p2 *big.Rat) Payoffs {
	return Payoffs{p1, p2}
}

// FloatPayoffs converts a pair of float64 payoffs exactly.
func FloatPayoffs(p1, p2 float64) Payoffs {
	return Payoffs{new(big.Rat).SetFloat64(p1), new(big.Rat).SetFloat64(p2)}
}

// IntPayoffs is a convenience for integer-valued games.
func IntPayoffs(p1, p2 int64) Payoffs {
	return Payoffs{big.NewRat(p1, 1), big.NewRat(p2, 1)}
}

func (p Payoffs) Of(player Player) *big.Rat {
	return p[player.index()]
}

func (p Payoffs) copy() Payoffs {
	return Payoffs{new(big.Rat).Set(p[0]), new(big.Rat).Set(p[1])}
}

func (p Payoffs) String() string {
	return FormatPayoff(p[0]) + ", " + FormatPayoff(p[1])
}

// ParsePayoff parses a decimal ("0.5", "-1.0", "1e-3") or fractional
// ("1/2") payoff without loss of precision.
func ParsePayoff(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid payoff: %q", s)
	}

	return r, nil
}

const maxDecimalDigits = 12

// FormatPayoff renders r as the shortest decimal that represents it exactly,
// with at least one fractional digit ("1.0", "-0.5"). Values without a
// short terminating decimal expansion are rendered as fractions ("1/3").
func FormatPayoff(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String() + ".0"
	}

	for prec := 1; prec <= maxDecimalDigits; prec++ {
		s := r.FloatString(prec)
		if back, ok := new(big.Rat).SetString(s); ok && back.Cmp(r) == 0 {
			return s
		}
	}

	return r.RatString()
}
