// Package contest generates payoff tables for the two-player investment
// contest: an investor offers a prize R to whichever player invests more,
// splitting it evenly on a tie, and each player forfeits its investment.
package contest

import (
	"fmt"
	"math/big"

	"github.com/timpalpant/nashcontest/matrixgame"
)

// Params identifies one game in the family.
type Params struct {
	// Budget (prize) available to the investor.
	R int
	// Maximum investment of player A (rows) and player B (columns).
	MA int
	MB int
}

func (p Params) String() string {
	return fmt.Sprintf("R=%d M_A=%d M_B=%d", p.R, p.MA, p.MB)
}

// Key returns the canonical "R_MA_MB" identifier, used for file names.
func (p Params) Key() string {
	return fmt.Sprintf("%d_%d_%d", p.R, p.MA, p.MB)
}

// Symmetric reports whether both players have the same cap.
func (p Params) Symmetric() bool {
	return p.MA == p.MB
}

func (p Params) Validate() error {
	if p.R < 1 {
		return fmt.Errorf("budget must be positive, got R=%d", p.R)
	}
	if p.MA < 0 || p.MB < 0 {
		return fmt.Errorf("investment caps must be non-negative, got M_A=%d M_B=%d", p.MA, p.MB)
	}
	return nil
}

// Payoffs returns the payoffs when A invests ca and B invests cb.
func Payoffs(r, ca, cb int) matrixgame.Payoffs {
	prize := big.NewRat(int64(r), 1)
	a := big.NewRat(int64(ca), 1)
	b := big.NewRat(int64(cb), 1)

	switch {
	case ca > cb:
		return matrixgame.NewPayoffs(new(big.Rat).Sub(prize, a), new(big.Rat).Neg(b))
	case ca < cb:
		return matrixgame.NewPayoffs(new(big.Rat).Neg(a), new(big.Rat).Sub(prize, b))
	}

	half := big.NewRat(int64(r), 2)
	return matrixgame.NewPayoffs(new(big.Rat).Sub(half, a), new(big.Rat).Sub(half, b))
}

// NewTable builds the (M_A+1)x(M_B+1) payoff table of the game, with
// strategy labels equal to the amount invested.
func NewTable(p Params) (*matrixgame.Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rows := make([]int, p.MA+1)
	for i := range rows {
		rows[i] = i
	}
	cols := make([]int, p.MB+1)
	for j := range cols {
		cols[j] = j
	}

	payoffs := make([][]matrixgame.Payoffs, len(rows))
	for ca := range rows {
		payoffs[ca] = make([]matrixgame.Payoffs, len(cols))
		for cb := range cols {
			payoffs[ca][cb] = Payoffs(p.R, ca, cb)
		}
	}

	return &matrixgame.Table{RowLabels: rows, ColLabels: cols, Payoffs: payoffs}, nil
}
