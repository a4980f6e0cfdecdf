// Package predict implements the closed-form conjectures for the investment
// contest: which strategies survive elimination (the signature) and how
// many pure Nash equilibria there are and where.
package predict

import (
	"github.com/golang/glog"

	"github.com/timpalpant/nashcontest/contest"
	"github.com/timpalpant/nashcontest/matrixgame"
)

// Options controls diagnostics for rule selection.
type Options struct {
	// Trace logs the rule chosen for every game.
	Trace bool
}

// Signature predicts the surviving strategies of each player after
// iterated elimination, and names the rule that produced the prediction.
// Predictions are computed with M_A <= M_B and swapped back as needed.
func Signature(p contest.Params, opts Options) (p1, p2 []int, rule string) {
	mMin, mMax := p.MA, p.MB
	swapped := false
	if mMin > mMax {
		mMin, mMax = mMax, mMin
		swapped = true
	}

	r := p.R
	symmetric := mMin == mMax
	halfCeil := (r + 1) / 2
	// mMin < r/2, in integers.
	belowHalf := 2*mMin < r

	// Rules are checked in order and a later match overrides an earlier one.
	if r < 2 {
		p1, p2, rule = []int{0}, []int{0}, "Rule 1"
	}
	if symmetric && r >= 2 && belowHalf {
		p1, p2, rule = []int{mMin}, []int{mMin}, "Rule 2"
	}
	if symmetric && r >= 2 && !belowHalf {
		top := min(mMin, r)
		p1, p2, rule = span(0, top), span(0, top), "Rule 3"
	}
	if !symmetric && r >= 2 && mMin < halfCeil {
		p1, p2, rule = span(0, mMin), span(1, mMin+1), "Rule 4"
	}
	if !symmetric && r >= 2 && halfCeil <= mMin && mMin < r {
		top := min(mMin, r)
		p1, p2, rule = span(0, top), span(0, top+1), "Rule 5"
	}
	if !symmetric && r >= 2 && r <= mMin {
		p1, p2, rule = span(0, r), span(0, r), "Rule 6"
	}

	if swapped {
		p1, p2 = p2, p1
	}

	if opts.Trace {
		glog.Infof("Game %v: signature %v / %v from %s", p, p1, p2, rule)
	}

	return p1, p2, rule
}

// PureNash predicts the number and locations of pure strategy Nash
// equilibria, and names the rule that produced the prediction.
func PureNash(p contest.Params, opts Options) (count int, locs []matrixgame.Equilibrium, rule string) {
	mA := min(p.MA, p.MB)
	symmetric := p.MA == p.MB

	switch {
	case p.R == 1:
		count, locs, rule = 1, []matrixgame.Equilibrium{{P1: 0, P2: 0}}, "Rule A"
	case p.R == 2:
		count, locs, rule = 4, []matrixgame.Equilibrium{
			{P1: 0, P2: 0}, {P1: 0, P2: 1}, {P1: 1, P2: 0}, {P1: 1, P2: 1},
		}, "Rule B"
	case p.R > 2 && symmetric && mA <= p.R/2:
		count, locs, rule = 1, []matrixgame.Equilibrium{{P1: mA, P2: mA}}, "Rule Ca"
	case p.R > 2:
		count, locs, rule = 0, nil, "Rule Cb"
	default:
		count, locs, rule = 0, nil, "No Rule"
	}

	if opts.Trace {
		glog.Infof("Game %v: %d pure equilibria at %s from %s",
			p, count, matrixgame.FormatEquilibria(locs), rule)
	}

	return count, locs, rule
}

// span returns [lo, lo+1, ..., hi].
func span(lo, hi int) []int {
	if hi < lo {
		return nil
	}

	result := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		result = append(result, i)
	}
	return result
}
