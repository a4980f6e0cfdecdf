package matrixgame

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// Equilibrium is a pure strategy profile, given by strategy labels.
type Equilibrium struct {
	P1 int
	P2 int
}

func (e Equilibrium) String() string {
	return fmt.Sprintf("(%d, %d)", e.P1, e.P2)
}

// FormatEquilibria renders a list of profiles as "[(0, 0), (1, 1)]",
// preserving order. An empty list renders as "[]".
func FormatEquilibria(eqs []Equilibrium) string {
	parts := make([]string, len(eqs))
	for i, eq := range eqs {
		parts[i] = eq.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Elimination is one step of iterated elimination.
type Elimination struct {
	Player      Player
	Strategy    int
	DominatedBy int
}

func (e Elimination) String() string {
	return fmt.Sprintf("Player %v's strategy %d is strictly dominated by %d.",
		e.Player, e.Strategy, e.DominatedBy)
}

type Options struct {
	// Trace echoes every trace line to the log as it is produced.
	Trace bool
}

// Result is the outcome of solving a game.
type Result struct {
	// Pure strategy Nash equilibria among the surviving strategies.
	Equilibria []Equilibrium
	// Eliminations performed, in order.
	Eliminations []Elimination
	// BestResponseScan is true if IESDS did not reduce the game to a
	// single profile and the equilibria come from the best response scan.
	BestResponseScan bool
	// Human-readable record of every step, including table snapshots.
	Trace []string
}

type tracer struct {
	opts  Options
	lines []string
}

func (t *tracer) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if t.opts.Trace {
		glog.Info(msg)
	}
	t.lines = append(t.lines, msg)
}

func (t *tracer) snapshot(table string) {
	if t.opts.Trace {
		glog.Info("\n" + table)
	}
	t.lines = append(t.lines, table)
}

// Solve runs iterated elimination of strictly dominated strategies on m,
// one strategy at a time, recomputing dominance after every elimination.
// Player 1's dominated strategies are always removed before player 2's.
// If a single profile survives it is returned directly; otherwise every
// surviving profile is checked for mutual best responses.
//
// Solve mutates m in place. After it returns, m holds the surviving
// strategies and any further elimination panics.
func Solve(m *Matrix, opts Options) *Result {
	tr := &tracer{opts: opts}
	result := &Result{}

	p1Dominated := m.DominatedStrategies(Player1)
	p2Dominated := m.DominatedStrategies(Player2)
	tr.snapshot(m.String())

	for len(p1Dominated) > 0 || len(p2Dominated) > 0 {
		var elim Elimination
		if len(p1Dominated) > 0 {
			elim = Elimination{Player1, p1Dominated[0].Dominated, p1Dominated[0].By}
		} else {
			elim = Elimination{Player2, p2Dominated[0].Dominated, p2Dominated[0].By}
		}

		m.EliminateStrategy(elim.Player, elim.Strategy)
		result.Eliminations = append(result.Eliminations, elim)

		p1Dominated = m.DominatedStrategies(Player1)
		p2Dominated = m.DominatedStrategies(Player2)

		tr.logf("%v", elim)
		tr.snapshot(m.String())
	}

	if m.NumStrategies(Player1) == 1 && m.NumStrategies(Player2) == 1 {
		eq := Equilibrium{m.strategies[0][0], m.strategies[1][0]}
		tr.logf("<%d, %d> is a pure strategy Nash equilibrium.", eq.P1, eq.P2)
		result.Equilibria = []Equilibrium{eq}
		result.Trace = tr.lines
		m.solved = true
		return result
	}

	tr.logf("There are no strictly dominated strategies left to eliminate. Continuing with best responses...")
	result.Equilibria = bestResponseScan(m, tr)
	result.BestResponseScan = true
	result.Trace = tr.lines
	m.solved = true
	return result
}

// BestResponseEquilibria returns every surviving profile of m in which each
// player's strategy is a best response to the other's, without performing
// any elimination.
func BestResponseEquilibria(m *Matrix, opts Options) ([]Equilibrium, []string) {
	tr := &tracer{opts: opts}
	eqs := bestResponseScan(m, tr)
	return eqs, tr.lines
}
