package matrixgame

import (
	"fmt"
	"math/big"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Matrix is a live, mutable view of a game: the payoffs of the strategies
// that currently survive for each player. Strategies are addressed by their
// stable labels; positions in the underlying table shift as strategies are
// eliminated but labels never change.
//
// A Matrix is owned by a single solve. It is not safe for concurrent use,
// and reusing a game across solves requires a fresh Matrix (see Clone).
type Matrix struct {
	// Surviving labels for each player, in table order.
	strategies [2][]int
	// Label -> current table position, for each player.
	index [2]map[int]int
	// payoffs[i][j] is the profile (strategies[0][i], strategies[1][j]).
	payoffs [][]Payoffs
	// Set once Solve completes; the matrix is read-only afterwards.
	solved bool
}

// NewMatrix builds a Matrix from a copy of the given table.
func NewMatrix(t *Table) (*Matrix, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	m := &Matrix{
		strategies: [2][]int{
			append([]int(nil), t.RowLabels...),
			append([]int(nil), t.ColLabels...),
		},
		payoffs: copyPayoffs(t.Payoffs),
	}
	m.reindex()
	return m, nil
}

// MustNewMatrix is like NewMatrix but panics if the table is invalid.
func MustNewMatrix(t *Table) *Matrix {
	m, err := NewMatrix(t)
	if err != nil {
		panic(err)
	}

	return m
}

// Clone returns an independent, unsolved copy of the current state of m.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{
		strategies: [2][]int{
			append([]int(nil), m.strategies[0]...),
			append([]int(nil), m.strategies[1]...),
		},
		payoffs: copyPayoffs(m.payoffs),
	}
	c.reindex()
	return c
}

// Strategies returns a copy of the surviving strategy labels of player,
// in table order.
func (m *Matrix) Strategies(player Player) []int {
	return append([]int(nil), m.strategies[player.index()]...)
}

func (m *Matrix) NumStrategies(player Player) int {
	return len(m.strategies[player.index()])
}

func (m *Matrix) Surviving(player Player, label int) bool {
	_, ok := m.index[player.index()][label]
	return ok
}

func (m *Matrix) Shape() (int, int) {
	if len(m.payoffs) == 0 {
		return 0, 0
	}

	return len(m.payoffs), len(m.payoffs[0])
}

// Payoff returns a copy of the payoffs of the surviving profile (row, col).
func (m *Matrix) Payoff(row, col int) Payoffs {
	i := m.mustPosition(Player1, row)
	j := m.mustPosition(Player2, col)
	return m.payoffs[i][j].copy()
}

// BestResponses returns every surviving strategy of player that maximizes
// its payoff against the opponent playing oppStrategy. Ties are all
// included, in table order. oppStrategy must be a surviving strategy of
// the opponent.
func (m *Matrix) BestResponses(player Player, oppStrategy int) []int {
	opp := m.mustPosition(player.Opponent(), oppStrategy)
	own := m.strategies[player.index()]

	var best *big.Rat
	var result []int
	for i, label := range own {
		u := m.utility(player, i, opp)
		if best == nil {
			best = u
			result = append(result, label)
			continue
		}

		switch u.Cmp(best) {
		case 1:
			best = u
			result = append(result[:0], label)
		case 0:
			result = append(result, label)
		}
	}

	return result
}

// Domination records that strategy Dominated is strictly dominated
// by strategy By.
type Domination struct {
	Dominated int
	By        int
}

// DominatedStrategies returns every surviving strategy of player that is
// strictly dominated by another surviving strategy against all surviving
// opponent strategies. Results are ordered by the dominated strategy's
// table position, and each records the first dominator in table order.
// A player with a single surviving strategy has none.
func (m *Matrix) DominatedStrategies(player Player) []Domination {
	own := m.strategies[player.index()]
	if len(own) < 2 {
		return nil
	}

	var result []Domination
	for s := range own {
		for d := range own {
			if d == s {
				continue
			}

			if m.strictlyDominates(player, d, s) {
				result = append(result, Domination{Dominated: own[s], By: own[d]})
				break
			}
		}
	}

	return result
}

// strictlyDominates reports whether the strategy at position d is strictly
// better for player than the strategy at position s against every
// surviving opponent strategy.
func (m *Matrix) strictlyDominates(player Player, d, s int) bool {
	nOpp := len(m.strategies[player.Opponent().index()])
	if nOpp == 0 {
		panic(fmt.Errorf("player %v has no surviving strategies", player.Opponent()))
	}

	for t := 0; t < nOpp; t++ {
		if m.utility(player, d, t).Cmp(m.utility(player, s, t)) <= 0 {
			return false
		}
	}

	return true
}

// EliminateStrategy removes strategy from player's surviving set along
// with its row or column of payoffs. It panics if m has been solved, if
// strategy is not surviving or if it is the player's last remaining strategy.
func (m *Matrix) EliminateStrategy(player Player, strategy int) {
	if m.solved {
		panic(fmt.Errorf("cannot eliminate strategy %d of player %v: matrix is already solved",
			strategy, player))
	}
	p := player.index()
	pos := m.mustPosition(player, strategy)
	if len(m.strategies[p]) == 1 {
		panic(fmt.Errorf("cannot eliminate strategy %d: it is player %v's last strategy",
			strategy, player))
	}

	labels := make([]int, 0, len(m.strategies[p])-1)
	labels = append(labels, m.strategies[p][:pos]...)
	labels = append(labels, m.strategies[p][pos+1:]...)

	var payoffs [][]Payoffs
	switch player {
	case Player1:
		payoffs = make([][]Payoffs, 0, len(m.payoffs)-1)
		payoffs = append(payoffs, m.payoffs[:pos]...)
		payoffs = append(payoffs, m.payoffs[pos+1:]...)
	case Player2:
		payoffs = make([][]Payoffs, len(m.payoffs))
		for i, row := range m.payoffs {
			newRow := make([]Payoffs, 0, len(row)-1)
			newRow = append(newRow, row[:pos]...)
			payoffs[i] = append(newRow, row[pos+1:]...)
		}
	}

	// Labels and payoffs are swapped in together.
	m.strategies[p] = labels
	m.payoffs = payoffs
	m.reindex()
}

func (m *Matrix) String() string {
	return m.render(nil)
}

// render draws the current table with row labels down the side and column
// labels across the top. If marked is non-nil, payoffs for which it returns
// true are suffixed with '*'.
func (m *Matrix) render(marked func(player Player, row, col int) bool) string {
	headers := make([]string, 0, len(m.strategies[1])+1)
	headers = append(headers, "")
	for _, col := range m.strategies[1] {
		headers = append(headers, fmt.Sprint(col))
	}

	rows := make([][]string, 0, len(m.payoffs))
	for i, row := range m.payoffs {
		r := make([]string, 0, len(row)+1)
		r = append(r, fmt.Sprint(m.strategies[0][i]))
		for j, cell := range row {
			p1 := FormatPayoff(cell[0])
			p2 := FormatPayoff(cell[1])
			if marked != nil {
				if marked(Player1, i, j) {
					p1 += "*"
				}
				if marked(Player2, i, j) {
					p2 += "*"
				}
			}
			r = append(r, p1+", "+p2)
		}
		rows = append(rows, r)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// utility returns player's payoff when it plays its strategy at position own
// and the opponent plays its strategy at position opp.
func (m *Matrix) utility(player Player, own, opp int) *big.Rat {
	if player == Player1 {
		return m.payoffs[own][opp][0]
	}

	return m.payoffs[opp][own][1]
}

func (m *Matrix) mustPosition(player Player, label int) int {
	pos, ok := m.index[player.index()][label]
	if !ok {
		panic(fmt.Errorf("strategy %d is not a surviving strategy of player %v (surviving: %v)",
			label, player, m.strategies[player.index()]))
	}

	return pos
}

func (m *Matrix) reindex() {
	for p, labels := range m.strategies {
		idx := make(map[int]int, len(labels))
		for i, l := range labels {
			idx[l] = i
		}
		m.index[p] = idx
	}
}

func copyPayoffs(src [][]Payoffs) [][]Payoffs {
	payoffs := make([][]Payoffs, len(src))
	for i, row := range src {
		payoffs[i] = make([]Payoffs, len(row))
		for j, cell := range row {
			payoffs[i][j] = cell.copy()
		}
	}
	return payoffs
}
