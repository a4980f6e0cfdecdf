package matrixgame

import (
	"fmt"
)

// Table is the immutable description of a game as read from an external
// source: ordered strategy labels for each player and a payoff pair for
// every (row, column) profile, aligned to those labels.
type Table struct {
	RowLabels []int
	ColLabels []int
	// Payoffs[i][j] holds the payoffs when Player1 plays RowLabels[i]
	// and Player2 plays ColLabels[j].
	Payoffs [][]Payoffs
}

func (t *Table) NumRows() int {
	return len(t.RowLabels)
}

func (t *Table) NumCols() int {
	return len(t.ColLabels)
}

// Validate checks that the table is non-empty, rectangular, fully populated
// and that labels are unique within each player.
func (t *Table) Validate() error {
	if len(t.RowLabels) == 0 || len(t.ColLabels) == 0 {
		return fmt.Errorf("table must have at least one strategy per player, got %dx%d",
			len(t.RowLabels), len(t.ColLabels))
	}

	if err := checkUnique(t.RowLabels); err != nil {
		return fmt.Errorf("player 1 labels: %v", err)
	}
	if err := checkUnique(t.ColLabels); err != nil {
		return fmt.Errorf("player 2 labels: %v", err)
	}

	if len(t.Payoffs) != len(t.RowLabels) {
		return fmt.Errorf("table has %d payoff rows but %d row labels",
			len(t.Payoffs), len(t.RowLabels))
	}

	for i, row := range t.Payoffs {
		if len(row) != len(t.ColLabels) {
			return fmt.Errorf("payoff row %d has %d entries but there are %d column labels",
				t.RowLabels[i], len(row), len(t.ColLabels))
		}

		for j, cell := range row {
			if cell[0] == nil || cell[1] == nil {
				return fmt.Errorf("missing payoff at (%d, %d)", t.RowLabels[i], t.ColLabels[j])
			}
		}
	}

	return nil
}

// Payoff returns the payoffs of the profile (row, col) given by labels.
func (t *Table) Payoff(row, col int) (Payoffs, bool) {
	i, ok := position(t.RowLabels, row)
	if !ok {
		return Payoffs{}, false
	}
	j, ok := position(t.ColLabels, col)
	if !ok {
		return Payoffs{}, false
	}

	return t.Payoffs[i][j], true
}

func checkUnique(labels []int) error {
	seen := make(map[int]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			return fmt.Errorf("duplicate strategy label %d", l)
		}
		seen[l] = struct{}{}
	}

	return nil
}

func position(labels []int, label int) (int, bool) {
	for i, l := range labels {
		if l == label {
			return i, true
		}
	}

	return 0, false
}
