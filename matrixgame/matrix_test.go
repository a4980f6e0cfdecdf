package matrixgame

import (
	"math/big"
	"math/rand"
	"reflect"
	"testing"
)

func intTable(rows, cols []int, p1, p2 [][]int64) *Table {
	payoffs := make([][]Payoffs, len(rows))
	for i := range rows {
		payoffs[i] = make([]Payoffs, len(cols))
		for j := range cols {
			payoffs[i][j] = IntPayoffs(p1[i][j], p2[i][j])
		}
	}

	return &Table{RowLabels: rows, ColLabels: cols, Payoffs: payoffs}
}

func randomTable(rng *rand.Rand, nRows, nCols int) *Table {
	rows := make([]int, nRows)
	for i := range rows {
		rows[i] = i
	}
	cols := make([]int, nCols)
	for j := range cols {
		cols[j] = j
	}

	payoffs := make([][]Payoffs, nRows)
	for i := range payoffs {
		payoffs[i] = make([]Payoffs, nCols)
		for j := range payoffs[i] {
			payoffs[i][j] = IntPayoffs(int64(rng.Intn(7)-3), int64(rng.Intn(7)-3))
		}
	}

	return &Table{RowLabels: rows, ColLabels: cols, Payoffs: payoffs}
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestNewMatrix_RejectsInvalidTables(t *testing.T) {
	testCases := map[string]*Table{
		"empty":     {},
		"duplicate": intTable([]int{0, 0}, []int{0}, [][]int64{{1}, {2}}, [][]int64{{1}, {2}}),
		"ragged": {
			RowLabels: []int{0, 1},
			ColLabels: []int{0, 1},
			Payoffs: [][]Payoffs{
				{IntPayoffs(1, 1), IntPayoffs(1, 1)},
				{IntPayoffs(1, 1)},
			},
		},
		"missing payoff": {
			RowLabels: []int{0},
			ColLabels: []int{0},
			Payoffs:   [][]Payoffs{{{big.NewRat(1, 1), nil}}},
		},
	}

	for name, table := range testCases {
		if _, err := NewMatrix(table); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNewMatrix_CopiesTable(t *testing.T) {
	table := intTable([]int{0, 1}, []int{0}, [][]int64{{1}, {2}}, [][]int64{{3}, {4}})
	m := MustNewMatrix(table)
	m.EliminateStrategy(Player1, 0)
	table.Payoffs[1][0][0].SetInt64(100)

	if table.NumRows() != 2 {
		t.Errorf("table has %d rows after elimination, expected 2", table.NumRows())
	}
	if got := m.Payoff(1, 0).Of(Player1); got.Cmp(big.NewRat(2, 1)) != 0 {
		t.Errorf("got payoff %v, expected 2", got)
	}
}

func TestBestResponses_IncludesTies(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{5, 6, 7}, []int{0, 1},
		[][]int64{{3, 0}, {1, 2}, {3, 2}},
		[][]int64{{0, 1}, {4, 4}, {2, 1}},
	))

	testCases := []struct {
		player   Player
		opp      int
		expected []int
	}{
		{Player1, 0, []int{5, 7}},
		{Player1, 1, []int{6, 7}},
		{Player2, 5, []int{1}},
		{Player2, 6, []int{0, 1}},
		{Player2, 7, []int{0}},
	}

	for _, tc := range testCases {
		got := m.BestResponses(tc.player, tc.opp)
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("player %v best responses to %d: got %v, expected %v",
				tc.player, tc.opp, got, tc.expected)
		}
	}
}

func TestBestResponses_PanicsOnEliminatedOpponent(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{0, 1}, []int{0, 1},
		[][]int64{{1, 1}, {0, 0}},
		[][]int64{{1, 0}, {1, 0}},
	))
	m.EliminateStrategy(Player2, 1)

	expectPanic(t, "eliminated opponent", func() { m.BestResponses(Player1, 1) })
	expectPanic(t, "own label", func() { m.BestResponses(Player2, 7) })
}

func TestDominatedStrategies_FirstDominatorInTableOrder(t *testing.T) {
	// Row 0 is dominated by both 1 and 2; row 1 is dominated by 2.
	m := MustNewMatrix(intTable(
		[]int{0, 1, 2}, []int{0, 1},
		[][]int64{{0, 0}, {1, 1}, {2, 2}},
		[][]int64{{0, 0}, {0, 0}, {0, 0}},
	))

	got := m.DominatedStrategies(Player1)
	expected := []Domination{{Dominated: 0, By: 1}, {Dominated: 1, By: 2}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}

	if got := m.DominatedStrategies(Player2); len(got) != 0 {
		t.Errorf("got %v dominated columns, expected none", got)
	}
}

func TestDominatedStrategies_TiesDoNotDominate(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{0, 1}, []int{0, 1},
		[][]int64{{1, 0}, {1, 5}},
		[][]int64{{0, 0}, {0, 0}},
	))

	if got := m.DominatedStrategies(Player1); len(got) != 0 {
		t.Errorf("weakly dominated strategy reported as strictly dominated: %v", got)
	}
}

func TestDominatedStrategies_SingleStrategy(t *testing.T) {
	m := MustNewMatrix(intTable([]int{3}, []int{0, 1}, [][]int64{{0, 1}}, [][]int64{{0, 1}}))
	if got := m.DominatedStrategies(Player1); len(got) != 0 {
		t.Errorf("got %v, expected no dominated strategies", got)
	}
	if got := m.DominatedStrategies(Player2); !reflect.DeepEqual(got, []Domination{{0, 1}}) {
		t.Errorf("got %v, expected column 0 dominated by 1", got)
	}
}

func TestDominatedStrategies_Sound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		m := MustNewMatrix(randomTable(rng, 1+rng.Intn(5), 1+rng.Intn(5)))
		for _, player := range []Player{Player1, Player2} {
			for _, d := range m.DominatedStrategies(player) {
				for _, opp := range m.Strategies(player.Opponent()) {
					var by, dominated *big.Rat
					if player == Player1 {
						by, dominated = m.Payoff(d.By, opp).Of(player), m.Payoff(d.Dominated, opp).Of(player)
					} else {
						by, dominated = m.Payoff(opp, d.By).Of(player), m.Payoff(opp, d.Dominated).Of(player)
					}
					if by.Cmp(dominated) <= 0 {
						t.Fatalf("player %v: %d does not strictly dominate %d against %d:\n%v",
							player, d.By, d.Dominated, opp, m)
					}
				}
			}
		}
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := MustNewMatrix(randomTable(rng, 4, 4))
	for _, player := range []Player{Player1, Player2} {
		first := m.DominatedStrategies(player)
		second := m.DominatedStrategies(player)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("dominated strategies changed between calls: %v vs %v", first, second)
		}

		for _, opp := range m.Strategies(player.Opponent()) {
			first := m.BestResponses(player, opp)
			second := m.BestResponses(player, opp)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("best responses changed between calls: %v vs %v", first, second)
			}
		}
	}
}

func TestEliminateStrategy(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{10, 20, 30}, []int{1, 2, 3},
		[][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		[][]int64{{-1, -2, -3}, {-4, -5, -6}, {-7, -8, -9}},
	))

	m.EliminateStrategy(Player1, 20)
	if got := m.Strategies(Player1); !reflect.DeepEqual(got, []int{10, 30}) {
		t.Errorf("got player 1 strategies %v, expected [10 30]", got)
	}
	if rows, cols := m.Shape(); rows != 2 || cols != 3 {
		t.Errorf("got shape %dx%d, expected 2x3", rows, cols)
	}

	m.EliminateStrategy(Player2, 1)
	if got := m.Strategies(Player2); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("got player 2 strategies %v, expected [2 3]", got)
	}
	if rows, cols := m.Shape(); rows != 2 || cols != 2 {
		t.Errorf("got shape %dx%d, expected 2x2", rows, cols)
	}

	// Labels still address the same payoffs after positions shift.
	p := m.Payoff(30, 3)
	if p.Of(Player1).Cmp(big.NewRat(9, 1)) != 0 || p.Of(Player2).Cmp(big.NewRat(-9, 1)) != 0 {
		t.Errorf("got payoffs %v at (30, 3), expected 9.0, -9.0", p)
	}

	expectPanic(t, "not surviving", func() { m.EliminateStrategy(Player1, 20) })
	expectPanic(t, "invalid player", func() { m.EliminateStrategy(Player(3), 10) })

	m.EliminateStrategy(Player1, 10)
	expectPanic(t, "last strategy", func() { m.EliminateStrategy(Player1, 30) })
	if got := m.NumStrategies(Player1); got != 1 {
		t.Errorf("failed elimination changed state: %d strategies remain", got)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{0, 1}, []int{0, 1},
		[][]int64{{1, 2}, {3, 4}},
		[][]int64{{1, 2}, {3, 4}},
	))
	c := m.Clone()
	c.EliminateStrategy(Player2, 0)

	if m.NumStrategies(Player2) != 2 {
		t.Errorf("eliminating from clone modified original")
	}
	if !c.Surviving(Player2, 1) || c.Surviving(Player2, 0) {
		t.Errorf("got clone strategies %v, expected [1]", c.Strategies(Player2))
	}
}

func TestClone_DoesNotSharePayoffs(t *testing.T) {
	m := MustNewMatrix(intTable(
		[]int{0, 1}, []int{0, 1},
		[][]int64{{2, 0}, {0, 1}},
		[][]int64{{2, 0}, {0, 1}},
	))
	c := m.Clone()

	u := c.payoffs[0][0].Of(Player1)
	u.Add(u, big.NewRat(100, 1))
	if got := m.Payoff(0, 0).String(); got != "2.0, 2.0" {
		t.Errorf("modifying clone payoff changed original: got %q", got)
	}

	p := m.Payoff(0, 0).Of(Player2)
	p.Add(p, big.NewRat(100, 1))
	if got := m.Payoff(0, 0).String(); got != "2.0, 2.0" {
		t.Errorf("modifying returned payoff changed matrix: got %q", got)
	}
}

func TestFloatPayoffs_Exact(t *testing.T) {
	// 0.1 + 0.2 is not 0.3 in float64, so the first row strictly
	// dominates the second when payoffs are converted exactly.
	a, b := 0.1, 0.2
	m := MustNewMatrix(&Table{
		RowLabels: []int{0, 1},
		ColLabels: []int{0},
		Payoffs: [][]Payoffs{
			{FloatPayoffs(a+b, 0)},
			{FloatPayoffs(0.3, 0)},
		},
	})

	expected := []Domination{{Dominated: 1, By: 0}}
	if got := m.DominatedStrategies(Player1); !reflect.DeepEqual(got, expected) {
		t.Errorf("got %v, expected %v", got, expected)
	}

	if got := FloatPayoffs(0.5, -1.25).String(); got != "0.5, -1.25" {
		t.Errorf("got %q, expected %q", got, "0.5, -1.25")
	}
}

func TestFormatPayoff(t *testing.T) {
	testCases := []struct {
		value    *big.Rat
		expected string
	}{
		{big.NewRat(1, 1), "1.0"},
		{big.NewRat(-3, 1), "-3.0"},
		{big.NewRat(1, 2), "0.5"},
		{big.NewRat(-5, 2), "-2.5"},
		{big.NewRat(1, 8), "0.125"},
		{big.NewRat(1, 3), "1/3"},
	}

	for _, tc := range testCases {
		if got := FormatPayoff(tc.value); got != tc.expected {
			t.Errorf("FormatPayoff(%v): got %q, expected %q", tc.value, got, tc.expected)
		}
	}
}

func TestParsePayoff(t *testing.T) {
	for s, expected := range map[string]*big.Rat{
		"0.5":   big.NewRat(1, 2),
		"-1.0":  big.NewRat(-1, 1),
		" 3 ":   big.NewRat(3, 1),
		"1/3":   big.NewRat(1, 3),
		"-0.25": big.NewRat(-1, 4),
	} {
		got, err := ParsePayoff(s)
		if err != nil {
			t.Errorf("ParsePayoff(%q): %v", s, err)
			continue
		}
		if got.Cmp(expected) != 0 {
			t.Errorf("ParsePayoff(%q): got %v, expected %v", s, got, expected)
		}
	}

	if _, err := ParsePayoff("one"); err == nil {
		t.Error("expected error parsing non-numeric payoff")
	}
}
