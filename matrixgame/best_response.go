package matrixgame

// bestResponseScan computes each player's best responses to every
// surviving opponent strategy and reports all mutually best-responding
// profiles, in table order.
func bestResponseScan(m *Matrix, tr *tracer) []Equilibrium {
	p1Strats := m.strategies[0]
	p2Strats := m.strategies[1]

	// p2 strategy -> set of p1 best responses.
	p1BestResponses := make(map[int]map[int]bool, len(p2Strats))
	for _, p2s := range p2Strats {
		brs := m.BestResponses(Player1, p2s)
		p1BestResponses[p2s] = toSet(brs)
		for _, br := range brs {
			tr.logf("%d is player 1's best response to player 2 playing %d.", br, p2s)
		}
	}

	// p1 strategy -> set of p2 best responses.
	p2BestResponses := make(map[int]map[int]bool, len(p1Strats))
	for _, p1s := range p1Strats {
		brs := m.BestResponses(Player2, p1s)
		p2BestResponses[p1s] = toSet(brs)
		for _, br := range brs {
			tr.logf("%d is player 2's best response to player 1 playing %d.", br, p1s)
		}
	}

	tr.snapshot(m.render(func(player Player, i, j int) bool {
		if player == Player1 {
			return p1BestResponses[p2Strats[j]][p1Strats[i]]
		}
		return p2BestResponses[p1Strats[i]][p2Strats[j]]
	}))

	var result []Equilibrium
	for _, p1s := range p1Strats {
		for _, p2s := range p2Strats {
			if p1BestResponses[p2s][p1s] && p2BestResponses[p1s][p2s] {
				result = append(result, Equilibrium{p1s, p2s})
			}
		}
	}

	if len(result) == 0 {
		tr.logf("There are no pure strategy Nash equilibria.")
		return nil
	}

	tr.logf("Found pure strategy Nash equilibria:")
	for _, eq := range result {
		tr.logf("NE: <%d, %d>", eq.P1, eq.P2)
	}

	return result
}

func toSet(labels []int) map[int]bool {
	s := make(map[int]bool, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}
