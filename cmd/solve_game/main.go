// Solve a single game for its pure strategy Nash equilibria and print
// every step of the elimination.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/timpalpant/nashcontest/contest"
	"github.com/timpalpant/nashcontest/gameio"
	"github.com/timpalpant/nashcontest/matrixgame"
	"github.com/timpalpant/nashcontest/predict"
)

func main() {
	game := flag.String("game", "", "CSV payoff table to solve (.csv or .csv.gz)")
	r := flag.Int("r", 1, "Budget R, if generating the game")
	ma := flag.Int("m_a", 1, "Maximum investment of player A, if generating the game")
	mb := flag.Int("m_b", 1, "Maximum investment of player B, if generating the game")
	trace := flag.Bool("trace", false, "Log each step as it happens")
	flag.Parse()

	var table *matrixgame.Table
	var err error
	params := contest.Params{R: *r, MA: *ma, MB: *mb}
	if *game != "" {
		glog.Infof("Loading game from: %v", *game)
		table, err = gameio.LoadTable(*game)
	} else {
		glog.Infof("Generating game %v", params)
		table, err = contest.NewTable(params)
	}
	if err != nil {
		glog.Fatal(err)
	}

	m, err := matrixgame.NewMatrix(table)
	if err != nil {
		glog.Fatal(err)
	}

	result := matrixgame.Solve(m, matrixgame.Options{Trace: *trace})
	for _, line := range result.Trace {
		fmt.Println(line)
	}
	fmt.Printf("\nEquilibria: %s\n", matrixgame.FormatEquilibria(result.Equilibria))
	fmt.Printf("Surviving strategies: %v / %v\n",
		m.Strategies(matrixgame.Player1), m.Strategies(matrixgame.Player2))

	if *game == "" {
		p1, p2, sigRule := predict.Signature(params, predict.Options{})
		count, locs, nashRule := predict.PureNash(params, predict.Options{})
		fmt.Printf("Predicted signature: %v / %v (%s)\n", p1, p2, sigRule)
		fmt.Printf("Predicted equilibria: %d at %s (%s)\n",
			count, matrixgame.FormatEquilibria(locs), nashRule)
	}
	glog.Flush()
}
