// Generate the payoff table of an investment contest game.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/timpalpant/nashcontest/contest"
	"github.com/timpalpant/nashcontest/gameio"
)

func main() {
	r := flag.Int("r", 1, "Budget R")
	ma := flag.Int("m_a", 1, "Maximum investment of player A")
	mb := flag.Int("m_b", 1, "Maximum investment of player B")
	output := flag.String("output", "", "Output file (default games/<R>_<M_A>_<M_B>.csv)")
	flag.Parse()

	params := contest.Params{R: *r, MA: *ma, MB: *mb}
	table, err := contest.NewTable(params)
	if err != nil {
		glog.Fatal(err)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("games/%s.csv", params.Key())
	}

	glog.Infof("Saving %dx%d game %v to %v", table.NumRows(), table.NumCols(), params, filename)
	if err := gameio.SaveTable(filename, table); err != nil {
		glog.Fatal(err)
	}
	glog.Flush()
}
