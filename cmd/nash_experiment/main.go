// Sweep the investment contest family, solve every game and report how
// well the closed-form predictions match.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/golang/glog"

	"github.com/timpalpant/nashcontest/experiment"
)

func main() {
	configFile := flag.String("config", "experiment.hcl", "HCL experiment configuration (defaults are used if missing)")
	mode := flag.String("mode", "", "Games to sweep: all, symmetric or asymmetric")
	maxR := flag.Int("max_r", 0, "Exclusive upper bound on the budget R")
	maxMA := flag.Int("max_m_a", 0, "Exclusive upper bound on M_A")
	maxMB := flag.Int("max_m_b", 0, "Exclusive upper bound on M_B")
	gamesDir := flag.String("games_dir", "", "Directory of cached game tables")
	compress := flag.Bool("compress_games", false, "Store game tables gzip compressed")
	results := flag.String("results", "", "Output CSV of per-game results")
	heatmap := flag.String("heatmap", "", "Optional .npz of equilibrium counts per budget")
	workers := flag.Int("workers", 0, "Number of games to solve concurrently")
	skipInvalid := flag.Bool("skip_invalid", false, "Skip games whose solve fails instead of aborting")
	traceSolver := flag.Bool("trace_solver", false, "Log every solver step")
	tracePredictor := flag.Bool("trace_predictor", false, "Log the prediction rule chosen for every game")
	flag.Parse()

	config, err := experiment.LoadConfig(*configFile)
	if err != nil {
		glog.Fatal(err)
	}

	// Explicitly set flags override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			// Keep the results file name in step with the mode unless
			// it was chosen explicitly.
			if config.ResultsCSV == fmt.Sprintf("results_%s.csv", config.Mode) && !isFlagSet("results") {
				config.ResultsCSV = fmt.Sprintf("results_%s.csv", *mode)
			}
			config.Mode = experiment.Mode(*mode)
		case "max_r":
			config.MaxR = *maxR
		case "max_m_a":
			config.MaxMA = *maxMA
		case "max_m_b":
			config.MaxMB = *maxMB
		case "games_dir":
			config.GamesDir = *gamesDir
		case "compress_games":
			config.CompressGames = *compress
		case "results":
			config.ResultsCSV = *results
		case "heatmap":
			config.HeatmapNPZ = *heatmap
		case "workers":
			config.Workers = *workers
		case "skip_invalid":
			config.SkipInvalid = *skipInvalid
		case "trace_solver":
			config.Trace.Solver = *traceSolver
		case "trace_predictor":
			config.Trace.Predictor = *tracePredictor
		}
	})

	runner, err := experiment.NewRunner(config)
	if err != nil {
		glog.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	report, err := runner.Run(ctx)
	if err != nil {
		glog.Fatal(err)
	}

	fmt.Println(report.Summary())
	fmt.Printf("Results saved to %s.\n", config.ResultsCSV)
	glog.Flush()
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
