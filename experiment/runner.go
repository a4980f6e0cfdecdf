// Package experiment sweeps the investment contest family, solves each game
// exactly and scores the closed-form predictions against the solutions.
package experiment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timpalpant/nashcontest/contest"
	"github.com/timpalpant/nashcontest/matrixgame"
	"github.com/timpalpant/nashcontest/predict"
)

// Row is the outcome of one game.
type Row struct {
	Params contest.Params

	PredictedSignature Signature
	TrueSignature      Signature
	SignatureRule      string

	PredictedNumNash int
	TrueNumNash      int
	PredictedNash    []matrixgame.Equilibrium
	TrueNash         []matrixgame.Equilibrium
	NashRule         string
}

func (r *Row) SignatureCorrect() bool {
	return r.PredictedSignature.Equal(r.TrueSignature)
}

func (r *Row) NumNashCorrect() bool {
	return r.PredictedNumNash == r.TrueNumNash
}

// LocationsCorrect compares locations as ordered lists.
func (r *Row) LocationsCorrect() bool {
	return matrixgame.FormatEquilibria(r.PredictedNash) == matrixgame.FormatEquilibria(r.TrueNash)
}

// Signature is the sorted set of surviving strategies of each player.
type Signature struct {
	P1 []int
	P2 []int
}

func NewSignature(p1, p2 []int) Signature {
	s := Signature{
		P1: append([]int{}, p1...),
		P2: append([]int{}, p2...),
	}
	sort.Ints(s.P1)
	sort.Ints(s.P2)
	return s
}

func (s Signature) Equal(other Signature) bool {
	return intsEqual(s.P1, other.P1) && intsEqual(s.P2, other.P2)
}

// String renders the signature as "([0, 1], [1, 2])".
func (s Signature) String() string {
	return "(" + formatInts(s.P1) + ", " + formatInts(s.P2) + ")"
}

// SolveError reports a game whose solve violated a matrix invariant.
type SolveError struct {
	Params contest.Params
	Cause  interface{}
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solving game %v: %v", e.Params, e.Cause)
}

// Report is the outcome of a run.
type Report struct {
	// Rows in sweep order.
	Rows    []*Row
	Skipped []contest.Params

	Signature    *Tracker
	NashCount    *Tracker
	NashLocation *Tracker
}

func newReport() *Report {
	return &Report{
		Signature:    NewTracker(),
		NashCount:    NewTracker(),
		NashLocation: NewTracker(),
	}
}

func (r *Report) add(row *Row) {
	r.Rows = append(r.Rows, row)
	r.Signature.Record(row.SignatureRule, row.SignatureCorrect())
	r.NashCount.Record(row.NashRule, row.NumNashCorrect())
	r.NashLocation.Record(row.NashRule, row.LocationsCorrect())
}

// Summary renders the accuracy of each prediction type.
func (r *Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("=== Signature Prediction Accuracy ===\n")
	sb.WriteString(r.Signature.Summary())
	sb.WriteString("\n=== Nash Count Prediction Accuracy ===\n")
	sb.WriteString(r.NashCount.Summary())
	sb.WriteString("\n=== Nash Location Prediction Accuracy ===\n")
	sb.WriteString(r.NashLocation.Summary())
	return sb.String()
}

// Runner evaluates games against a GameStore.
type Runner struct {
	config *Config
	store  *GameStore
}

func NewRunner(config *Config) (*Runner, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	store, err := NewGameStore(config.GamesDir, config.CompressGames, config.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Runner{config: config, store: store}, nil
}

// Run evaluates every game of the sweep, solving up to Workers games
// concurrently, and writes the configured outputs.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	games := r.config.Games()
	glog.Infof("Evaluating %d games (mode: %s, workers: %d)", len(games), r.config.Mode, r.config.Workers)
	start := time.Now()

	rows := make([]*Row, len(games))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, p := range games {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			row, err := r.Evaluate(p)
			if err != nil {
				var solveErr *SolveError
				if r.config.SkipInvalid && errors.As(err, &solveErr) {
					glog.Warningf("Skipping game: %v", err)
					return nil
				}
				return err
			}

			glog.V(1).Infof("Game %v: equilibria %s, survivors %v",
				p, matrixgame.FormatEquilibria(row.TrueNash), row.TrueSignature)
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := newReport()
	for i, row := range rows {
		if row == nil {
			report.Skipped = append(report.Skipped, games[i])
			continue
		}
		report.add(row)
	}

	glog.Infof("Evaluated %d games in %v (%d skipped)",
		len(report.Rows), time.Since(start), len(report.Skipped))

	if err := r.writeOutputs(report); err != nil {
		return nil, err
	}

	return report, nil
}

// Evaluate solves one game and compares it to the predictions.
func (r *Runner) Evaluate(p contest.Params) (*Row, error) {
	predictOpts := predict.Options{Trace: r.config.Trace.Predictor}
	predictedP1, predictedP2, sigRule := predict.Signature(p, predictOpts)

	table, err := r.store.Load(p)
	if err != nil {
		return nil, err
	}

	m, err := matrixgame.NewMatrix(table)
	if err != nil {
		return nil, errors.Wrapf(err, "game %v", p)
	}

	opts := matrixgame.Options{Trace: r.config.Trace.Solver}
	result, err := solve(p, func() *matrixgame.Result {
		return matrixgame.Solve(m, opts)
	})
	if err != nil {
		return nil, err
	}

	count, locs, nashRule := predict.PureNash(p, predictOpts)
	return &Row{
		Params:             p,
		PredictedSignature: NewSignature(predictedP1, predictedP2),
		TrueSignature: NewSignature(
			m.Strategies(matrixgame.Player1),
			m.Strategies(matrixgame.Player2)),
		SignatureRule:    sigRule,
		PredictedNumNash: count,
		TrueNumNash:      len(result.Equilibria),
		PredictedNash:    locs,
		TrueNash:         result.Equilibria,
		NashRule:         nashRule,
	}, nil
}

// solve runs solveFn, converting a matrix invariant violation into a
// *SolveError.
func solve(p contest.Params, solveFn func() *matrixgame.Result) (result *matrixgame.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &SolveError{Params: p, Cause: r}
		}
	}()

	return solveFn(), nil
}

func (r *Runner) writeOutputs(report *Report) error {
	if err := SaveResults(r.config.ResultsCSV, report.Rows); err != nil {
		return err
	}
	glog.Infof("Results saved to %v", r.config.ResultsCSV)

	sorted := SortedResultsPath(r.config.ResultsCSV)
	if err := SaveResults(sorted, SortRows(report.Rows)); err != nil {
		return err
	}
	glog.Infof("Sorted results saved to %v", sorted)

	if r.config.HeatmapNPZ != "" {
		if err := SaveHeatmap(r.config.HeatmapNPZ, report.Rows, r.config.MaxMA, r.config.MaxMB); err != nil {
			return err
		}
		glog.Infof("Heatmap saved to %v", r.config.HeatmapNPZ)
	}

	return nil
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
