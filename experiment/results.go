package experiment

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/nashcontest/internal/fileutil"
	"github.com/timpalpant/nashcontest/matrixgame"
)

var resultsHeader = []string{
	"R", "M_A", "M_B",
	"PredictedSignature", "TrueSignature", "SigPredTrue?", "SigRuleUsed",
	"PredictedNumPureNash", "TrueNumPureNash", "NumPredTrue?", "NumRuleUsed",
	"PredNashLoc", "TrueNashLoc", "LocPredTrue?", "LocRuleUsed",
}

// WriteResults writes one CSV record per row.
func WriteResults(w io.Writer, rows []*Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultsHeader); err != nil {
		return err
	}

	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveResults atomically writes the results CSV to filename.
func SaveResults(filename string, rows []*Row) error {
	err := fileutil.WriteAtomic(filename, 0644, func(w io.Writer) error {
		return WriteResults(w, rows)
	})
	return errors.Wrapf(err, "save results %v", filename)
}

// SortedResultsPath returns the companion file for sorted results:
// "results_all.csv" becomes "results_all_sorted.csv".
func SortedResultsPath(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_sorted" + ext
}

// SortRows returns a copy of rows ordered by signature rule, then R,
// M_A and M_B.
func SortRows(rows []*Row) []*Row {
	sorted := append([]*Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SignatureRule != b.SignatureRule {
			return a.SignatureRule < b.SignatureRule
		}
		if a.Params.R != b.Params.R {
			return a.Params.R < b.Params.R
		}
		if a.Params.MA != b.Params.MA {
			return a.Params.MA < b.Params.MA
		}
		return a.Params.MB < b.Params.MB
	})
	return sorted
}

func (r *Row) record() []string {
	return []string{
		strconv.Itoa(r.Params.R),
		strconv.Itoa(r.Params.MA),
		strconv.Itoa(r.Params.MB),
		r.PredictedSignature.String(),
		r.TrueSignature.String(),
		yesNo(r.SignatureCorrect()),
		r.SignatureRule,
		strconv.Itoa(r.PredictedNumNash),
		strconv.Itoa(r.TrueNumNash),
		yesNo(r.NumNashCorrect()),
		r.NashRule,
		matrixgame.FormatEquilibria(r.PredictedNash),
		matrixgame.FormatEquilibria(r.TrueNash),
		yesNo(r.LocationsCorrect()),
		r.NashRule,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
