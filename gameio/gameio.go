// Package gameio reads and writes payoff tables as CSV.
//
// The first row holds an empty cell followed by player 2's strategy labels.
// Each following row holds a player 1 strategy label followed by one
// "p1,p2" payoff cell per column:
//
//	,0,1
//	0,"0.5,0.5","0.0,0.0"
//	1,"0.0,0.0","-0.5,-0.5"
//
// Files whose name ends in ".gz" are gzip compressed.
package gameio

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/nashcontest/internal/fileutil"
	"github.com/timpalpant/nashcontest/matrixgame"
)

// ReadTable parses a payoff table in CSV form.
func ReadTable(r io.Reader) (*matrixgame.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return nil, errors.Errorf("payoff table needs a header and at least one row, got %d rows", len(records))
	}

	header := records[0]
	if len(header) < 2 {
		return nil, errors.New("payoff table header has no column labels")
	}
	cols, err := parseLabels(header[1:])
	if err != nil {
		return nil, errors.Wrap(err, "column labels")
	}

	table := &matrixgame.Table{ColLabels: cols}
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, errors.Errorf("row %d has %d fields, expected %d", i+1, len(record), len(header))
		}

		label, err := parseLabel(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d label", i+1)
		}

		row := make([]matrixgame.Payoffs, len(cols))
		for j, cell := range record[1:] {
			row[j], err = parseCell(cell)
			if err != nil {
				return nil, errors.Wrapf(err, "payoff at (%d, %d)", label, cols[j])
			}
		}

		table.RowLabels = append(table.RowLabels, label)
		table.Payoffs = append(table.Payoffs, row)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}

// WriteTable writes t in CSV form.
func WriteTable(w io.Writer, t *matrixgame.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(t.ColLabels)+1)
	header = append(header, "")
	for _, col := range t.ColLabels {
		header = append(header, strconv.Itoa(col))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range t.Payoffs {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(t.RowLabels[i]))
		for _, cell := range row {
			record = append(record, matrixgame.FormatPayoff(cell[0])+","+matrixgame.FormatPayoff(cell[1]))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// LoadTable reads a payoff table from filename.
func LoadTable(filename string) (*matrixgame.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if isGzip(filename) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "open gzip %v", filename)
		}
		defer gz.Close()
		r = gz
	}

	t, err := ReadTable(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load game %v", filename)
	}

	return t, nil
}

// SaveTable atomically writes t to filename, creating parent directories.
func SaveTable(filename string, t *matrixgame.Table) error {
	var buf bytes.Buffer
	if isGzip(filename) {
		gz := gzip.NewWriter(&buf)
		if err := WriteTable(gz, t); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			return err
		}
	} else if err := WriteTable(&buf, t); err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(filename, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "save game %v", filename)
	}

	return nil
}

func isGzip(filename string) bool {
	return strings.HasSuffix(filename, ".gz")
}

func parseCell(cell string) (matrixgame.Payoffs, error) {
	parts := strings.Split(cell, ",")
	if len(parts) != 2 {
		return matrixgame.Payoffs{}, errors.Errorf("expected \"p1,p2\", got %q", cell)
	}

	p1, err := matrixgame.ParsePayoff(parts[0])
	if err != nil {
		return matrixgame.Payoffs{}, err
	}
	p2, err := matrixgame.ParsePayoff(parts[1])
	if err != nil {
		return matrixgame.Payoffs{}, err
	}

	return matrixgame.NewPayoffs(p1, p2), nil
}

func parseLabels(fields []string) ([]int, error) {
	labels := make([]int, len(fields))
	for i, f := range fields {
		l, err := parseLabel(f)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}

// parseLabel accepts integer labels, including the "3.0" form some
// spreadsheet tools emit.
func parseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if l, err := strconv.Atoi(s); err == nil {
		return l, nil
	}

	r, err := matrixgame.ParsePayoff(s)
	if err != nil || !r.IsInt() || !r.Num().IsInt64() {
		return 0, errors.Errorf("invalid strategy label %q", s)
	}
	return int(r.Num().Int64()), nil
}
