package experiment

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/nashcontest/internal/fileutil"
	"github.com/timpalpant/nashcontest/internal/npyio"
)

// Heatmap returns, for each budget R in rows, a maxMA x maxMB grid of
// true pure equilibrium counts indexed [M_A][M_B], plus the vector of
// budgets under "r_values". Games that were not evaluated count as 0.
func Heatmap(rows []*Row, maxMA, maxMB int) map[string]npyio.Array {
	grids := make(map[int][]float32)
	for _, row := range rows {
		p := row.Params
		if p.MA >= maxMA || p.MB >= maxMB {
			continue
		}

		grid, ok := grids[p.R]
		if !ok {
			grid = make([]float32, maxMA*maxMB)
			grids[p.R] = grid
		}
		grid[p.MA*maxMB+p.MB] = float32(row.TrueNumNash)
	}

	budgets := make([]int, 0, len(grids))
	for r := range grids {
		budgets = append(budgets, r)
	}
	sort.Ints(budgets)

	arrays := make(map[string]npyio.Array, len(grids)+1)
	rValues := make([]float32, len(budgets))
	for i, r := range budgets {
		rValues[i] = float32(r)
		arrays[fmt.Sprintf("ne_count_R%d", r)] = npyio.Array{
			Shape: []int{maxMA, maxMB},
			Data:  grids[r],
		}
	}
	arrays["r_values"] = npyio.Vector(rValues)

	return arrays
}

// SaveHeatmap atomically writes the heatmap arrays as an .npz archive.
func SaveHeatmap(filename string, rows []*Row, maxMA, maxMB int) error {
	arrays := Heatmap(rows, maxMA, maxMB)
	err := fileutil.WriteAtomic(filename, 0644, func(w io.Writer) error {
		return npyio.WriteNPZ(w, arrays)
	})
	return errors.Wrapf(err, "save heatmap %v", filename)
}
