// Package aggregate implements the client-side cleaning transforms that turn
// normalized reports into the three dashboard tables. All transforms are
// pure and deterministic; they only read the report batch and may run
// concurrently over the same slice.
package aggregate

import (
	"sort"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

// Years counts reports per report year, ascending by year. Reports with an
// unknown year are excluded here but still feed the other aggregations.
//
// The count happens client-side on purpose: asking the upstream endpoint to
// bucket by date while also filtering by date silently returns zero results,
// so the server is never trusted with this aggregation.
func Years(reports []model.Report) []model.YearCount {
	counts := make(map[int]int)
	for _, r := range reports {
		if r.Year == 0 {
			continue
		}
		counts[r.Year]++
	}

	out := make([]model.YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, model.YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
