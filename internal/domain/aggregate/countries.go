package aggregate

import (
	"sort"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/reference"
)

// Countries counts reports per reporting country, descending by count, with
// ties broken by first-encountered order. Every counted code keeps its row;
// codes without a coordinate mapping simply carry nil coordinates and drop
// out of the map-ready subset (see MappedOnly), never out of the count.
func Countries(reports []model.Report) []model.CountryCount {
	type tally struct {
		count     int
		firstSeen int
	}
	counts := make(map[string]*tally)
	for i, r := range reports {
		if r.Country == "" {
			continue
		}
		t, ok := counts[r.Country]
		if !ok {
			t = &tally{firstSeen: i}
			counts[r.Country] = t
		}
		t.count++
	}

	out := make([]model.CountryCount, 0, len(counts))
	seen := make(map[string]int, len(counts))
	for code, t := range counts {
		row := model.CountryCount{
			Code:  code,
			Name:  reference.CountryName(code),
			Count: t.count,
		}
		if coord, ok := reference.LookupCoordinate(code); ok {
			lat, lon := coord.Lat, coord.Lon
			row.Lat, row.Lon = &lat, &lon
		}
		out = append(out, row)
		seen[code] = t.firstSeen
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return seen[out[i].Code] < seen[out[j].Code]
	})
	return out
}

// MappedOnly returns the subset of rows that carry display coordinates.
func MappedOnly(counts []model.CountryCount) []model.CountryCount {
	out := make([]model.CountryCount, 0, len(counts))
	for _, c := range counts {
		if c.Lat != nil && c.Lon != nil {
			out = append(out, c)
		}
	}
	return out
}
