package smoketest

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

// Variant styles. Every variant of a drug must canonicalize to the same
// cache key server-side, so all of them should come back with the same
// summary tables.
const (
	caseLower   = 0
	caseUpper   = 1
	caseTitle   = 2
	casePadded  = 3
	caseMixed   = 4
	variantKind = 5
)

// query is one planned request: a spelling variant tied back to the drug it
// must resolve to.
type query struct {
	drug    string
	spelled string
}

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateQueries builds the query plan: each drug spelled several ways.
// The first variant per drug is always the canonical lowercase spelling so
// verification has a baseline.
func generateQueries(ctx context.Context, config *Config, stats *Stats) []query {
	logger.Get().Info(ctx, "generating query plan",
		logger.Int("drugs", len(config.Drugs)),
		logger.Int("variantsPerDrug", config.Variants))

	queries := make([]query, 0, len(config.Drugs)*config.Variants)
	for _, drug := range config.Drugs {
		base := strings.ToLower(strings.TrimSpace(drug))
		if base == "" {
			continue
		}
		queries = append(queries, query{drug: base, spelled: base})
		for i := 1; i < config.Variants; i++ {
			queries = append(queries, query{drug: base, spelled: spellVariant(base)})
		}
	}

	stats.QueriesPlanned = len(queries)
	return queries
}

// spellVariant returns a randomly restyled spelling of a canonical name.
func spellVariant(base string) string {
	switch getRandomInt(variantKind) {
	case caseUpper:
		return strings.ToUpper(base)
	case caseTitle:
		return strings.ToUpper(base[:1]) + base[1:]
	case casePadded:
		return "%20" + base + "%20"
	case caseMixed:
		var b strings.Builder
		for i, r := range base {
			if i%2 == 0 {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	default:
		return base
	}
}
