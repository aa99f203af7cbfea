package aggregate

import (
	"sort"
	"strings"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/reference"
)

// DefaultTopReactions bounds the ranked side-effect table.
const DefaultTopReactions = 10

// ReactionOption applies a configuration option to TopReactions.
type ReactionOption func(*reactionConfig)

type reactionConfig struct {
	blocklist map[string]struct{}
	topN      int
}

// WithBlocklist replaces the default administrative-term blocklist. Terms
// are matched uppercased.
func WithBlocklist(terms map[string]struct{}) ReactionOption {
	return func(c *reactionConfig) {
		if terms != nil {
			c.blocklist = terms
		}
	}
}

// WithTopN sets how many ranked terms to return.
func WithTopN(n int) ReactionOption {
	return func(c *reactionConfig) {
		if n > 0 {
			c.topN = n
		}
	}
}

// TopReactions flattens every reaction term across the batch into one
// frequency table, strips administrative/filing categories, and returns the
// top N terms by descending count. Ties break on first-encountered order so
// repeated runs over the same batch return identical tables.
func TopReactions(reports []model.Report, opts ...ReactionOption) []model.ReactionCount {
	cfg := &reactionConfig{
		blocklist: reference.Blocklist(),
		topN:      DefaultTopReactions,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	type tally struct {
		count     int
		firstSeen int
	}
	counts := make(map[string]*tally)
	order := 0
	for _, r := range reports {
		for _, term := range r.Reactions {
			term = strings.ToUpper(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, blocked := cfg.blocklist[term]; blocked {
				continue
			}
			t, ok := counts[term]
			if !ok {
				t = &tally{firstSeen: order}
				counts[term] = t
			}
			t.count++
			order++
		}
	}

	out := make([]model.ReactionCount, 0, len(counts))
	seen := make(map[string]int, len(counts))
	for term, t := range counts {
		out = append(out, model.ReactionCount{Term: term, Count: t.count})
		seen[term] = t.firstSeen
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return seen[out[i].Term] < seen[out[j].Term]
	})

	if len(out) > cfg.topN {
		out = out[:cfg.topN]
	}
	return out
}
