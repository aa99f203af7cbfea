// Package query builds openFDA search parameters for adverse-event lookups.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Field names on the upstream event endpoint.
//
// FieldMedicinalProduct is the raw, submitter-entered product name and is the
// only field queries filter on. The harmonized openfda.brand_name field is
// populated only for records that passed openFDA's fuzzy-matching indexing
// step and silently misses a large share of true matches.
const (
	FieldMedicinalProduct = "patient.drug.medicinalproduct"

	// DefaultLimit is the maximum number of full records the endpoint
	// returns per call; larger windows are not supported upstream.
	DefaultLimit = 1000

	// sortRecentFirst asks the server for the most recent reports first,
	// so a truncated window is always the newest sample.
	sortRecentFirst = "receivedate:desc"
)

// Option applies a configuration option to a query build.
type Option func(*builder)

type builder struct {
	wildcard bool
	sort     string
}

// WithWildcard enables trailing-wildcard matching on the product term, which
// also catches salt-form suffixes such as "SEMAGLUTIDE SODIUM".
func WithWildcard() Option {
	return func(b *builder) {
		b.wildcard = true
	}
}

// WithSort overrides the server-side sort expression.
func WithSort(sort string) Option {
	return func(b *builder) {
		if sort != "" {
			b.sort = sort
		}
	}
}

// Build constructs the query parameters for one drug lookup. The drug term is
// uppercased and matched against the raw medicinal-product field; limit is
// clamped to [1, DefaultLimit].
//
// Build never emits a count parameter: combining count-by-date with a date
// filter is documented upstream to silently return zero results, so all
// date/country/reaction aggregation happens client-side on full records.
func Build(drug string, limit int, opts ...Option) url.Values {
	b := &builder{sort: sortRecentFirst}
	for _, opt := range opts {
		opt(b)
	}

	term := strings.ToUpper(strings.TrimSpace(drug))

	var search string
	if b.wildcard {
		// The upstream grammar does not allow quoting around wildcards.
		search = fmt.Sprintf("%s:%s*", FieldMedicinalProduct, term)
	} else {
		search = fmt.Sprintf("%s:%q", FieldMedicinalProduct, term)
	}

	if limit < 1 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	v := url.Values{}
	v.Set("search", search)
	v.Set("limit", strconv.Itoa(limit))
	v.Set("sort", b.sort)
	return v
}
