// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"time"
)

// RawReport is a single undecoded FAERS record as returned by the upstream
// results array. Decoding is deferred to normalization so that one malformed
// record cannot fail the whole batch.
type RawReport = json.RawMessage

// Report is the canonical, normalized view of one adverse-event report.
// Missing upstream fields degrade to zero values; a Report with Year == 0 is
// excluded from the year aggregation only, and one with Country == "" from
// the country aggregation only.
type Report struct {
	Year      int      // 4-digit report year; 0 when absent or unparsable
	Reactions []string // reaction terms as reported, uppercased; may be empty
	Country   string   // ISO-style reporter country code; "" when absent
}

// YearCount is one row of the year-over-year report trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ReactionCount is one row of the ranked clinical side-effect table.
type ReactionCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// CountryCount is one row of the per-country report-volume table.
// Lat/Lon are nil for country codes without a known coordinate mapping;
// such rows stay in the count table but are omitted from the map-ready
// subset.
type CountryCount struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
}

// SafetySummary bundles the three result tables for one drug query.
// SampleBasis states explicitly that the tables are derived from the most
// recent SampleSize reports rather than the full FAERS corpus.
type SafetySummary struct {
	Drug        string          `json:"drug"`
	SampleSize  int             `json:"sample_size"`
	SampleBasis string          `json:"sample_basis"`
	FetchedAt   time.Time       `json:"fetched_at"`
	Years       []YearCount     `json:"years"`
	Reactions   []ReactionCount `json:"reactions"`
	Countries   []CountryCount  `json:"countries"`
}
