package smoketest

import "time"

// Config holds configuration for the dashboard smoke test
type Config struct {
	BaseURL  string        // Base URL of the service
	Drugs    []string      // Drug names to query
	Variants int           // Case/padding variants per drug
	TopN     int           // Reaction table size to request
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for test output
	Verbose  bool          // Enable verbose logging
}

// Summary mirrors the /summary/{drug} response shape.
type Summary struct {
	Drug        string        `json:"drug"`
	SampleSize  int           `json:"sample_size"`
	SampleBasis string        `json:"sample_basis"`
	Years       []YearCount   `json:"years"`
	Reactions   []ReactionRow `json:"reactions"`
	Countries   []CountryRow  `json:"countries"`
}

// YearCount is one row of the report-volume trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ReactionRow is one row of the ranked side-effect table.
type ReactionRow struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// CountryRow is one row of the per-country volume table.
type CountryRow struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
}

// Stats holds test statistics
type Stats struct {
	QueriesPlanned     int
	QueriesIssued      int
	QueriesSuccessful  int
	QueriesFailed      int
	DrugsVerified      int
	VerificationErrors int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
