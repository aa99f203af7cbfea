// Package normalize converts raw FAERS records into typed reports.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/domain/model"
)

// Earliest plausible report year. FAERS receive dates before electronic
// submission are noise; anything outside [minYear, current year] is treated
// as unknown.
const minYear = 2000

// rawFields mirrors the subset of a FAERS event record the transforms read.
type rawFields struct {
	ReceiveDate  string `json:"receivedate"`
	OccurCountry string `json:"occurcountry"`
	Patient      *struct {
		Reactions []struct {
			Term string `json:"reactionmeddrapt"`
		} `json:"reaction"`
	} `json:"patient"`
	PrimarySource *struct {
		ReporterCountry string `json:"reportercountry"`
	} `json:"primarysource"`
}

// Batch normalizes a raw record batch. Records that fail to decode are
// skipped; the second return value reports how many were dropped. A batch
// in which every record is malformed degrades to an empty result, never an
// error. Pure: no I/O, deterministic for a fixed clock year.
func Batch(raws []model.RawReport) ([]model.Report, int) {
	reports := make([]model.Report, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		rep, err := one(raw)
		if err != nil {
			skipped++
			continue
		}
		reports = append(reports, rep)
	}
	return reports, skipped
}

func one(raw model.RawReport) (model.Report, error) {
	var f rawFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return model.Report{}, err
	}

	rep := model.Report{
		Year:      parseYear(f.ReceiveDate),
		Reactions: reactions(f),
		Country:   country(f),
	}
	return rep, nil
}

// parseYear extracts a 4-digit year from a YYYYMMDD receive date. Absent or
// implausible dates yield 0, which excludes the record from the year
// aggregation only.
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	if year < minYear || year > time.Now().Year() {
		return 0
	}
	return year
}

func reactions(f rawFields) []string {
	if f.Patient == nil || len(f.Patient.Reactions) == 0 {
		return nil
	}
	terms := make([]string, 0, len(f.Patient.Reactions))
	for _, r := range f.Patient.Reactions {
		term := strings.ToUpper(strings.TrimSpace(r.Term))
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// country prefers the report-level occurrence country and falls back to the
// primary reporter's country.
func country(f rawFields) string {
	if c := strings.ToUpper(strings.TrimSpace(f.OccurCountry)); c != "" {
		return c
	}
	if f.PrimarySource != nil {
		return strings.ToUpper(strings.TrimSpace(f.PrimarySource.ReporterCountry))
	}
	return ""
}
