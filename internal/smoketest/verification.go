package smoketest

import (
	"context"
	"fmt"
	"log"
)

// verifyResults checks every drug's tables against the dashboard's
// ordering and consistency guarantees.
func verifyResults(ctx context.Context, config *Config, summaries map[string]Summary, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(summaries) == 0 {
		return fmt.Errorf("no summaries to verify")
	}

	client := newHTTPClient(config.Timeout)

	for drug, summary := range summaries {
		errs := verifySummaryShape(drug, summary)

		// The single-table endpoints must agree with the full summary.
		if trend, err := fetchTrend(ctx, client, config.BaseURL, drug); err != nil {
			errs = append(errs, fmt.Errorf("trend endpoint: %w", err))
		} else if err := verifySameYears(summary.Years, trend); err != nil {
			errs = append(errs, err)
		}

		if reactions, err := fetchReactions(ctx, client, config.BaseURL, drug, config.TopN); err != nil {
			errs = append(errs, fmt.Errorf("reactions endpoint: %w", err))
		} else if len(reactions) > config.TopN {
			errs = append(errs, fmt.Errorf("reactions table exceeds requested limit: %d > %d",
				len(reactions), config.TopN))
		}

		if mapped, err := fetchCountries(ctx, client, config.BaseURL, drug, true); err != nil {
			errs = append(errs, fmt.Errorf("countries endpoint: %w", err))
		} else if err := verifyMappedSubset(summary.Countries, mapped); err != nil {
			errs = append(errs, err)
		}

		if len(errs) > 0 {
			stats.VerificationErrors += len(errs)
			for _, err := range errs {
				log.Printf("⚠️  %s: %v", drug, err)
			}
			continue
		}

		stats.DrugsVerified++
		if config.Verbose {
			log.Printf("✅ %s verified (%s): %d years, %d reactions, %d countries",
				drug, summary.SampleBasis, len(summary.Years), len(summary.Reactions), len(summary.Countries))
		}
	}

	displayTopTables(summaries, config.Verbose)

	if stats.VerificationErrors > 0 {
		return fmt.Errorf("%d verification errors across %d drugs",
			stats.VerificationErrors, len(summaries))
	}
	log.Println("✅ Result verification completed")
	return nil
}

// verifySummaryShape checks the ordering invariants of one summary.
func verifySummaryShape(drug string, s Summary) []error {
	var errs []error

	for i := 1; i < len(s.Years); i++ {
		if s.Years[i].Year <= s.Years[i-1].Year {
			errs = append(errs, fmt.Errorf("trend not ascending at index %d", i))
			break
		}
	}

	for i := 1; i < len(s.Reactions); i++ {
		if s.Reactions[i].Count > s.Reactions[i-1].Count {
			errs = append(errs, fmt.Errorf("reactions not ranked at index %d", i))
			break
		}
	}

	for i := 1; i < len(s.Countries); i++ {
		if s.Countries[i].Count > s.Countries[i-1].Count {
			errs = append(errs, fmt.Errorf("countries not ranked at index %d", i))
			break
		}
	}

	for _, c := range s.Countries {
		if (c.Lat == nil) != (c.Lon == nil) {
			errs = append(errs, fmt.Errorf("country %s has a partial coordinate", c.Code))
		}
	}

	if s.SampleBasis == "" {
		errs = append(errs, fmt.Errorf("summary is missing its sampling label"))
	}
	return errs
}

// verifySameYears checks that the trend endpoint matches the summary's table.
func verifySameYears(fromSummary, fromTrend []YearCount) error {
	if len(fromSummary) != len(fromTrend) {
		return fmt.Errorf("trend endpoint row count %d does not match summary %d",
			len(fromTrend), len(fromSummary))
	}
	for i := range fromSummary {
		if fromSummary[i] != fromTrend[i] {
			return fmt.Errorf("trend endpoint disagrees with summary at index %d", i)
		}
	}
	return nil
}

// verifyMappedSubset checks that the map-ready rows are a subset of the full
// country table with identical counts.
func verifyMappedSubset(all []CountryRow, mapped []CountryRow) error {
	counts := make(map[string]int, len(all))
	for _, c := range all {
		counts[c.Code] = c.Count
	}
	for _, c := range mapped {
		if c.Lat == nil || c.Lon == nil {
			return fmt.Errorf("mapped row %s is missing coordinates", c.Code)
		}
		full, ok := counts[c.Code]
		if !ok {
			return fmt.Errorf("mapped row %s is absent from the full table", c.Code)
		}
		if full != c.Count {
			return fmt.Errorf("mapped row %s count %d differs from full table %d",
				c.Code, c.Count, full)
		}
	}
	if len(mapped) > len(all) {
		return fmt.Errorf("mapped table larger than full table: %d > %d", len(mapped), len(all))
	}
	return nil
}

// displayTopTables shows the leading rows per drug.
func displayTopTables(summaries map[string]Summary, verbose bool) {
	for drug, s := range summaries {
		topN := 3
		if len(s.Reactions) < topN {
			topN = len(s.Reactions)
		}
		log.Printf("🏆 Top %d reactions for %s:", topN, drug)
		for i := 0; i < topN; i++ {
			log.Printf("   %d. %s - Reports: %d", i+1, s.Reactions[i].Term, s.Reactions[i].Count)
		}

		if verbose && len(s.Years) > 0 {
			first := s.Years[0]
			last := s.Years[len(s.Years)-1]
			log.Printf(`📊 Trend for %s:
   Sample: %d reports
   Earliest year: %d (%d reports)
   Latest year: %d (%d reports)
`, drug, s.SampleSize, first.Year, first.Count, last.Year, last.Count)
		}
	}
}
