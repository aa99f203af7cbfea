// Command safety-report runs the fetch-then-transform pipeline once for a
// single drug and prints the three summary tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/adapters/openfda"
	service "github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/internal/app"
	"github.com/yasirabdullah123/FDA-Drug-Safety-Dashboard/pkg/logger"
)

const runTimeout = 2 * time.Minute

func main() {
	var (
		drug     = flag.String("drug", "", "Drug name to query (required)")
		limit    = flag.Int("limit", 1000, "Full-record window, max 1000")
		top      = flag.Int("top", 10, "Number of ranked reactions to print")
		wildcard = flag.Bool("wildcard", false, "Trailing-wildcard product matching")
		apiKey   = flag.String("api-key", os.Getenv("FAERS_API_KEY"), "Optional openFDA api_key")
	)
	flag.Parse()

	if *drug == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn") // keep tables readable

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	svc := service.New(
		service.WithFetcher(openfda.New(openfda.WithAPIKey(*apiKey))),
		service.WithFetchLimit(*limit),
		service.WithTopReactions(*top),
		service.WithWildcard(*wildcard),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer svc.Stop()

	summary, err := svc.Summary(ctx, *drug)
	if err != nil {
		os.Stderr.WriteString("query failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("Adverse event summary for %s (%s)\n\n", summary.Drug, summary.SampleBasis)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "YEAR\tREPORTS")
	for _, y := range summary.Years {
		fmt.Fprintf(w, "%d\t%d\n", y.Year, y.Count)
	}
	fmt.Fprintln(w, "\nREACTION\tREPORTS")
	for _, rc := range summary.Reactions {
		fmt.Fprintf(w, "%s\t%d\n", rc.Term, rc.Count)
	}
	fmt.Fprintln(w, "\nCOUNTRY\tREPORTS\tMAPPED")
	for _, c := range summary.Countries {
		mapped := "no"
		if c.Lat != nil {
			mapped = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.Count, mapped)
	}
	_ = w.Flush()
}
