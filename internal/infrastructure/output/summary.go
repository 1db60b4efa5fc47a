package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/smartretail/pipeline/internal/application/federate"
	"github.com/smartretail/pipeline/internal/application/normalize"
)

// writeSummary renders the operator-facing run report. It repeats the run
// counters and the rejection manifest in plain text so the report is readable
// without tooling. Wall-clock fields are kept out of everything except the
// duration line; the rest of the report is a pure function of the run.
func writeSummary(dir string, result *federate.Result, manifest *normalize.Manifest, runID uuid.UUID) error {
	var b strings.Builder
	line := strings.Repeat("=", 60)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "SMART RETAIL ANALYTICS - RUN SUMMARY")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Run ID:          %s\n", runID)
	fmt.Fprintf(&b, "Duration:        %s\n", result.Counters.Duration.Round(0))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SOURCES")
	fmt.Fprintln(&b, strings.Repeat("-", 60))
	for _, s := range []*normalize.SourceManifest{
		manifest.Orders, manifest.Campaigns, manifest.WebTraffic, manifest.IoT,
	} {
		if s == nil {
			continue
		}
		fmt.Fprintf(&b, "%-12s processed=%d rejected=%d", s.Source, s.Processed, s.Rejected)
		if s.OutOfWindow > 0 {
			fmt.Fprintf(&b, " out_of_window=%d", s.OutOfWindow)
		}
		fmt.Fprintln(&b)
		for _, rc := range s.ReasonCounts() {
			fmt.Fprintf(&b, "             %s: %d\n", rc.Reason, rc.Count)
		}
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "FEDERATION")
	fmt.Fprintln(&b, strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Fact rows:       %d\n", len(result.Facts))
	fmt.Fprintf(&b, "Matched orders:  %d (match rate %.4f)\n",
		result.Counters.MatchedOrders, result.Counters.MatchRate)
	fmt.Fprintf(&b, "Daily sales:     %d days\n", len(result.Daily))
	fmt.Fprintf(&b, "Campaigns:       %d\n", len(result.Campaigns))
	fmt.Fprintf(&b, "Products:        %d\n", len(result.Products))
	fmt.Fprintf(&b, "Countries:       %d\n", len(result.Countries))
	fmt.Fprintln(&b, line)

	return os.WriteFile(filepath.Join(dir, SummaryFile), []byte(b.String()), 0o644)
}
