package main

import (
	"fmt"
	"strings"

	"minic/internal/driver"
)

// timingSummary renders the per-stage timing report collected by the driver.
func timingSummary(result *driver.Result) string {
	report := result.Timing
	if len(report.Phases) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}
