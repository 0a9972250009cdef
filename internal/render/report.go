package render

import (
	"fmt"
	"strings"

	"github.com/konczyk/irrops/internal/schedule"
)

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func firstBreak(r *schedule.DisruptionReport) string {
	if r.FirstBreak == nil {
		return "None"
	}
	return fmt.Sprintf("%s (%s)", r.FirstBreak.FlightID, r.FirstBreak.Reason)
}

func trigger(r *schedule.DisruptionReport) string {
	if r.Kind == schedule.DisruptionCurfew {
		return fmt.Sprintf("Curfew applied at %s (%s - %s)", r.AirportID, r.From, r.To)
	}
	return fmt.Sprintf("Flight %s delayed by %d min", r.FlightID, int(r.DelayBy))
}

// DelayImpact is the summary printed right after a delay is injected.
func DelayImpact(r *schedule.DisruptionReport) string {
	return fmt.Sprintf(
		"\nFlight %s delayed by %d min\n\nImpact:\n  Delayed: %d flight%s\n  Unscheduled: %d flight%s\n\nFirst break:\n  %s\n",
		r.FlightID, int(r.DelayBy),
		len(r.Affected), plural(len(r.Affected)),
		len(r.Unscheduled), plural(len(r.Unscheduled)),
		firstBreak(r),
	)
}

// CurfewImpact is the summary printed right after a curfew is injected.
func CurfewImpact(r *schedule.DisruptionReport) string {
	return fmt.Sprintf(
		"\nCurfew applied at %s (%s - %s)\n\nImpact:\n  Unscheduled: %d flight%s\n\nFirst break:\n  %s\n",
		r.AirportID, r.From, r.To,
		len(r.Unscheduled), plural(len(r.Unscheduled)),
		firstBreak(r),
	)
}

// Explain renders the retained report of the most recent disruption. In
// full mode the affected and unscheduled flights are listed one per line
// instead of counted.
func Explain(r *schedule.DisruptionReport, full bool) string {
	if full {
		return explainFull(r)
	}

	var impact string
	if r.Kind == schedule.DisruptionDelay {
		impact = fmt.Sprintf("\n  Delayed: %d flight%s", len(r.Affected), plural(len(r.Affected)))
	}
	return fmt.Sprintf(
		"\nExplain (last disruption)\n\nTrigger:\n  %s\n\nImpact:%s\n  Unscheduled: %d flight%s\n\nFirst break:\n  %s\n",
		trigger(r),
		impact,
		len(r.Unscheduled), plural(len(r.Unscheduled)),
		firstBreak(r),
	)
}

func explainFull(r *schedule.DisruptionReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nExplain (last disruption)\n\nTrigger:\n  %s", trigger(r))

	if r.Kind == schedule.DisruptionDelay {
		if len(r.Affected) == 0 {
			sb.WriteString("\n\nDelayed flights:\n  None")
		} else {
			fmt.Fprintf(&sb, "\n\nDelayed flights (%d):", len(r.Affected))
			for _, id := range r.Affected {
				fmt.Fprintf(&sb, "\n  %s", id)
			}
		}
	}

	if len(r.Unscheduled) == 0 {
		sb.WriteString("\n\nUnscheduled:\n  None")
	} else {
		fmt.Fprintf(&sb, "\n\nUnscheduled flights (%d):", len(r.Unscheduled))
		for _, u := range r.Unscheduled {
			fmt.Fprintf(&sb, "\n  %s (%s)", u.FlightID, u.Reason)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// FleetStats renders the utilization summary table.
func FleetStats(st schedule.Stats) string {
	pct := func(n int) float64 {
		return float64(n) / float64(st.Total) * 100
	}
	var sb strings.Builder
	sb.WriteString("\nFleet Utilization Summary:\n")
	sb.WriteString("---------------------------\n")
	fmt.Fprintf(&sb, "Scheduled:                          %d (%.1f%%)\n", st.Scheduled, pct(st.Scheduled))
	fmt.Fprintf(&sb, "Delayed:                            %d (%.1f%%)\n", st.Delayed, pct(st.Delayed))
	fmt.Fprintf(&sb, "Unscheduled (Waiting):              %d (%.1f%%)\n", st.Waiting, pct(st.Waiting))
	fmt.Fprintf(&sb, "Unscheduled (Max Delay Exceeded):   %d (%.1f%%)\n", st.MaxDelay, pct(st.MaxDelay))
	fmt.Fprintf(&sb, "Unscheduled (Airport Curfew):       %d (%.1f%%)\n", st.Curfewed, pct(st.Curfewed))
	fmt.Fprintf(&sb, "Unscheduled (Aircraft Maintenance): %d (%.1f%%)\n", st.Maintenance, pct(st.Maintenance))
	fmt.Fprintf(&sb, "Unscheduled (Broken Chain):         %d (%.1f%%)\n", st.Broken, pct(st.Broken))
	sb.WriteString("---------------------------\n")
	fmt.Fprintf(&sb, "Total Flights: %d\n", st.Total)
	return sb.String()
}
