// Package shell implements the tower's interactive command loop: parsing
// operator commands, driving the schedule engine and printing the results.
// It reads nothing itself; the caller feeds it one line at a time.
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/konczyk/irrops/internal/history"
	"github.com/konczyk/irrops/internal/models"
	"github.com/konczyk/irrops/internal/render"
	"github.com/konczyk/irrops/internal/schedule"
)

const defaultHistoryLimit = 10

// pageThreshold is the row count above which a flight table goes through
// the pager instead of straight to the output.
const pageThreshold = 20

type Shell struct {
	sched *schedule.Schedule
	store *history.Store
	out   io.Writer

	// Pager, when set, receives oversized tables instead of out.
	Pager func(content string)
}

// New wires a shell around a schedule. store may be nil, in which case
// disruptions are not recorded and the history command reports that.
func New(sched *schedule.Schedule, store *history.Store, out io.Writer) *Shell {
	return &Shell{sched: sched, store: store, out: out}
}

// Commands lists every command name, for line completion.
func Commands() []string {
	return []string{"ls", "delay", "curfew", "explain", "recover", "stats", "history", "save", "help", "exit"}
}

// Execute runs one command line. It returns false when the operator asked
// to exit.
func (sh *Shell) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case "ls":
		sh.list(parts[1:])
	case "delay":
		sh.delay(parts[1:])
	case "curfew":
		sh.curfew(parts[1:])
	case "explain":
		sh.explain(parts[1:])
	case "recover":
		sh.sched.Assign()
		fmt.Fprintln(sh.out, "Recovery cycle complete.")
	case "stats":
		fmt.Fprintln(sh.out, render.FleetStats(sh.sched.Stats()))
	case "history":
		sh.history(parts[1:])
	case "save":
		sh.save(parts[1:])
	case "help", "?":
		sh.help()
	case "exit", "quit":
		return false
	default:
		fmt.Fprintf(sh.out, "Unknown command: %s\n", parts[0])
	}
	return true
}

func (sh *Shell) list(args []string) {
	day := 0
	var status models.FlightStatus
	for _, arg := range args {
		if d, err := strconv.Atoi(arg); err == nil {
			if d > 0 {
				day = d
			}
			continue
		}
		switch arg {
		case "u", "unscheduled":
			status = models.StatusUnscheduled
		case "s", "scheduled":
			status = models.StatusScheduled
		case "d", "delayed":
			status = models.StatusDelayed
		default:
			status = ""
		}
	}

	var filtered []models.Flight
	for _, f := range sh.sched.Flights() {
		if day > 0 && f.Departure.Day() != day {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		filtered = append(filtered, f)
	}

	if len(filtered) == 0 {
		fmt.Fprintln(sh.out, "No matching flights found.")
		return
	}
	table := render.FlightTable(filtered)
	if len(filtered) > pageThreshold && sh.Pager != nil {
		sh.Pager(table)
		return
	}
	fmt.Fprint(sh.out, table)
}

func (sh *Shell) delay(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(sh.out, "Usage: delay <flight_id> <minutes>")
		return
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes <= 0 {
		fmt.Fprintln(sh.out, "Usage: delay <flight_id> <minutes>")
		return
	}
	id := args[0]
	if f, ok := sh.sched.Flight(id); ok && f.Unscheduled() {
		fmt.Fprintf(sh.out, "Cannot delay unscheduled flight %s\n", id)
		return
	}

	report := sh.sched.ApplyDelay(id, minutes)
	sh.record(report)
	fmt.Fprint(sh.out, render.DelayImpact(report))
}

func (sh *Shell) curfew(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(sh.out, "Usage: curfew <airport_id> <minutes> <minutes>")
		return
	}
	from, errFrom := strconv.Atoi(args[1])
	to, errTo := strconv.Atoi(args[2])
	if errFrom != nil || errTo != nil || from < 0 || to < 0 {
		fmt.Fprintln(sh.out, "Usage: curfew <airport_id> <minutes> <minutes>")
		return
	}

	report := sh.sched.ApplyCurfew(args[0], models.Time(from), models.Time(to))
	sh.record(report)
	fmt.Fprint(sh.out, render.CurfewImpact(report))
}

func (sh *Shell) explain(args []string) {
	report := sh.sched.LastReport()
	if report == nil {
		fmt.Fprintln(sh.out, "No report to explain")
		return
	}
	full := len(args) > 0 && args[0] == "full"
	fmt.Fprint(sh.out, render.Explain(report, full))
}

func (sh *Shell) history(args []string) {
	if sh.store == nil {
		fmt.Fprintln(sh.out, "History store not configured")
		return
	}
	limit := defaultHistoryLimit
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := sh.store.Recent(limit)
	if err != nil {
		fmt.Fprintf(sh.out, "History unavailable: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(sh.out, "No recorded disruptions.")
		return
	}
	fmt.Fprintln(sh.out, "\nRecent disruptions:")
	for _, e := range entries {
		fmt.Fprintf(sh.out, "  [%s] %s %s: delayed %d, unscheduled %d",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Kind, e.Target, e.Delayed, e.Unscheduled)
		if e.FirstBreak != "" {
			fmt.Fprintf(sh.out, ", first break %s", e.FirstBreak)
		}
		fmt.Fprintln(sh.out)
	}
	fmt.Fprintln(sh.out)
}

func (sh *Shell) save(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "Usage: save <path>")
		return
	}
	if err := sh.sched.SaveFile(args[0]); err != nil {
		fmt.Fprintf(sh.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "Schedule saved to %s\n", args[0])
}

func (sh *Shell) record(report *schedule.DisruptionReport) {
	if sh.store == nil {
		return
	}
	if err := sh.store.Record(report); err != nil {
		fmt.Fprintf(sh.out, "history not recorded: %v\n", err)
	}
}

func (sh *Shell) help() {
	fmt.Fprintln(sh.out, "\nAvailable Commands:")
	fmt.Fprintln(sh.out, "  ls [day] [status]   - List flights, optionally filtered by day or status: u - unscheduled, s - scheduled, d - delayed")
	fmt.Fprintln(sh.out, "  delay <id> <m>      - Inject <m> minutes of delay into flight <id>")
	fmt.Fprintln(sh.out, "  curfew <id> <m> <m> - Inject a curfew from <m> to <m> minutes into airport <id>")
	fmt.Fprintln(sh.out, "  explain [full]      - Explain the most recent disruption (use 'full' for full causal trace)")
	fmt.Fprintln(sh.out, "  recover             - Re-run assignment to repair unscheduled flights")
	fmt.Fprintln(sh.out, "  stats               - Display summary statistics")
	fmt.Fprintln(sh.out, "  history [n]         - Show the most recent disruptions (default 10)")
	fmt.Fprintln(sh.out, "  save <path>         - Write the current schedule to a JSON file")
	fmt.Fprintln(sh.out, "  help / ?            - Show this help menu")
	fmt.Fprintln(sh.out, "  exit / quit         - Exit the simulator")
	fmt.Fprintln(sh.out)
}
