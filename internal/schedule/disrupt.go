package schedule

import (
	"sort"

	"github.com/konczyk/irrops/internal/models"
)

// ApplyDelay shifts a flight by the given number of minutes and walks the
// aircraft's remaining rotation, sliding each dependent flight behind its
// predecessor until one absorbs the delay inside its own turnaround slack.
// A flight that lands in a maintenance window, a curfew, or past the
// maximum delay is dropped, and everything behind it goes down as a broken
// chain. The report is also retained for LastReport.
//
// A delay of zero or less changes nothing and leaves the retained report
// alone. An unknown flight id produces an empty report.
func (s *Schedule) ApplyDelay(flightID string, minutes int) *DisruptionReport {
	report := &DisruptionReport{
		Kind:        DisruptionDelay,
		FlightID:    flightID,
		DelayBy:     models.Time(minutes),
		Affected:    []string{},
		Unscheduled: []UnscheduledFlight{},
	}
	if minutes <= 0 {
		return report
	}
	shift := models.Time(minutes)

	if idx, ok := s.byID[flightID]; ok {
		trigger := &s.flights[idx]
		acID := trigger.AircraftID
		var windows []models.Availability
		if a, ok := s.aircraft[acID]; ok {
			windows = a.Disruptions
		}
		broken := false

		if shift > maxDelay {
			report.Unscheduled = append(report.Unscheduled,
				UnscheduledFlight{trigger.ID, models.ReasonMaxDelayExceeded})
			broken = true
		} else {
			origDep := trigger.Departure
			trigger.Departure += shift
			trigger.Arrival += shift
			switch {
			case inMaintenance(windows, origDep, trigger.Arrival):
				report.Unscheduled = append(report.Unscheduled,
					UnscheduledFlight{trigger.ID, models.ReasonAircraftMaintenance})
				broken = true
			case s.curfewBlocked(trigger, origDep, trigger.Arrival):
				report.Unscheduled = append(report.Unscheduled,
					UnscheduledFlight{trigger.ID, models.ReasonAirportCurfew})
				broken = true
			default:
				trigger.Status = models.StatusDelayed
				trigger.DelayMinutes = shift
				trigger.Reason = ""
				report.Affected = append(report.Affected, trigger.ID)
			}
		}

		if acID != "" {
			prevArrival := trigger.Arrival
			prevDest := trigger.Destination
		walk:
			for j := idx + 1; j < len(s.flights); j++ {
				f := &s.flights[j]
				if f.AircraftID != acID {
					continue
				}
				if broken {
					report.Unscheduled = append(report.Unscheduled,
						UnscheduledFlight{f.ID, models.ReasonBrokenChain})
					continue
				}
				dep, arr, displaced := s.shiftedTimes(f, prevArrival)
				switch {
				case inMaintenance(windows, f.Departure, arr) ||
					wrongAirport(windows, f.Departure, prevDest, prevArrival):
					report.Unscheduled = append(report.Unscheduled,
						UnscheduledFlight{f.ID, models.ReasonAircraftMaintenance})
					broken = true
				case s.curfewBlocked(f, dep, arr):
					report.Unscheduled = append(report.Unscheduled,
						UnscheduledFlight{f.ID, models.ReasonAirportCurfew})
					broken = true
				case dep-f.Departure > maxDelay:
					report.Unscheduled = append(report.Unscheduled,
						UnscheduledFlight{f.ID, models.ReasonMaxDelayExceeded})
					broken = true
				case displaced:
					f.Status = models.StatusDelayed
					f.DelayMinutes = dep - f.Departure
					f.Reason = ""
					f.Departure = dep
					f.Arrival = arr
					prevArrival = f.Arrival
					prevDest = f.Destination
					report.Affected = append(report.Affected, f.ID)
				default:
					// the rest of the rotation has enough slack
					break walk
				}
			}
		}
	}

	s.finishReport(report)
	return report
}

// ApplyCurfew records a closure window at an airport and drops every
// rotation that runs through it. For each aircraft the earliest flight
// overlapping any of the airport's windows marks the break point; that
// flight and everything after it come off the schedule. No automatic
// re-accommodation happens here, recovery is a later Assign. The report is
// also retained for LastReport.
//
// An unknown airport id produces an empty report.
func (s *Schedule) ApplyCurfew(airportID string, from, to models.Time) *DisruptionReport {
	report := &DisruptionReport{
		Kind:        DisruptionCurfew,
		AirportID:   airportID,
		From:        from,
		To:          to,
		Affected:    []string{},
		Unscheduled: []UnscheduledFlight{},
	}

	if ap, ok := s.airports[airportID]; ok {
		ap.Curfews = append(ap.Curfews, models.Curfew{From: from, To: to})

		// scan in a fixed order, departure time then aircraft id, so the
		// break points and the report do not depend on how earlier delays
		// reshuffled the rotation
		order := make([]int, len(s.flights))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			fa, fb := &s.flights[order[a]], &s.flights[order[b]]
			if fa.Departure != fb.Departure {
				return fa.Departure < fb.Departure
			}
			return fa.AircraftID < fb.AircraftID
		})

		breakAt := make(map[string]models.Time)
		for _, i := range order {
			f := &s.flights[i]
			if f.Unscheduled() || f.AircraftID == "" {
				continue
			}
			if f.Origin != airportID && f.Destination != airportID {
				continue
			}
			for _, c := range ap.Curfews {
				if c.Overlaps(f.Departure, f.Arrival) {
					if _, seen := breakAt[f.AircraftID]; !seen {
						breakAt[f.AircraftID] = f.Departure
					}
					break
				}
			}
		}

		counted := make(map[string]bool)
		for _, i := range order {
			f := &s.flights[i]
			if f.Unscheduled() || f.AircraftID == "" {
				continue
			}
			bt, hit := breakAt[f.AircraftID]
			if !hit || f.Departure < bt {
				continue
			}
			reason := models.ReasonBrokenChain
			if !counted[f.AircraftID] {
				reason = models.ReasonAirportCurfew
				counted[f.AircraftID] = true
			}
			report.Unscheduled = append(report.Unscheduled, UnscheduledFlight{f.ID, reason})
		}
	}

	s.finishReport(report)
	return report
}

// finishReport applies the collected unschedulings, records the first break
// and retains the report.
func (s *Schedule) finishReport(report *DisruptionReport) {
	for _, u := range report.Unscheduled {
		s.unschedule(u.FlightID, u.Reason)
	}
	if len(report.Unscheduled) > 0 {
		fb := report.Unscheduled[0]
		report.FirstBreak = &fb
	}
	s.last = report
	s.checkInvariants()
}
