package schedule

import (
	"sort"

	"github.com/konczyk/irrops/internal/models"
)

type parked struct {
	airport string
	ready   models.Time
}

// Assign runs one greedy matching pass: every unscheduled flight, in
// departure order, gets the first idle aircraft waiting at its origin that
// survives the maintenance, location and busy-interval checks. Already
// assigned flights are never touched, and a flight that finds no aircraft
// keeps its previous unscheduled reason. Ties always go to the
// lexicographically smallest aircraft id, which is what makes the pass
// deterministic.
func (s *Schedule) Assign() {
	ids := make([]string, 0, len(s.aircraft))
	for id := range s.aircraft {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// where each aircraft ends up after its current rotation
	locations := make(map[string]parked, len(ids))
	for _, id := range ids {
		locations[id] = parked{s.aircraft[id].InitialLocation, 0}
	}
	for i := range s.flights {
		f := &s.flights[i]
		if f.Unscheduled() || f.AircraftID == "" {
			continue
		}
		locations[f.AircraftID] = parked{f.Destination, s.readyTime(f.Arrival, f.Destination)}
	}

	// aircraft per airport, in id order
	available := make(map[string][]string)
	for _, id := range ids {
		at := locations[id].airport
		available[at] = append(available[at], id)
	}

	busy := make(map[string][][2]models.Time)
	for i := range s.flights {
		f := &s.flights[i]
		if f.AircraftID == "" {
			continue
		}
		busy[f.AircraftID] = append(busy[f.AircraftID],
			[2]models.Time{f.Departure, s.readyTime(f.Arrival, f.Destination)})
	}

	for i := range s.flights {
		f := &s.flights[i]
		if !f.Unscheduled() {
			continue
		}
		if s.curfewBlocked(f, f.Departure, f.Arrival) {
			continue
		}

		var chosen string
		for _, id := range available[f.Origin] {
			if inMaintenance(s.aircraft[id].Disruptions, f.Departure, f.Arrival) {
				continue
			}
			at := locations[id]
			if wrongAirport(s.aircraft[id].Disruptions, f.Departure, at.airport, at.ready) {
				continue
			}
			if overlapsAny(busy[id], f.Departure, f.Arrival) {
				continue
			}
			chosen = id
			break
		}
		if chosen == "" {
			continue
		}

		ready := s.readyTime(f.Arrival, f.Destination)
		f.AircraftID = chosen
		f.Status = models.StatusScheduled
		f.Reason = ""
		f.DelayMinutes = 0
		busy[chosen] = append(busy[chosen], [2]models.Time{f.Departure, ready})
		dest := append(available[f.Destination], chosen)
		sort.Strings(dest)
		available[f.Destination] = dest
		available[f.Origin] = removeID(available[f.Origin], chosen)
		locations[chosen] = parked{f.Destination, ready}
	}

	s.checkInvariants()
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
