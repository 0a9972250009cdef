// Package schedule holds the tower's scheduling engine: greedy aircraft
// assignment, delay and curfew propagation, and the invariant checks run
// after every mutation. A Schedule has a single owner; callers that share
// one across goroutines serialize access themselves.
package schedule

import (
	"fmt"
	"sort"

	"github.com/konczyk/irrops/internal/models"
)

// maxDelay caps how far a flight may slip past its published departure
// before it is dropped from the schedule instead.
const maxDelay models.Time = 2000

type DisruptionKind string

const (
	DisruptionDelay  DisruptionKind = "Delay"
	DisruptionCurfew DisruptionKind = "Curfew"
)

type UnscheduledFlight struct {
	FlightID string                   `json:"flight_id"`
	Reason   models.UnscheduledReason `json:"reason"`
}

// DisruptionReport describes the fallout of one ApplyDelay or ApplyCurfew
// call: which flights were delayed, which were dropped and why, and where
// the rotation first broke.
type DisruptionReport struct {
	Kind      DisruptionKind `json:"kind"`
	FlightID  string         `json:"flight_id,omitempty"`
	DelayBy   models.Time    `json:"delay_by,omitempty"`
	AirportID string         `json:"airport_id,omitempty"`
	From      models.Time    `json:"from,omitempty"`
	To        models.Time    `json:"to,omitempty"`

	Affected    []string            `json:"affected"`
	Unscheduled []UnscheduledFlight `json:"unscheduled"`
	FirstBreak  *UnscheduledFlight  `json:"first_break,omitempty"`
}

type Schedule struct {
	aircraft map[string]*models.Aircraft
	airports map[string]*models.Airport
	flights  []models.Flight
	byID     map[string]int
	last     *DisruptionReport
}

// New builds a schedule over the given fleet, airports and flights. Flights
// are kept sorted by departure time (stable, so equal departures preserve
// input order); duplicate flight ids resolve to the later entry.
func New(aircraft []models.Aircraft, airports []models.Airport, flights []models.Flight) *Schedule {
	s := &Schedule{
		aircraft: make(map[string]*models.Aircraft, len(aircraft)),
		airports: make(map[string]*models.Airport, len(airports)),
		flights:  make([]models.Flight, len(flights)),
		byID:     make(map[string]int, len(flights)),
	}
	for i := range aircraft {
		a := aircraft[i]
		s.aircraft[a.ID] = &a
	}
	for i := range airports {
		ap := airports[i]
		s.airports[ap.ID] = &ap
	}
	copy(s.flights, flights)
	sort.SliceStable(s.flights, func(i, j int) bool {
		return s.flights[i].Departure < s.flights[j].Departure
	})
	for i := range s.flights {
		s.byID[s.flights[i].ID] = i
	}
	return s
}

// Flights exposes the live flight slice in rotation order. Callers must
// treat it as read-only.
func (s *Schedule) Flights() []models.Flight {
	return s.flights
}

func (s *Schedule) Flight(id string) (models.Flight, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return models.Flight{}, false
	}
	return s.flights[idx], true
}

func (s *Schedule) Aircraft() []models.Aircraft {
	out := make([]models.Aircraft, 0, len(s.aircraft))
	for _, a := range s.aircraft {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Schedule) Airports() []models.Airport {
	out := make([]models.Airport, 0, len(s.airports))
	for _, ap := range s.airports {
		out = append(out, *ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Schedule) HasAirport(id string) bool {
	_, ok := s.airports[id]
	return ok
}

// LastReport returns the report of the most recent disruption, or nil if
// none was applied yet.
func (s *Schedule) LastReport() *DisruptionReport {
	return s.last
}

func (s *Schedule) unschedule(id string, reason models.UnscheduledReason) {
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	f := &s.flights[idx]
	f.Status = models.StatusUnscheduled
	f.Reason = reason
	f.DelayMinutes = 0
	f.AircraftID = ""
}

func (s *Schedule) mtt(airportID string) models.Time {
	if ap, ok := s.airports[airportID]; ok {
		return ap.MTT
	}
	return 0
}

// readyTime is the earliest moment an aircraft arriving at airportID can
// depart again.
func (s *Schedule) readyTime(arrival models.Time, airportID string) models.Time {
	return arrival + s.mtt(airportID)
}

func (s *Schedule) airportClosed(airportID string, t models.Time) bool {
	ap, ok := s.airports[airportID]
	if !ok {
		return false
	}
	for _, c := range ap.Curfews {
		if c.Closed(t) {
			return true
		}
	}
	return false
}

// curfewBlocked checks the two instants that matter for a flight: departure
// at the origin and arrival at the destination.
func (s *Schedule) curfewBlocked(f *models.Flight, dep, arr models.Time) bool {
	return s.airportClosed(f.Origin, dep) || s.airportClosed(f.Destination, arr)
}

func inMaintenance(windows []models.Availability, from, to models.Time) bool {
	for _, w := range windows {
		if w.Overlaps(from, to) {
			return true
		}
	}
	return false
}

// wrongAirport reports whether a location-pinned availability window falls
// entirely inside the ground period (arrival, departure) while naming a
// different airport than the one the aircraft is parked at. Such a window
// demands the aircraft be elsewhere, so it cannot take the flight.
func wrongAirport(windows []models.Availability, departure models.Time, location string, arrival models.Time) bool {
	for _, w := range windows {
		if w.Location == "" {
			continue
		}
		if w.From >= arrival && w.To <= departure && w.Location != location {
			return true
		}
	}
	return false
}

// shiftedTimes slides a flight behind its predecessor's arrival: the new
// departure is the later of the published departure and the ready time at
// the origin. displaced is true when the predecessor actually pushed the
// flight off its published time.
func (s *Schedule) shiftedTimes(f *models.Flight, prevArrival models.Time) (dep, arr models.Time, displaced bool) {
	ready := s.readyTime(prevArrival, f.Origin)
	dep = f.Departure
	if ready > dep {
		dep = ready
	}
	return dep, dep + f.Duration(), f.Departure < ready
}

func overlapsAny(spans [][2]models.Time, from, to models.Time) bool {
	for _, sp := range spans {
		if models.Overlaps(from, to, sp[0], sp[1]) {
			return true
		}
	}
	return false
}

// checkInvariants panics when the schedule is internally inconsistent.
// Reaching it means a logic defect, not a bad input.
func (s *Schedule) checkInvariants() {
	for i := range s.flights {
		f := &s.flights[i]
		switch f.Status {
		case models.StatusUnscheduled:
			if f.AircraftID != "" {
				panic(fmt.Sprintf("schedule: unscheduled flight %s still assigned to %s", f.ID, f.AircraftID))
			}
		case models.StatusScheduled, models.StatusDelayed:
			if f.AircraftID == "" {
				panic(fmt.Sprintf("schedule: %s flight %s has no aircraft", f.Status, f.ID))
			}
			if f.Status == models.StatusDelayed && f.DelayMinutes <= 0 {
				panic(fmt.Sprintf("schedule: delayed flight %s has delay of %d", f.ID, f.DelayMinutes))
			}
		default:
			panic(fmt.Sprintf("schedule: flight %s has unknown status %q", f.ID, f.Status))
		}
	}

	rotations := make(map[string][]*models.Flight)
	for i := range s.flights {
		f := &s.flights[i]
		if f.AircraftID != "" {
			rotations[f.AircraftID] = append(rotations[f.AircraftID], f)
		}
	}
	for id, fs := range rotations {
		sort.SliceStable(fs, func(i, j int) bool { return fs[i].Departure < fs[j].Departure })
		if a, ok := s.aircraft[id]; ok && fs[0].Origin != a.InitialLocation {
			panic(fmt.Sprintf("schedule: aircraft %s starts rotation at %s, initial location is %s", id, fs[0].Origin, a.InitialLocation))
		}
		for i := 1; i < len(fs); i++ {
			prev, next := fs[i-1], fs[i]
			if prev.Destination != next.Origin {
				panic(fmt.Sprintf("schedule: aircraft %s arrives at %s but departs from %s", id, prev.Destination, next.Origin))
			}
			if next.Departure < s.readyTime(prev.Arrival, prev.Destination) {
				panic(fmt.Sprintf("schedule: aircraft %s departs %s before turnaround after %s", id, next.ID, prev.ID))
			}
		}
	}
}
