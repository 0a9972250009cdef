package schedule

import "github.com/konczyk/irrops/internal/models"

type Stats struct {
	Total       int `json:"total"`
	Scheduled   int `json:"scheduled"`
	Delayed     int `json:"delayed"`
	Waiting     int `json:"waiting"`
	MaxDelay    int `json:"max_delay_exceeded"`
	Curfewed    int `json:"airport_curfew"`
	Maintenance int `json:"aircraft_maintenance"`
	Broken      int `json:"broken_chain"`
}

// Stats counts flights per status, with unscheduled ones split by reason.
func (s *Schedule) Stats() Stats {
	st := Stats{Total: len(s.flights)}
	for i := range s.flights {
		f := &s.flights[i]
		switch f.Status {
		case models.StatusScheduled:
			st.Scheduled++
		case models.StatusDelayed:
			st.Delayed++
		case models.StatusUnscheduled:
			switch f.Reason {
			case models.ReasonMaxDelayExceeded:
				st.MaxDelay++
			case models.ReasonAirportCurfew:
				st.Curfewed++
			case models.ReasonAircraftMaintenance:
				st.Maintenance++
			case models.ReasonBrokenChain:
				st.Broken++
			default:
				st.Waiting++
			}
		}
	}
	return st
}

// Unscheduled is the total number of flights currently off the schedule.
func (st Stats) Unscheduled() int {
	return st.Waiting + st.MaxDelay + st.Curfewed + st.Maintenance + st.Broken
}
