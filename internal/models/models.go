package models

type FlightStatus string

const (
	StatusUnscheduled FlightStatus = "Unscheduled"
	StatusScheduled   FlightStatus = "Scheduled"
	StatusDelayed     FlightStatus = "Delayed"
)

type UnscheduledReason string

const (
	ReasonWaiting             UnscheduledReason = "Waiting"
	ReasonMaxDelayExceeded    UnscheduledReason = "MaxDelayExceeded"
	ReasonAirportCurfew       UnscheduledReason = "AirportCurfew"
	ReasonAircraftMaintenance UnscheduledReason = "AircraftMaintenance"
	ReasonBrokenChain         UnscheduledReason = "BrokenChain"
)

type Availability struct {
	From     Time   `json:"from"`
	To       Time   `json:"to"`
	Location string `json:"location,omitempty"`
}

func (a Availability) Overlaps(from, to Time) bool {
	return Overlaps(from, to, a.From, a.To)
}

type Curfew struct {
	From Time `json:"from"`
	To   Time `json:"to"`
}

func (c Curfew) Closed(t Time) bool {
	return c.From <= t && c.To >= t
}

func (c Curfew) Overlaps(from, to Time) bool {
	return Overlaps(from, to, c.From, c.To)
}

type Aircraft struct {
	ID              string         `json:"id"`
	InitialLocation string         `json:"initial_location_id"`
	Disruptions     []Availability `json:"disruptions,omitempty"`
}

type Airport struct {
	ID      string   `json:"id"`
	MTT     Time     `json:"mtt"`
	Curfews []Curfew `json:"disruptions,omitempty"`
}

type Flight struct {
	ID           string            `json:"id"`
	AircraftID   string            `json:"aircraft_id,omitempty"`
	Origin       string            `json:"origin_id"`
	Destination  string            `json:"destination_id"`
	Departure    Time              `json:"departure_time"`
	Arrival      Time              `json:"arrival_time"`
	Status       FlightStatus      `json:"status"`
	Reason       UnscheduledReason `json:"reason,omitempty"`
	DelayMinutes Time              `json:"delay_minutes,omitempty"`
}

func (f *Flight) Unscheduled() bool {
	return f.Status == StatusUnscheduled
}

func (f *Flight) Duration() Time {
	return f.Arrival - f.Departure
}
