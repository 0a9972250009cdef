package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/konczyk/irrops/internal/models"
)

type scenario struct {
	Aircraft []models.Aircraft `json:"aircraft"`
	Airports []models.Airport  `json:"airports"`
	Flights  []models.Flight   `json:"flights"`
}

// Load builds a schedule from a scenario document. Flights without an
// explicit status load as waiting to be scheduled, or as already scheduled
// when the file assigns them an aircraft.
func Load(data []byte) (*Schedule, error) {
	var raw scenario
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i := range raw.Flights {
		f := &raw.Flights[i]
		if f.Status == "" {
			if f.AircraftID == "" {
				f.Status = models.StatusUnscheduled
			} else {
				f.Status = models.StatusScheduled
			}
		}
		if f.Status == models.StatusUnscheduled && f.Reason == "" {
			f.Reason = models.ReasonWaiting
		}
	}
	return New(raw.Aircraft, raw.Airports, raw.Flights), nil
}

func LoadFile(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Load(data)
}

// SaveFile snapshots the schedule, current statuses included, in the same
// format LoadFile reads. The write goes through a temp file and a rename
// so a crash cannot leave a half-written scenario behind.
func (s *Schedule) SaveFile(path string) error {
	snap := scenario{Aircraft: s.Aircraft(), Airports: s.Airports(), Flights: s.flights}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create scenario dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return os.Rename(tmp, path)
}
