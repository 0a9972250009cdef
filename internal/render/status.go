package render

import (
	"github.com/fatih/color"

	"github.com/konczyk/irrops/internal/models"
)

var (
	scheduledLabel   = color.New(color.FgGreen)
	delayedLabel     = color.New(color.FgYellow)
	unscheduledLabel = color.New(color.FgRed)
)

// StatusLabel renders a flight's status cell. Colors are dropped
// automatically when stdout is not a terminal.
func StatusLabel(f *models.Flight) string {
	switch f.Status {
	case models.StatusScheduled:
		return scheduledLabel.Sprint("Scheduled")
	case models.StatusDelayed:
		return delayedLabel.Sprintf("Delayed (+%dm)", int(f.DelayMinutes))
	default:
		return unscheduledLabel.Sprint("Unscheduled")
	}
}
