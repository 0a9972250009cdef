// Package render turns schedule state into the text the tower shell and
// the HTTP snapshot endpoint present: flight tables, disruption impact
// summaries and the fleet utilization report.
package render

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/konczyk/irrops/internal/models"
)

// FlightTable renders flights as a bordered table, one row per flight in
// the order given. Unassigned flights show "---" in the aircraft column.
func FlightTable(flights []models.Flight) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"id", "aircraft", "origin", "destination", "departure", "arrival", "status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for i := range flights {
		f := &flights[i]
		aircraft := f.AircraftID
		if aircraft == "" {
			aircraft = "---"
		}
		table.Append([]string{
			f.ID,
			aircraft,
			f.Origin,
			f.Destination,
			f.Departure.String(),
			f.Arrival.String(),
			StatusLabel(f),
		})
	}
	table.Render()
	return sb.String()
}
