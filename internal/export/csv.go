// Package export renders booked occupancies as CSV for offline reporting.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"roompla/internal/repository"
)

// header lists the CSV columns in output order.
var header = []string{"id", "name", "contact", "room", "day", "start_time", "end_time"}

// WriteCSV writes the given entries as CSV. Stored UTC timestamps are
// converted to each room's timezone for display only; rooms without a
// timezone render in UTC. An entry with an unknown zone name falls back to
// UTC rather than aborting the whole export.
func WriteCSV(w io.Writer, entries []repository.ExportEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		loc := time.UTC
		if e.Timezone != "" {
			if l, err := time.LoadLocation(e.Timezone); err == nil {
				loc = l
			}
		}
		start := e.Occupancy.Start.In(loc)
		end := e.Occupancy.End.In(loc)

		record := []string{
			e.Occupancy.UserID,
			e.Occupancy.UserName,
			e.Occupancy.UserContact,
			e.Occupancy.Room,
			start.Format("2006-01-02"),
			start.Format("15:04:05"),
			end.Format("15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
