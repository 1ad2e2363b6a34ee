// Package export writes the intervention tracker CSV handed to programme
// stakeholders. The column set and filename follow the established report
// format, so they stay stable even as the intervention record grows fields.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/protea/pkg/models"
)

var header = []string{
	"ID", "Province", "District", "PM", "Type", "Entity Name", "Stage",
	"Schools", "Learners", "Start", "End", "Confidence",
}

// Filename returns the download filename for an export generated at the
// given time, e.g. DDD_Tracker_Export_2026-08-30.csv
func Filename(t time.Time) string {
	return fmt.Sprintf("DDD_Tracker_Export_%s.csv", t.Format("2006-01-02"))
}

// WriteCSV writes the tracker export for the given interventions
func WriteCSV(w io.Writer, items []models.Intervention) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	rows := ectolinq.Map(items, func(item models.Intervention) []string {
		return []string{
			item.ID, item.Province, item.District, item.PM, item.Type,
			item.EntityName, item.Stage,
			strconv.Itoa(item.Schools), strconv.Itoa(item.Learners),
			item.StartDate, item.EndDate, item.Confidence,
		}
	})
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
