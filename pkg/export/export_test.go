package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "DDD_Tracker_Export_2026-08-30.csv", Filename(at))
}

func TestWriteCSV(t *testing.T) {
	items := []models.Intervention{
		{
			ID: "DDD_2024_101", Province: "KwaZulu-Natal", District: "Pinetown",
			PM: "N. Dlamini", Type: "Underperforming School", EntityName: "Inanda Secondary",
			Stage: "Active", Schools: 12, Learners: 8400,
			StartDate: "2024-02-01", EndDate: "2025-11-30", Confidence: "Medium",
		},
		{
			ID: "DDD_2024_102", Province: "Gauteng", EntityName: `Office "North"`,
			Stage: "Planning",
		},
	}

	var buf bytes.Buffer
	err := WriteCSV(&buf, items)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"ID", "Province", "District", "PM", "Type", "Entity Name", "Stage",
		"Schools", "Learners", "Start", "End", "Confidence",
	}, records[0])

	assert.Equal(t, []string{
		"DDD_2024_101", "KwaZulu-Natal", "Pinetown", "N. Dlamini",
		"Underperforming School", "Inanda Secondary", "Active",
		"12", "8400", "2024-02-01", "2025-11-30", "Medium",
	}, records[1])

	// Quoting in field values round-trips.
	assert.Equal(t, `Office "North"`, records[2][5])
	assert.Equal(t, "0", records[2][7])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
