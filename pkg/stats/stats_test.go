package stats

import (
	"testing"

	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() models.Dataset {
	return models.Dataset{
		Interventions: []models.Intervention{
			{ID: "DDD_2024_101", Province: "KwaZulu-Natal", Type: "Underperforming School", Stage: models.StageActive, Schools: 12, Learners: 8400},
			{ID: "DDD_2024_102", Province: "KwaZulu-Natal", Type: "Reading Literacy", Stage: models.StagePlanning, Schools: 30, Learners: 15000},
			{ID: "DDD_2024_103", Province: "Gauteng", Type: "Underperforming School", Stage: models.StageCompleted, Schools: 5, Learners: 2100},
		},
		Decisions: []models.Decision{
			{ID: "DEC_2024_201", InterventionID: "DDD_2024_101"},
			{ID: "DEC_2024_202", InterventionID: "DDD_2024_103"},
		},
		Actions: []models.Action{
			{ID: "ACT_2024_301", DecisionID: "DEC_2024_201", Status: models.ActionStatusCompleted},
			{ID: "ACT_2024_302", DecisionID: "DEC_2024_201", Status: models.ActionStatusInProgress},
			{ID: "ACT_2024_303", DecisionID: "DEC_2024_202", Status: models.ActionStatusPlanned},
		},
		Outcomes: []models.Outcome{
			{ID: "OUT_2024_401", ActionID: "ACT_2024_301"},
		},
	}
}

func TestAggregateTotals(t *testing.T) {
	result := Aggregate(testDataset())

	assert.Equal(t, 3, result.Totals.Interventions)
	assert.Equal(t, 1, result.Totals.Active)
	assert.Equal(t, 1, result.Totals.Planning)
	assert.Equal(t, 2, result.Totals.Provinces)
	assert.Equal(t, 47, result.Totals.Schools)
	assert.Equal(t, 25500, result.Totals.Learners)
	assert.Equal(t, 2, result.Totals.Decisions)
	assert.Equal(t, 3, result.Totals.Actions)
	assert.Equal(t, 1, result.Totals.ActionsCompleted)
	assert.Equal(t, 1, result.Totals.Outcomes)
}

func TestAggregateBreakdownsOmitZeroGroups(t *testing.T) {
	result := Aggregate(testDataset())

	// Only the two represented provinces appear, in lookup order.
	require.Len(t, result.ByProvince, 2)
	assert.Equal(t, ProvinceBreakdown{Province: "Gauteng", Count: 1, Schools: 5}, result.ByProvince[0])
	assert.Equal(t, ProvinceBreakdown{Province: "KwaZulu-Natal", Count: 2, Schools: 42}, result.ByProvince[1])

	require.Len(t, result.ByType, 2)
	assert.Equal(t, GroupCount{Name: "Underperforming School", Count: 2}, result.ByType[0])
	assert.Equal(t, GroupCount{Name: "Reading Literacy", Count: 1}, result.ByType[1])

	// Paused and Cancelled have no interventions and are omitted.
	require.Len(t, result.ByStage, 3)
	assert.Equal(t, GroupCount{Name: models.StagePlanning, Count: 1}, result.ByStage[0])
	assert.Equal(t, GroupCount{Name: models.StageActive, Count: 1}, result.ByStage[1])
	assert.Equal(t, GroupCount{Name: models.StageCompleted, Count: 1}, result.ByStage[2])
}

func TestAggregateEmptyDataset(t *testing.T) {
	result := Aggregate(models.Dataset{})

	assert.Equal(t, Totals{}, result.Totals)
	assert.Empty(t, result.ByProvince)
	assert.Empty(t, result.ByType)
	assert.Empty(t, result.ByStage)
}
