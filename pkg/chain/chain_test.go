package chain

import (
	"testing"

	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() models.Dataset {
	return models.Dataset{
		Interventions: []models.Intervention{
			{ID: "DDD_2024_101", Province: "KwaZulu-Natal", EntityName: "Inanda Secondary"},
			{ID: "DDD_2024_102", Province: "Gauteng", EntityName: "Tshwane South Office"},
		},
		Decisions: []models.Decision{
			// Dataset order is date DESC, newest decision first.
			{ID: "DEC_2025_202", InterventionID: "DDD_2024_101", Date: "2025-03-01", DecisionMade: "Extend to grade 11"},
			{ID: "DEC_2024_201", InterventionID: "DDD_2024_101", Date: "2024-06-10", DecisionMade: "Deploy subject advisors"},
		},
		Actions: []models.Action{
			{ID: "ACT_2024_302", DecisionID: "DEC_2024_201", TargetDate: "2024-09-01", ActionTaken: "Second advisor visit"},
			{ID: "ACT_2024_301", DecisionID: "DEC_2024_201", TargetDate: "2024-07-01", ActionTaken: "First advisor visit"},
		},
		Outcomes: []models.Outcome{
			{ID: "OUT_2024_401", ActionID: "ACT_2024_301", Description: "8 of 12 schools improved"},
		},
	}
}

func TestBuildFullChain(t *testing.T) {
	dataset := testDataset()

	result := Build(dataset, dataset.Interventions[0])

	assert.True(t, result.HasData)
	assert.Equal(t, "DDD_2024_101", result.Intervention.ID)
	require.Len(t, result.Decisions, 2)

	// Dataset order is preserved: newest decision first.
	assert.Equal(t, "DEC_2025_202", result.Decisions[0].ID)
	assert.Empty(t, result.Decisions[0].Actions)

	second := result.Decisions[1]
	assert.Equal(t, "DEC_2024_201", second.ID)
	require.Len(t, second.Actions, 2)
	assert.Equal(t, "ACT_2024_302", second.Actions[0].ID)
	assert.Empty(t, second.Actions[0].Outcomes)

	require.Len(t, second.Actions[1].Outcomes, 1)
	assert.Equal(t, "OUT_2024_401", second.Actions[1].Outcomes[0].ID)
}

func TestBuildNoDecisions(t *testing.T) {
	dataset := testDataset()

	result := Build(dataset, dataset.Interventions[1])

	assert.False(t, result.HasData)
	assert.Empty(t, result.Decisions)
}

func TestBuildAllSkipsInterventionsWithoutDecisions(t *testing.T) {
	dataset := testDataset()

	chains := BuildAll(dataset)

	require.Len(t, chains, 1)
	assert.Equal(t, "DDD_2024_101", chains[0].Intervention.ID)
}

func TestBuildOrphansExcluded(t *testing.T) {
	dataset := testDataset()
	// An action whose decision was never recorded, and an outcome whose
	// action is gone. Neither may surface in any chain.
	dataset.Actions = append(dataset.Actions, models.Action{ID: "ACT_X", DecisionID: "DEC_MISSING"})
	dataset.Outcomes = append(dataset.Outcomes, models.Outcome{ID: "OUT_X", ActionID: "ACT_MISSING"})

	result := Build(dataset, dataset.Interventions[0])

	require.Len(t, result.Decisions, 2)
	for _, d := range result.Decisions {
		for _, a := range d.Actions {
			assert.NotEqual(t, "ACT_X", a.ID)
			for _, o := range a.Outcomes {
				assert.NotEqual(t, "OUT_X", o.ID)
			}
		}
	}
}
