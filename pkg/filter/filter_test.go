package filter

import (
	"testing"

	"github.com/Ramsey-B/protea/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInterventions() []models.Intervention {
	return []models.Intervention{
		{ID: "DDD_2024_101", Province: "KwaZulu-Natal", District: "Pinetown", PM: "N. Dlamini", Type: "Underperforming School", EntityName: "Inanda Secondary", Stage: "Active", Description: "Matric maths support"},
		{ID: "DDD_2024_102", Province: "Gauteng", District: "Tshwane South", PM: "S. Mokoena", Type: "District Support", EntityName: "Tshwane South Office", Stage: "Planning"},
		{ID: "DDD_2025_201", Province: "KwaZulu-Natal", District: "Umlazi", PM: "N. Dlamini", Type: "Reading Literacy", EntityName: "Umlazi Circuit 3", Stage: "Active", OwnerName: "B. Ngcobo"},
	}
}

func TestApplyNoCriteria(t *testing.T) {
	items := testInterventions()
	result := Apply(items, Criteria{})

	assert.Len(t, result, 3)
	assert.Equal(t, items, result)
}

func TestApplyEqualityFilters(t *testing.T) {
	items := testInterventions()

	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []string
	}{
		{
			name:     "province",
			criteria: Criteria{Province: "KwaZulu-Natal"},
			wantIDs:  []string{"DDD_2024_101", "DDD_2025_201"},
		},
		{
			name:     "type",
			criteria: Criteria{Type: "District Support"},
			wantIDs:  []string{"DDD_2024_102"},
		},
		{
			name:     "stage",
			criteria: Criteria{Stage: "Active"},
			wantIDs:  []string{"DDD_2024_101", "DDD_2025_201"},
		},
		{
			name:     "province and stage combine with AND",
			criteria: Criteria{Province: "Gauteng", Stage: "Active"},
			wantIDs:  []string{},
		},
		{
			name:     "all three",
			criteria: Criteria{Province: "KwaZulu-Natal", Type: "Reading Literacy", Stage: "Active"},
			wantIDs:  []string{"DDD_2025_201"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Apply(items, tt.criteria)
			ids := make([]string, 0, len(result))
			for _, item := range result {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApplySearch(t *testing.T) {
	items := testInterventions()

	// Case-insensitive substring over id, province, district, pm, type,
	// entity name, owner name and description.
	result := Apply(items, Criteria{Search: "pinetown"})
	require.Len(t, result, 1)
	assert.Equal(t, "DDD_2024_101", result[0].ID)

	result = Apply(items, Criteria{Search: "DLAMINI"})
	assert.Len(t, result, 2)

	result = Apply(items, Criteria{Search: "ngcobo"})
	require.Len(t, result, 1)
	assert.Equal(t, "DDD_2025_201", result[0].ID)

	result = Apply(items, Criteria{Search: "matric"})
	require.Len(t, result, 1)
	assert.Equal(t, "DDD_2024_101", result[0].ID)

	result = Apply(items, Criteria{Search: "no such thing"})
	assert.Empty(t, result)
}

func TestApplySearchCombinesWithFilters(t *testing.T) {
	items := testInterventions()

	result := Apply(items, Criteria{Province: "KwaZulu-Natal", Search: "umlazi"})
	require.Len(t, result, 1)
	assert.Equal(t, "DDD_2025_201", result[0].ID)

	result = Apply(items, Criteria{Province: "Gauteng", Search: "umlazi"})
	assert.Empty(t, result)
}

func TestApplyPreservesOrder(t *testing.T) {
	items := testInterventions()

	result := Apply(items, Criteria{Search: "ddd"})
	require.Len(t, result, 3)
	assert.Equal(t, "DDD_2024_101", result[0].ID)
	assert.Equal(t, "DDD_2024_102", result[1].ID)
	assert.Equal(t, "DDD_2025_201", result[2].ID)
}
