package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetIntervention(t *testing.T) {
	d := Dataset{
		Interventions: []Intervention{
			{ID: "DDD_2024_101", Province: "Limpopo"},
			{ID: "DDD_2024_102", Province: "Gauteng"},
		},
	}

	got := d.Intervention("DDD_2024_102")
	require.NotNil(t, got)
	assert.Equal(t, "Gauteng", got.Province)

	assert.Nil(t, d.Intervention("DDD_2024_999"))
}
