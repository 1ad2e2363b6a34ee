// Package stats derives the dashboard aggregates from a full dataset. The
// aggregator is a pure function; it is computed once per snapshot refresh and
// the result is served from the snapshot, never recomputed per request.
package stats

import "github.com/Ramsey-B/protea/pkg/models"

// Totals are the dashboard headline counts
type Totals struct {
	Interventions    int `json:"interventions"`
	Active           int `json:"active"`
	Planning         int `json:"planning"`
	Provinces        int `json:"provinces"`
	Schools          int `json:"schools"`
	Learners         int `json:"learners"`
	Decisions        int `json:"decisions"`
	Actions          int `json:"actions"`
	ActionsCompleted int `json:"actions_completed"`
	Outcomes         int `json:"outcomes"`
}

// ProvinceBreakdown is one row of the per-province table: intervention count
// plus the schools reached in that province
type ProvinceBreakdown struct {
	Province string `json:"province"`
	Count    int    `json:"count"`
	Schools  int    `json:"schools"`
}

// GroupCount is one row of the type and stage breakdowns
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardStats is the full dashboard aggregate. Breakdown rows follow
// lookup-table order and groups with zero interventions are omitted.
type DashboardStats struct {
	Totals     Totals              `json:"totals"`
	ByProvince []ProvinceBreakdown `json:"by_province"`
	ByType     []GroupCount        `json:"by_type"`
	ByStage    []GroupCount        `json:"by_stage"`
}

// Aggregate computes the dashboard aggregates for a dataset
func Aggregate(dataset models.Dataset) DashboardStats {
	totals := Totals{
		Interventions: len(dataset.Interventions),
		Decisions:     len(dataset.Decisions),
		Actions:       len(dataset.Actions),
		Outcomes:      len(dataset.Outcomes),
	}

	provinceCounts := map[string]int{}
	provinceSchools := map[string]int{}
	typeCounts := map[string]int{}
	stageCounts := map[string]int{}

	for _, item := range dataset.Interventions {
		switch item.Stage {
		case models.StageActive:
			totals.Active++
		case models.StagePlanning:
			totals.Planning++
		}
		totals.Schools += item.Schools
		totals.Learners += item.Learners

		provinceCounts[item.Province]++
		provinceSchools[item.Province] += item.Schools
		typeCounts[item.Type]++
		stageCounts[item.Stage]++
	}
	totals.Provinces = len(provinceCounts)

	for _, a := range dataset.Actions {
		if a.Status == models.ActionStatusCompleted {
			totals.ActionsCompleted++
		}
	}

	result := DashboardStats{Totals: totals}
	for _, p := range models.Provinces {
		if provinceCounts[p] == 0 {
			continue
		}
		result.ByProvince = append(result.ByProvince, ProvinceBreakdown{
			Province: p,
			Count:    provinceCounts[p],
			Schools:  provinceSchools[p],
		})
	}
	for _, t := range models.InterventionTypes {
		if typeCounts[t] == 0 {
			continue
		}
		result.ByType = append(result.ByType, GroupCount{Name: t, Count: typeCounts[t]})
	}
	for _, s := range models.Stages {
		if stageCounts[s] == 0 {
			continue
		}
		result.ByStage = append(result.ByStage, GroupCount{Name: s, Count: stageCounts[s]})
	}

	return result
}
