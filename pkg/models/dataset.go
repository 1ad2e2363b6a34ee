package models

// Dataset is one consistent view of all four record collections, in gateway
// order: interventions by province ascending, decisions and outcomes by date
// descending, actions by target date descending. The derivation layer (chains,
// dashboard stats, filters) always works from a full Dataset; there is no
// incremental update path.
type Dataset struct {
	Interventions []Intervention `json:"interventions"`
	Decisions     []Decision     `json:"decisions"`
	Actions       []Action       `json:"actions"`
	Outcomes      []Outcome      `json:"outcomes"`
}

// Intervention returns the intervention with the given ID, or nil
func (d *Dataset) Intervention(id string) *Intervention {
	for i := range d.Interventions {
		if d.Interventions[i].ID == id {
			return &d.Interventions[i]
		}
	}
	return nil
}
