// Package filter narrows the intervention collection for the list view.
// All criteria combine with AND; empty criteria match everything.
package filter

import (
	"strings"

	"github.com/Ramsey-B/protea/pkg/models"
)

// Criteria is the set of optional list filters. Province, Type and Stage are
// exact matches; Search is a case-insensitive substring test over the
// searchable fields.
type Criteria struct {
	Province string
	Type     string
	Stage    string
	Search   string
}

// IsZero reports whether no criteria are set
func (c Criteria) IsZero() bool {
	return c.Province == "" && c.Type == "" && c.Stage == "" && c.Search == ""
}

// Apply returns the interventions matching the criteria, preserving input
// order. The input slice is never mutated.
func Apply(items []models.Intervention, c Criteria) []models.Intervention {
	if c.IsZero() {
		return items
	}

	search := strings.ToLower(c.Search)
	matched := make([]models.Intervention, 0, len(items))
	for _, item := range items {
		if c.Province != "" && item.Province != c.Province {
			continue
		}
		if c.Type != "" && item.Type != c.Type {
			continue
		}
		if c.Stage != "" && item.Stage != c.Stage {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		matched = append(matched, item)
	}

	return matched
}

func matchesSearch(item models.Intervention, search string) bool {
	fields := []string{
		item.ID, item.Province, item.District, item.PM,
		item.Type, item.EntityName, item.OwnerName, item.Description,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
