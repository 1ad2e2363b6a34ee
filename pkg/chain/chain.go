// Package chain reconstructs contribution chains from a dataset. The chain is
// the intervention's full decision tree: each decision carries the actions it
// led to, each action carries the outcomes attributed to it. Links live only
// in the child records, so reconstruction is a pure in-memory grouping over
// the parent ID fields.
package chain

import "github.com/Ramsey-B/protea/pkg/models"

// Chain is one intervention's decision tree. HasData is false when no
// decision references the intervention yet.
type Chain struct {
	Intervention models.Intervention `json:"intervention"`
	HasData      bool                `json:"has_data"`
	Decisions    []DecisionNode      `json:"decisions"`
}

// DecisionNode is a decision with the actions it led to
type DecisionNode struct {
	models.Decision
	Actions []ActionNode `json:"actions"`
}

// ActionNode is an action with the outcomes attributed to it
type ActionNode struct {
	models.Action
	Outcomes []models.Outcome `json:"outcomes"`
}

// Build reconstructs the chain for one intervention. Records keep their
// dataset order, so decisions and outcomes read newest first and actions are
// ordered by target date. Children whose parent is missing from the dataset
// never appear in any chain.
func Build(dataset models.Dataset, intervention models.Intervention) Chain {
	result := Chain{Intervention: intervention}

	for _, d := range dataset.Decisions {
		if d.InterventionID != intervention.ID {
			continue
		}
		node := DecisionNode{Decision: d}
		for _, a := range dataset.Actions {
			if a.DecisionID != d.ID {
				continue
			}
			actionNode := ActionNode{Action: a}
			for _, o := range dataset.Outcomes {
				if o.ActionID == a.ID {
					actionNode.Outcomes = append(actionNode.Outcomes, o)
				}
			}
			node.Actions = append(node.Actions, actionNode)
		}
		result.Decisions = append(result.Decisions, node)
	}

	result.HasData = len(result.Decisions) > 0

	return result
}

// BuildAll reconstructs chains for every intervention that has at least one
// decision, in intervention order.
func BuildAll(dataset models.Dataset) []Chain {
	chains := []Chain{}
	for _, intervention := range dataset.Interventions {
		c := Build(dataset, intervention)
		if c.HasData {
			chains = append(chains, c)
		}
	}
	return chains
}
