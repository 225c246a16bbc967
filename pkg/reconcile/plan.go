package reconcile

import (
	"teamsync/pkg/config"
	"teamsync/pkg/directory"
)

// Action identifies the kind of membership change.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// TeamPlan holds the membership changes computed for a single team.
type TeamPlan struct {
	Team   config.TeamRef
	Groups []string
	Add    []string
	Remove []string
	// Err is set when the team's current membership could not be read.
	// Apply skips such teams.
	Err error
}

// Changed reports whether the team has any membership changes.
func (p *TeamPlan) Changed() bool {
	return len(p.Add) > 0 || len(p.Remove) > 0
}

// Plan describes the membership changes a sync run would apply.
type Plan struct {
	Teams []TeamPlan
	// GroupErrors lists the directory groups whose members could not be
	// read. Those groups contributed no members to the plan.
	GroupErrors []*directory.DirectoryError
}

// HasChanges reports whether the plan contains any changes to apply.
func (p *Plan) HasChanges() bool {
	for i := range p.Teams {
		if p.Teams[i].Changed() {
			return true
		}
	}
	return false
}

// Additions returns the total number of planned member additions.
func (p *Plan) Additions() int {
	total := 0
	for i := range p.Teams {
		total += len(p.Teams[i].Add)
	}
	return total
}

// Removals returns the total number of planned member removals.
func (p *Plan) Removals() int {
	total := 0
	for i := range p.Teams {
		total += len(p.Teams[i].Remove)
	}
	return total
}

// Failure records a single membership change that could not be applied.
type Failure struct {
	Team     config.TeamRef
	Username string
	Action   Action
	Err      error
}

// Result summarizes an apply pass.
type Result struct {
	Added   int
	Removed int
	// Skipped counts teams that were not touched because their current
	// membership could not be read during planning.
	Skipped int
	Failed  []Failure
}
