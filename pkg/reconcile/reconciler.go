// Package reconcile computes and applies team membership changes. A run
// derives the desired members of every mapped team from the directory and
// reconciles the hosting service against that state in a single pass.
package reconcile

import (
	"context"
	"errors"
	"sort"

	"teamsync/pkg/config"
	"teamsync/pkg/directory"
	"teamsync/pkg/hosting"
)

// Reconciler compares directory group members against hosting team members
// and applies the difference.
type Reconciler struct {
	directory directory.Reader
	hosting   hosting.Client
	mapping   config.Mapping
}

// New creates a new Reconciler instance
func New(dir directory.Reader, host hosting.Client, mapping config.Mapping) *Reconciler {
	return &Reconciler{
		directory: dir,
		hosting:   host,
		mapping:   mapping,
	}
}

// Plan computes the changes needed to bring every mapped team in line with
// the directory. The desired membership of a team is the union of all
// directory groups mapped to it. Groups that cannot be read contribute no
// members and are reported in GroupErrors; teams whose current membership
// cannot be read carry the error on their TeamPlan and are skipped by Apply.
// Teams not named in the mapping are never read or written.
func (r *Reconciler) Plan(ctx context.Context) (*Plan, error) {
	plan := &Plan{}

	// Read every mapped group once, in deterministic order
	groupMembers := make(map[string][]string)
	for _, group := range r.mapping.Groups() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		members, err := r.directory.GroupMembers(ctx, group)
		if err != nil {
			var dirErr *directory.DirectoryError
			if !errors.As(err, &dirErr) {
				dirErr = &directory.DirectoryError{Group: group, Err: err}
			}
			plan.GroupErrors = append(plan.GroupErrors, dirErr)
			continue
		}
		groupMembers[group] = members
	}

	for _, team := range r.mapping.Teams() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		groups := r.mapping.GroupsFor(team)
		teamPlan := TeamPlan{Team: team, Groups: groups}

		desired := desiredMembers(groups, groupMembers)

		current, err := r.hosting.ListTeamMembers(ctx, team)
		if err != nil {
			teamPlan.Err = err
			plan.Teams = append(plan.Teams, teamPlan)
			continue
		}

		teamPlan.Add, teamPlan.Remove = diff(desired, current)
		plan.Teams = append(plan.Teams, teamPlan)
	}

	return plan, nil
}

// Apply executes the plan against the hosting service. Every change is
// attempted: a failed call is recorded on the Result and the run continues
// with the next change.
func (r *Reconciler) Apply(ctx context.Context, plan *Plan) *Result {
	result := &Result{}

	for i := range plan.Teams {
		teamPlan := &plan.Teams[i]

		if teamPlan.Err != nil {
			result.Skipped++
			continue
		}

		for _, username := range teamPlan.Add {
			if err := r.hosting.AddTeamMember(ctx, teamPlan.Team, username); err != nil {
				result.Failed = append(result.Failed, Failure{
					Team:     teamPlan.Team,
					Username: username,
					Action:   ActionAdd,
					Err:      err,
				})
				continue
			}
			result.Added++
		}

		for _, username := range teamPlan.Remove {
			if err := r.hosting.RemoveTeamMember(ctx, teamPlan.Team, username); err != nil {
				result.Failed = append(result.Failed, Failure{
					Team:     teamPlan.Team,
					Username: username,
					Action:   ActionRemove,
					Err:      err,
				})
				continue
			}
			result.Removed++
		}
	}

	return result
}

// desiredMembers unions the members of the given groups. Groups missing from
// the map contributed no members.
func desiredMembers(groups []string, groupMembers map[string][]string) []string {
	seen := make(map[string]bool)
	members := []string{}
	for _, group := range groups {
		for _, username := range groupMembers[group] {
			if !seen[username] {
				seen[username] = true
				members = append(members, username)
			}
		}
	}
	sort.Strings(members)
	return members
}

// diff computes the additions and removals that turn current into desired.
func diff(desired, current []string) (add, remove []string) {
	currentSet := make(map[string]bool, len(current))
	for _, username := range current {
		currentSet[username] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, username := range desired {
		desiredSet[username] = true
	}

	for _, username := range desired {
		if !currentSet[username] {
			add = append(add, username)
		}
	}
	for _, username := range current {
		if !desiredSet[username] {
			remove = append(remove, username)
		}
	}

	sort.Strings(add)
	sort.Strings(remove)
	return add, remove
}
