package config

import (
	"fmt"
	"sort"
	"strings"
)

// TeamRef identifies a single team within an organization on the
// hosting service.
type TeamRef struct {
	Org  string
	Team string
}

// String returns the "org/team" form used in configuration and logs.
func (t TeamRef) String() string {
	return t.Org + "/" + t.Team
}

// ParseTeamRef parses an "org/team" configuration string. Both parts
// are trimmed and lowercased; the hosting service treats organization
// and team names case-insensitively.
func ParseTeamRef(s string) (TeamRef, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return TeamRef{}, fmt.Errorf("team reference %q must have the form org/team", s)
	}

	org := strings.ToLower(strings.TrimSpace(parts[0]))
	team := strings.ToLower(strings.TrimSpace(parts[1]))
	if org == "" || team == "" {
		return TeamRef{}, fmt.Errorf("team reference %q must have the form org/team", s)
	}

	return TeamRef{Org: org, Team: team}, nil
}

// Mapping associates directory group names with the teams whose
// membership they drive. Keys are group names, values are "org/team"
// target strings.
type Mapping map[string][]string

// Groups returns all mapped directory group names in sorted order.
func (m Mapping) Groups() []string {
	groups := make([]string, 0, len(m))
	for group := range m {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// Teams returns every distinct team appearing as a mapping target,
// sorted by organization then team name. Targets that fail to parse are
// skipped; Validate rejects them before a mapping is put to use.
func (m Mapping) Teams() []TeamRef {
	seen := make(map[TeamRef]struct{})
	var teams []TeamRef
	for _, targets := range m {
		for _, target := range targets {
			ref, err := ParseTeamRef(target)
			if err != nil {
				continue
			}
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			teams = append(teams, ref)
		}
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Org != teams[j].Org {
			return teams[i].Org < teams[j].Org
		}
		return teams[i].Team < teams[j].Team
	})
	return teams
}

// GroupsFor returns the sorted directory group names mapped to the
// given team. Membership of the team is desired for the union of these
// groups' members.
func (m Mapping) GroupsFor(team TeamRef) []string {
	var groups []string
	for group, targets := range m {
		for _, target := range targets {
			ref, err := ParseTeamRef(target)
			if err != nil {
				continue
			}
			if ref == team {
				groups = append(groups, group)
				break
			}
		}
	}
	sort.Strings(groups)
	return groups
}
