package hosting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"code.gitea.io/sdk/gitea"
	"github.com/hashicorp/go-cleanhttp"

	"teamsync/pkg/config"
)

const (
	// pageSize is the page size requested when listing teams and members.
	pageSize = 50
	// httpTimeout bounds every request made against the hosting API.
	httpTimeout = 30 * time.Second
)

// Gitea implements Client against the Gitea REST API.
//
// Gitea addresses team membership endpoints by numeric team ID, so the
// client lists each organization's teams once and caches the name to ID
// mapping for the lifetime of the client. Team names match case-insensitively.
type Gitea struct {
	client *gitea.Client
	teams  map[string]map[string]int64
}

var _ Client = (*Gitea)(nil)

// NewGitea creates a Client for the Gitea instance at cfg.BaseURL. The URL
// defaults to https when no scheme is given. Construction verifies that the
// server is reachable and speaks a supported API version.
func NewGitea(ctx context.Context, cfg config.Hosting) (*Gitea, error) {
	baseURL := cfg.BaseURL
	if !strings.Contains(baseURL, "://") {
		baseURL = fmt.Sprintf("https://%s", baseURL)
	}

	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = httpTimeout

	client, err := gitea.NewClient(baseURL,
		gitea.SetHTTPClient(httpClient),
		gitea.SetToken(cfg.Token),
		gitea.SetContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gitea at %s: %w", baseURL, err)
	}

	return &Gitea{
		client: client,
		teams:  make(map[string]map[string]int64),
	}, nil
}

// ListTeamMembers returns the usernames of all current members of the team,
// sorted alphabetically.
func (g *Gitea) ListTeamMembers(_ context.Context, team config.TeamRef) ([]string, error) {
	id, err := g.resolveTeam(team)
	if err != nil {
		return nil, err
	}

	members := []string{}
	opts := gitea.ListTeamMembersOptions{
		ListOptions: gitea.ListOptions{Page: 1, PageSize: pageSize},
	}
	for {
		page, resp, err := g.client.ListTeamMembers(id, opts)
		if err != nil {
			return nil, &APIError{Op: "list team members", Team: team, StatusCode: statusCode(resp), Err: err}
		}
		for _, user := range page {
			members = append(members, user.UserName)
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.Strings(members)
	return members, nil
}

// AddTeamMember adds the user to the team. Gitea treats adding an existing
// member as a no-op.
func (g *Gitea) AddTeamMember(_ context.Context, team config.TeamRef, username string) error {
	id, err := g.resolveTeam(team)
	if err != nil {
		return err
	}

	resp, err := g.client.AddTeamMember(id, username)
	if err != nil {
		return &APIError{Op: "add team member", Team: team, Username: username, StatusCode: statusCode(resp), Err: err}
	}
	return nil
}

// RemoveTeamMember removes the user from the team.
func (g *Gitea) RemoveTeamMember(_ context.Context, team config.TeamRef, username string) error {
	id, err := g.resolveTeam(team)
	if err != nil {
		return err
	}

	resp, err := g.client.RemoveTeamMember(id, username)
	if err != nil {
		return &APIError{Op: "remove team member", Team: team, Username: username, StatusCode: statusCode(resp), Err: err}
	}
	return nil
}

// resolveTeam maps an org/team reference to Gitea's numeric team ID, listing
// the organization's teams on first use and caching the result.
func (g *Gitea) resolveTeam(team config.TeamRef) (int64, error) {
	byName, ok := g.teams[team.Org]
	if !ok {
		byName = make(map[string]int64)
		opts := gitea.ListTeamsOptions{
			ListOptions: gitea.ListOptions{Page: 1, PageSize: pageSize},
		}
		for {
			page, resp, err := g.client.ListOrgTeams(team.Org, opts)
			if err != nil {
				return 0, &APIError{Op: "list teams", Team: team, StatusCode: statusCode(resp), Err: err}
			}
			for _, t := range page {
				byName[strings.ToLower(t.Name)] = t.ID
			}
			if resp == nil || resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		g.teams[team.Org] = byName
	}

	id, ok := byName[team.Team]
	if !ok {
		return 0, &APIError{Op: "resolve team", Team: team, Err: ErrTeamNotFound}
	}
	return id, nil
}

func statusCode(resp *gitea.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
