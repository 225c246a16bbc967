package hosting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"

	"teamsync/pkg/config"
)

// GitHub implements Client against the GitHub REST API. The team part of a
// reference is the team slug.
type GitHub struct {
	client *github.Client
}

var _ Client = (*GitHub)(nil)

// NewGitHub creates a Client for github.com, or for a GitHub Enterprise
// instance when cfg.BaseURL is set.
func NewGitHub(ctx context.Context, cfg config.Hosting) (*GitHub, error) {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = httpTimeout
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		if !strings.Contains(baseURL, "://") {
			baseURL = fmt.Sprintf("https://%s", baseURL)
		}
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base URL %s: %w", baseURL, err)
		}
	}

	return &GitHub{client: client}, nil
}

// ListTeamMembers returns the usernames of all current members of the team,
// sorted alphabetically.
func (g *GitHub) ListTeamMembers(ctx context.Context, team config.TeamRef) ([]string, error) {
	members := []string{}
	opts := &github.TeamListTeamMembersOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		page, resp, err := g.client.Teams.ListTeamMembersBySlug(ctx, team.Org, team.Team, opts)
		if err != nil {
			return nil, wrapGitHubError("list team members", team, "", err)
		}
		for _, user := range page {
			members = append(members, user.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.Strings(members)
	return members, nil
}

// AddTeamMember adds the user to the team. GitHub treats adding an existing
// member as a no-op.
func (g *GitHub) AddTeamMember(ctx context.Context, team config.TeamRef, username string) error {
	_, _, err := g.client.Teams.AddTeamMembershipBySlug(ctx, team.Org, team.Team, username, nil)
	if err != nil {
		return wrapGitHubError("add team member", team, username, err)
	}
	return nil
}

// RemoveTeamMember removes the user from the team.
func (g *GitHub) RemoveTeamMember(ctx context.Context, team config.TeamRef, username string) error {
	_, err := g.client.Teams.RemoveTeamMembershipBySlug(ctx, team.Org, team.Team, username)
	if err != nil {
		return wrapGitHubError("remove team member", team, username, err)
	}
	return nil
}

// wrapGitHubError converts a go-github error into an *APIError, preserving
// the HTTP status code. A 404 on a team-level operation maps to
// ErrTeamNotFound.
func wrapGitHubError(op string, team config.TeamRef, username string, err error) error {
	apiErr := &APIError{Op: op, Team: team, Username: username, Err: err}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr.StatusCode = ghErr.Response.StatusCode
		if ghErr.Response.StatusCode == http.StatusNotFound && username == "" {
			apiErr.Err = ErrTeamNotFound
		}
	}
	return apiErr
}
