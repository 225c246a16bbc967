package hosting

import (
	"context"
	"fmt"

	"teamsync/pkg/config"
)

// Client defines the interface for team membership operations on a hosting
// service. Usernames are the service's login names and are compared verbatim.
type Client interface {
	// ListTeamMembers returns the usernames of all current members of the team.
	ListTeamMembers(ctx context.Context, team config.TeamRef) ([]string, error)
	// AddTeamMember adds the user to the team. Adding an existing member is a no-op.
	AddTeamMember(ctx context.Context, team config.TeamRef, username string) error
	// RemoveTeamMember removes the user from the team.
	RemoveTeamMember(ctx context.Context, team config.TeamRef, username string) error
}

// New creates a Client for the provider named in the hosting configuration.
func New(ctx context.Context, cfg config.Hosting) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGitea:
		return NewGitea(ctx, cfg)
	case config.ProviderGitHub:
		return NewGitHub(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported hosting provider %q", cfg.Provider)
	}
}
