package hosting

import (
	"errors"
	"fmt"

	"teamsync/pkg/config"
)

// ErrTeamNotFound indicates that a team referenced by the mapping does not
// exist on the hosting service.
var ErrTeamNotFound = errors.New("team not found")

// APIError represents a failed call against the hosting service API.
type APIError struct {
	Op         string
	Team       config.TeamRef
	Username   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s failed for team %s", e.Op, e.Team)
	if e.Username != "" {
		msg = fmt.Sprintf("%s failed for user %q on team %s", e.Op, e.Username, e.Team)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", msg, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err indicates a missing team.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTeamNotFound)
}
