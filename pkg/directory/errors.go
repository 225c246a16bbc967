package directory

import "fmt"

// DirectoryError reports a failed directory query for a single group.
// The run logs it and continues; the group contributes no members to
// desired membership for this pass.
type DirectoryError struct {
	Group string
	Err   error
}

// Error implements the error interface
func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory query for group %q failed: %v", e.Group, e.Err)
}

// Unwrap returns the underlying error
func (e *DirectoryError) Unwrap() error {
	return e.Err
}
