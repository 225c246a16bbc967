// Package directory reads group membership from an LDAP directory
// service.
package directory

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-ldap/ldap/v3"

	"teamsync/pkg/config"
)

// Reader fetches the usernames belonging to a named directory group.
// Implementations return a *DirectoryError when the query for a single
// group fails; callers treat that group as contributing no members and
// carry on.
type Reader interface {
	GroupMembers(ctx context.Context, group string) ([]string, error)
}

// searchConn is the subset of *ldap.Conn the reader uses. It exists so
// tests can substitute a fake connection.
type searchConn interface {
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// LDAP implements Reader against an LDAP directory using one bound
// connection per run.
type LDAP struct {
	conn searchConn
	cfg  config.Directory
}

// Connect dials the configured LDAP URL and performs a simple bind.
// Connection and bind failures are fatal for the run, so they are
// returned as plain errors rather than as *DirectoryError.
func Connect(cfg config.Directory) (*LDAP, error) {
	conn, err := ldap.DialURL(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to directory %s: %w", cfg.Host, err)
	}

	if err := conn.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to bind to directory as %s: %w", cfg.BindDN, err)
	}

	return &LDAP{conn: conn, cfg: cfg}, nil
}

// GroupMembers searches the configured base for entries of the given
// group and returns the union of their member attribute values, sorted
// and deduplicated. A group matching no entries yields an empty result
// with no error.
func (l *LDAP) GroupMembers(_ context.Context, group string) ([]string, error) {
	filter := fmt.Sprintf("(&%s(%s=%s))",
		l.cfg.SearchFilter, l.cfg.GroupAttribute, ldap.EscapeFilter(group))

	req := ldap.NewSearchRequest(
		l.cfg.SearchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		[]string{l.cfg.MemberAttribute},
		nil,
	)

	res, err := l.conn.Search(req)
	if err != nil {
		return nil, &DirectoryError{Group: group, Err: err}
	}

	seen := make(map[string]struct{})
	var members []string
	for _, entry := range res.Entries {
		// Attribute names compare case-insensitively, matching LDAP
		// schema semantics.
		for _, member := range entry.GetEqualFoldAttributeValues(l.cfg.MemberAttribute) {
			if member == "" {
				continue
			}
			if _, ok := seen[member]; ok {
				continue
			}
			seen[member] = struct{}{}
			members = append(members, member)
		}
	}
	sort.Strings(members)

	return members, nil
}

// Close releases the directory connection.
func (l *LDAP) Close() error {
	return l.conn.Close()
}
