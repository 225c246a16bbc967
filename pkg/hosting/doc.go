// Package hosting provides team membership operations against Git hosting
// services for teamsync. It exposes a provider-neutral Client interface and
// implementations backed by the Gitea and GitHub REST APIs.
//
// The package includes:
// - Client interface for team membership operations
// - Gitea implementation using the official Gitea SDK
// - GitHub implementation using go-github, including GitHub Enterprise
// - Error types that preserve HTTP status codes for failed API calls
package hosting
