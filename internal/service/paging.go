package service

import (
	"net/url"
	"path"
	"strings"
)

// Pagination limits for the assigned-issues search. GitHub rejects
// per_page above 100.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MinPerPage     = 1
	MaxPerPage     = 100
)

// ClampPerPage forces n into [MinPerPage, MaxPerPage].
func ClampPerPage(n int) int {
	return min(max(n, MinPerPage), MaxPerPage)
}

// TotalPages is ceil(totalCount / perPage). perPage is clamped first, so
// the division is always defined.
func TotalPages(totalCount, perPage int) int {
	if totalCount <= 0 {
		return 0
	}
	perPage = ClampPerPage(perPage)
	return (totalCount + perPage - 1) / perPage
}

// RepositoryName returns the last path segment of an issue's
// repository_url: ".../repos/acme/widget" → "widget".
func RepositoryName(repositoryURL string) string {
	p := repositoryURL
	if u, err := url.Parse(repositoryURL); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
