package github

import "time"

// SearchResult is the subset of GET /search/issues the proxy reads.
//
// Items is nil when the payload had no "items" field (or it was null) and
// non-nil, possibly empty, when GitHub sent an array.
type SearchResult struct {
	TotalCount        int     `json:"total_count"`
	IncompleteResults bool    `json:"incomplete_results"`
	Items             []Issue `json:"items"`
}

// Issue is the subset of a GitHub issue object the proxy reads.
// Body is null upstream for issues without a description.
type Issue struct {
	Number        int        `json:"number"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	CreatedAt     time.Time  `json:"created_at"`
	RepositoryURL string     `json:"repository_url"`
	User          *IssueUser `json:"user"`
}

// IssueUser is the author embedded in an issue.
type IssueUser struct {
	Login string `json:"login"`
}
