package model

import "time"

// IssueSummary is one row of the assigned-issues list.
//
// Repository is the bare repository name (last segment of the issue's
// repository_url), not "owner/repo". Username is the issue author.
type IssueSummary struct {
	Username   string    `json:"username"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	Repository string    `json:"repository"`
	Body       string    `json:"body"`
}

// IssueDetail is the single-issue view.
type IssueDetail struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	Body       string    `json:"body"`
	Repository string    `json:"repository"`
}

// Pagination links for an IssuesPage. Next and Prev are absolute URLs and
// are null in JSON when there is no such page.
type Pagination struct {
	Next       *string `json:"next"`
	Prev       *string `json:"prev"`
	TotalPages int     `json:"total_pages"`
}

// IssuesPage is the body of GET /issues/{username}.
type IssuesPage struct {
	Issues     []IssueSummary `json:"issues"`
	Pagination Pagination     `json:"pagination"`
}
