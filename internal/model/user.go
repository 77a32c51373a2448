// Package model defines the data structures used throughout the application.
package model

import "time"

// User is the GitHub "authenticated user" object as the dashboard reads it.
// The proxy never decodes it: /account passes the upstream bytes through,
// so fields GitHub adds later still reach the client. Only the views
// decode into this struct.
//
// Bio and Location are nullable upstream; an empty string stands in for null.
//
// GitHub API docs: https://docs.github.com/en/rest/users/users#get-the-authenticated-user
type User struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
