// Package service contains the business logic layer of the proxy.
//
// Handlers parse HTTP and write responses; the service decides what the
// upstream answer means. It owns the pagination arithmetic, the mapping
// from GitHub's issue objects to the dashboard's smaller shapes, and the
// classification of upstream failures into apperror values:
//
//	GitHub unreachable / garbled  → apperror.ErrUpstream
//	nothing to show               → apperror.ErrNotFound
//	bad input from the caller     → apperror.ErrValidation
//
// The service depends on the Upstream interface, not on *github.Client,
// so tests drive it with an in-memory fake.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/issue-dashboard/internal/apperror"
	"github.com/sakif/issue-dashboard/internal/github"
	"github.com/sakif/issue-dashboard/internal/model"
)

// Messages surfaced to API clients.
const (
	MsgUpstreamUnavailable = "Unable to fetch GitHub data"
	MsgNoIssues            = "No issues found"
)

// Upstream is the part of *github.Client the service needs.
type Upstream interface {
	AuthenticatedUser(ctx context.Context) (json.RawMessage, error)
	SearchAssignedIssues(ctx context.Context, username string, page, perPage int) (*github.SearchResult, error)
	Issue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
}

// AssignedIssues is one page of a user's open assigned issues.
type AssignedIssues struct {
	Issues     []model.IssueSummary
	Page       int
	PerPage    int
	TotalPages int
}

// HasNext reports whether a page after Page exists.
func (a *AssignedIssues) HasNext() bool {
	return a.Page < a.TotalPages
}

// HasPrev reports whether a page before Page exists.
func (a *AssignedIssues) HasPrev() bool {
	return a.Page > 1
}

// IssueService answers the three proxy operations.
type IssueService struct {
	upstream Upstream
	logger   *slog.Logger
}

// NewIssueService creates an IssueService.
func NewIssueService(upstream Upstream, logger *slog.Logger) *IssueService {
	return &IssueService{
		upstream: upstream,
		logger:   logger,
	}
}

// Account returns the authenticated user's JSON exactly as GitHub sent it.
func (s *IssueService) Account(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.upstream.AuthenticatedUser(ctx)
	if err != nil {
		s.logger.Error("failed to fetch GitHub user", slog.String("error", err.Error()))
		return nil, apperror.Upstream(MsgUpstreamUnavailable, err)
	}

	s.logger.Info("fetched GitHub user")
	return raw, nil
}

// AssignedIssues returns the open issues assigned to username.
//
// page below 1 is treated as 1 and perPage is clamped to [1,100] before
// anything is sent upstream. An empty result is a success with no issues
// and zero pages; only a payload without an "items" field, or GitHub
// rejecting the search (404/422, e.g. an unknown user), is "not found".
func (s *IssueService) AssignedIssues(ctx context.Context, username string, page, perPage int) (*AssignedIssues, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if page < 1 {
		page = DefaultPage
	}
	perPage = ClampPerPage(perPage)

	result, err := s.upstream.SearchAssignedIssues(ctx, username, page, perPage)
	if err != nil {
		switch github.StatusCode(err) {
		case http.StatusNotFound, http.StatusUnprocessableEntity:
			s.logger.Info("no issues found", slog.String("username", username))
			return nil, apperror.NotFound(MsgNoIssues)
		}
		s.logger.Error("failed to search assigned issues",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Upstream(MsgUpstreamUnavailable, err)
	}

	if result.Items == nil {
		s.logger.Info("no issues found", slog.String("username", username))
		return nil, apperror.NotFound(MsgNoIssues)
	}

	issues := make([]model.IssueSummary, 0, len(result.Items))
	for _, item := range result.Items {
		issues = append(issues, toSummary(item))
	}

	s.logger.Info("fetched assigned issues",
		slog.String("username", username),
		slog.Int("page", page),
		slog.Int("count", len(issues)),
		slog.Int("total", result.TotalCount),
	)

	return &AssignedIssues{
		Issues:     issues,
		Page:       page,
		PerPage:    perPage,
		TotalPages: TotalPages(result.TotalCount, perPage),
	}, nil
}

// Issue returns a single issue of owner/repository.
// number must be a positive decimal integer.
func (s *IssueService) Issue(ctx context.Context, owner, repository, number string) (*model.IssueDetail, error) {
	owner = strings.TrimSpace(owner)
	repository = strings.TrimSpace(repository)
	if owner == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if repository == "" {
		return nil, apperror.ValidationFailed("repository", "repository is required")
	}
	n, err := strconv.Atoi(number)
	if err != nil || n < 1 {
		return nil, apperror.ValidationFailed("issueNumber", "issue number must be a positive integer")
	}

	issue, err := s.upstream.Issue(ctx, owner, repository, n)
	if err != nil {
		code := github.StatusCode(err)
		if code == http.StatusNotFound || code == http.StatusGone || errors.Is(err, github.ErrEmptyPayload) {
			s.logger.Info("issue not found",
				slog.String("repository", owner+"/"+repository),
				slog.Int("number", n),
			)
			return nil, apperror.IssueNotFound(repository, number)
		}
		s.logger.Error("failed to fetch issue",
			slog.String("repository", owner+"/"+repository),
			slog.Int("number", n),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Upstream(MsgUpstreamUnavailable, err)
	}
	if issue.Number == 0 {
		return nil, apperror.IssueNotFound(repository, number)
	}

	s.logger.Info("fetched issue details",
		slog.String("repository", owner+"/"+repository),
		slog.Int("number", n),
	)

	return &model.IssueDetail{
		Number:     issue.Number,
		Title:      issue.Title,
		CreatedAt:  issue.CreatedAt,
		Body:       issue.Body,
		Repository: RepositoryName(issue.RepositoryURL),
	}, nil
}

func toSummary(issue github.Issue) model.IssueSummary {
	var author string
	if issue.User != nil {
		author = issue.User.Login
	}
	return model.IssueSummary{
		Username:   author,
		Number:     issue.Number,
		Title:      issue.Title,
		CreatedAt:  issue.CreatedAt,
		Repository: RepositoryName(issue.RepositoryURL),
		Body:       issue.Body,
	}
}
