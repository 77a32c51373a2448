// Package handler contains the HTTP handlers of the proxy service.
//
// Handlers parse the request (path and query parameters), call the
// service, and translate the result into a JSON response. They hold no
// business rules beyond input parsing; the pagination arithmetic and the
// meaning of upstream failures live in the service package.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/issue-dashboard/internal/model"
	"github.com/sakif/issue-dashboard/internal/service"
)

// IssueService is what the handlers need from the service layer.
// *service.IssueService satisfies it.
type IssueService interface {
	Account(ctx context.Context) (json.RawMessage, error)
	AssignedIssues(ctx context.Context, username string, page, perPage int) (*service.AssignedIssues, error)
	Issue(ctx context.Context, owner, repository, number string) (*model.IssueDetail, error)
}

// GitHubHandler serves the three proxy routes.
type GitHubHandler struct {
	svc    IssueService
	logger *slog.Logger
}

// NewGitHubHandler creates a GitHubHandler.
func NewGitHubHandler(svc IssueService, logger *slog.Logger) *GitHubHandler {
	return &GitHubHandler{
		svc:    svc,
		logger: logger,
	}
}

// HandleAccount returns the authenticated GitHub user.
//
// HTTP: GET /account
//
// The upstream JSON is passed through untouched. Any failure, whatever its
// cause, is a 500 with {"error": "Unable to fetch GitHub data"}.
func (h *GitHubHandler) HandleAccount(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.Account(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: service.MsgUpstreamUnavailable})
		return
	}

	writeRawJSON(w, http.StatusOK, raw)
}

// HandleAssignedIssues returns one page of the user's open assigned issues.
//
// HTTP: GET /issues/{username}?page=1&per_page=10
//
// RESPONSE FORMAT:
//
//	{
//	  "issues": [{"username":"alice","number":7,"title":"...","created_at":"...","repository":"widget","body":"..."}],
//	  "pagination": {"next":"http://host/issues/octocat?page=2&per_page=10","prev":null,"total_pages":3}
//	}
func (h *GitHubHandler) HandleAssignedIssues(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page, perPage := parsePaging(r.URL.Query())

	result, err := h.svc.AssignedIssues(r.Context(), username, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	pagination := model.Pagination{TotalPages: result.TotalPages}
	if result.HasNext() {
		next := pageURL(r, result.Page+1, result.PerPage)
		pagination.Next = &next
	}
	if result.HasPrev() {
		prev := pageURL(r, result.Page-1, result.PerPage)
		pagination.Prev = &prev
	}

	writeJSON(w, http.StatusOK, model.IssuesPage{
		Issues:     result.Issues,
		Pagination: pagination,
	})
}

// HandleIssueDetail returns a single issue.
//
// HTTP: GET /issues/{username}/{repository}/{issueNumber}
func (h *GitHubHandler) HandleIssueDetail(w http.ResponseWriter, r *http.Request) {
	issue, err := h.svc.Issue(r.Context(),
		chi.URLParam(r, "username"),
		chi.URLParam(r, "repository"),
		chi.URLParam(r, "issueNumber"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, issue)
}

// HandleHealth reports that the process is serving. It does not call GitHub.
//
// HTTP: GET /healthz
func (h *GitHubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePaging reads page and per_page. A missing or unusable page is 1.
// A missing per_page is the default; a non-numeric one counts as 0 and is
// clamped like any other value, so every input lands in [1,100].
func parsePaging(q url.Values) (page, perPage int) {
	page = service.DefaultPage
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}

	perPage = service.DefaultPerPage
	if q.Has("per_page") {
		perPage, _ = strconv.Atoi(q.Get("per_page"))
	}
	return page, service.ClampPerPage(perPage)
}

// pageURL is the absolute URL of the current request with the given page.
//
// SCHEME:
// Behind a TLS-terminating proxy the request arrives as plain http, so
// X-Forwarded-Proto wins when it names http or https. Any other value is
// ignored and the scheme comes from the connection itself.
func pageURL(r *http.Request, page, perPage int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}

	u := url.URL{
		Scheme: scheme,
		Host:   r.Host,
		Path:   r.URL.Path,
		RawQuery: url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		}.Encode(),
	}
	return u.String()
}
