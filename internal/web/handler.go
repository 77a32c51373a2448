// Package web renders the dashboard's HTML views.
//
// Pages are rendered on the server from the proxy's JSON. Templates and
// the small script that drives the loading state are embedded in the
// binary, so cmd/web has no files to deploy besides itself.
//
// VIEWS:
//
//	GET /                                   → account view (?page=N)
//	GET /issue/{username}/{repository}/{id} → issue view
//
// A failed fetch renders only a generic message with status 502. Nothing
// fetched before the failure is shown.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/sakif/issue-dashboard/internal/model"
)

const (
	msgFetchData  = "Failed to fetch data"
	msgFetchIssue = "Failed to fetch issue details"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// API is the part of *apiclient.Client the views need.
type API interface {
	Account(ctx context.Context) (*model.User, error)
	AssignedIssues(ctx context.Context, username string, page, perPage int) (*model.IssuesPage, error)
	Issue(ctx context.Context, username, repository, id string) (*model.IssueDetail, error)
}

// Handler serves the HTML views. Templates are parsed once in NewHandler.
type Handler struct {
	api     API
	perPage int
	pages   map[string]*template.Template
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler parses the embedded templates. perPage is the page size asked
// of the proxy for the account view.
func NewHandler(api API, perPage int, logger *slog.Logger) (*Handler, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format("January 2, 2006") },
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"account", "issue", "error"} {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		api:     api,
		perPage: perPage,
		pages:   pages,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Static serves the embedded files under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

type issueLink struct {
	Title  string
	Number int
	URL    string
}

type accountView struct {
	User       *model.User
	Issues     []issueLink
	Pagination Pagination
}

type issueView struct {
	Issue   *model.IssueDetail
	Age     string
	Body    template.HTML
	BackURL string
}

type errorView struct {
	Message string
}

// HandleAccount renders the signed-in user and one page of their assigned
// issues.
//
// HTTP: GET /?page=N
//
// The user is fetched first because the issue search needs its login.
// If either fetch fails, the page shows only the generic error. An empty
// list comes back from the proxy as a 200 and renders "No assigned issues".
func (h *Handler) HandleAccount(w http.ResponseWriter, r *http.Request) {
	page := 1
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page = n
	}

	user, err := h.api.Account(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch account", slog.String("error", err.Error()))
		h.renderError(w, msgFetchData)
		return
	}

	result, err := h.api.AssignedIssues(r.Context(), user.Login, page, h.perPage)
	if err != nil {
		h.logger.Error("failed to fetch assigned issues",
			slog.String("username", user.Login),
			slog.Int("page", page),
			slog.String("error", err.Error()),
		)
		h.renderError(w, msgFetchData)
		return
	}

	links := make([]issueLink, 0, len(result.Issues))
	for _, issue := range result.Issues {
		links = append(links, issueLink{
			Title:  issue.Title,
			Number: issue.Number,
			URL:    issueURL(user.Login, issue.Repository, issue.Number),
		})
	}

	h.render(w, http.StatusOK, "account", accountView{
		User:       user,
		Issues:     links,
		Pagination: NewPagination(page, result.Pagination.TotalPages, false),
	})
}

// HandleIssue renders a single issue with its markdown body.
//
// HTTP: GET /issue/{username}/{repository}/{id}
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	repository := chi.URLParam(r, "repository")
	id := chi.URLParam(r, "id")

	issue, err := h.api.Issue(r.Context(), username, repository, id)
	if err != nil {
		h.logger.Error("failed to fetch issue",
			slog.String("repository", username+"/"+repository),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		h.renderError(w, msgFetchIssue)
		return
	}

	body, err := renderMarkdown(issue.Body)
	if err != nil {
		h.logger.Error("failed to render issue body", slog.String("error", err.Error()))
		h.renderError(w, msgFetchIssue)
		return
	}

	h.render(w, http.StatusOK, "issue", issueView{
		Issue:   issue,
		Age:     humanize.RelTime(issue.CreatedAt, h.now(), "ago", "from now"),
		Body:    body,
		BackURL: "/",
	})
}

func (h *Handler) renderError(w http.ResponseWriter, message string) {
	h.render(w, http.StatusBadGateway, "error", errorView{Message: message})
}

// render executes the page into a buffer first so a template error never
// leaves a half-written page behind a 200.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func issueURL(username, repository string, number int) string {
	return "/issue/" + url.PathEscape(username) + "/" + url.PathEscape(repository) + "/" + strconv.Itoa(number)
}
