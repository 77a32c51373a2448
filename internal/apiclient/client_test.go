package apiclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/issue-dashboard/internal/apiclient"
	"github.com/sakif/issue-dashboard/internal/config"
)

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(config.Web{ProxyURL: srv.URL, Timeout: 5 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestAccount(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(chimiddleware.RequestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"login":"octocat","name":"The Octocat","avatar_url":"https://example.com/a.png","public_repos":8}`)
	})

	user, err := c.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, "The Octocat", user.Name)
	assert.Equal(t, "https://example.com/a.png", user.AvatarURL)
	assert.Equal(t, 8, user.PublicRepos)
}

func TestAccount_Failure(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Unable to fetch GitHub data"}`)
	})

	_, err := c.Account(context.Background())
	require.Error(t, err)

	var statusErr *apiclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Unable to fetch GitHub data", statusErr.Message)
	assert.False(t, apiclient.IsNotFound(err))
}

func TestAssignedIssues(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues/octocat", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		_, _ = io.WriteString(w, `{
			"issues": [{"username":"alice","number":7,"title":"Fix","created_at":"2024-03-01T10:00:00Z","repository":"widget","body":""}],
			"pagination": {"next":"http://proxy/issues/octocat?page=3&per_page=10","prev":"http://proxy/issues/octocat?page=1&per_page=10","total_pages":3}
		}`)
	})

	page, err := c.AssignedIssues(context.Background(), "octocat", 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Issues, 1)
	assert.Equal(t, "widget", page.Issues[0].Repository)
	assert.Equal(t, 7, page.Issues[0].Number)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	require.NotNil(t, page.Pagination.Next)
	require.NotNil(t, page.Pagination.Prev)
}

func TestAssignedIssues_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"not_found","message":"No issues found"}`)
	})

	_, err := c.AssignedIssues(context.Background(), "ghost", 1, 10)
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))
	assert.Contains(t, err.Error(), "No issues found")
}

func TestAssignedIssues_NullIssues(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"issues":null,"pagination":{"next":null,"prev":null,"total_pages":0}}`)
	})

	page, err := c.AssignedIssues(context.Background(), "octocat", 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Issues)
	assert.Empty(t, page.Issues)
}

func TestIssue(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issues/acme/widget/42", r.URL.Path)
		_, _ = io.WriteString(w, `{"number":42,"title":"Broken build","created_at":"2024-01-02T03:04:05Z","body":"## Steps","repository":"widget"}`)
	})

	issue, err := c.Issue(context.Background(), "acme", "widget", "42")
	require.NoError(t, err)
	assert.Equal(t, 42, issue.Number)
	assert.Equal(t, "## Steps", issue.Body)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), issue.CreatedAt)
}

func TestForwardsRequestID(t *testing.T) {
	var got string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(chimiddleware.RequestIDHeader)
		_, _ = io.WriteString(w, `{"login":"octocat"}`)
	})

	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-123")
	_, err := c.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-123", got)
}

func TestBadJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := c.Issue(context.Background(), "acme", "widget", "1")
	require.Error(t, err)
	var statusErr *apiclient.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	proxyURL := srv.URL
	srv.Close()

	c, err := apiclient.New(config.Web{ProxyURL: proxyURL, Timeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = c.Account(context.Background())
	require.Error(t, err)
}
