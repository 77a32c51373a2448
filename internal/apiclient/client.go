// Package apiclient is the web front end's typed client for the proxy
// service. It knows the proxy's three routes and its error body, and
// nothing about GitHub.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"

	"github.com/sakif/issue-dashboard/internal/config"
	"github.com/sakif/issue-dashboard/internal/model"
)

const maxBodyBytes = 10 << 20

// StatusError is returned when the proxy answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("proxy returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("proxy returned status %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the proxy.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client calls the proxy service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the proxy at cfg.ProxyURL.
func New(cfg config.Web, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parsing proxy URL: %w", err)
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Account fetches GET /account.
func (c *Client) Account(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, c.endpoint(nil, "account"), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AssignedIssues fetches GET /issues/{username}?page=&per_page=.
func (c *Client) AssignedIssues(ctx context.Context, username string, page, perPage int) (*model.IssuesPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var result model.IssuesPage
	if err := c.get(ctx, c.endpoint(query, "issues", username), &result); err != nil {
		return nil, err
	}
	if result.Issues == nil {
		result.Issues = []model.IssueSummary{}
	}
	return &result, nil
}

// Issue fetches GET /issues/{username}/{repository}/{id}.
func (c *Client) Issue(ctx context.Context, username, repository, id string) (*model.IssueDetail, error) {
	var issue model.IssueDetail
	if err := c.get(ctx, c.endpoint(nil, "issues", username, repository, id), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) endpoint(query url.Values, segments ...string) *url.URL {
	u := c.baseURL.JoinPath(segments...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

// get sends the request ID of the incoming request along, so a page view
// and the proxy calls it caused share one ID in both logs.
func (c *Client) get(ctx context.Context, u *url.URL, out any) error {
	target := u.String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("apiclient: building request: %w", err)
	}

	requestID := chimiddleware.GetReqID(ctx)
	if requestID == "" {
		requestID = xid.New().String()
	}
	req.Header.Set(chimiddleware.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("proxy request failed",
			slog.String("request_id", requestID),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("apiclient: GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("apiclient: reading %s: %w", target, err)
	}

	c.logger.Debug("proxy request completed",
		slog.String("request_id", requestID),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = errBody.Error
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("apiclient: decoding %s: %w", target, err)
	}
	return nil
}
