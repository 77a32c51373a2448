// Package github is the proxy's only way out to the GitHub REST API.
//
// Every call goes through Client.get, which attaches the configured
// personal access token, decodes the JSON body and reports failure as a
// *RequestError tagged with what went wrong. Callers can therefore tell
// "GitHub said 404" apart from "GitHub was unreachable" instead of seeing
// an empty result for both.
//
// GitHub API docs: https://docs.github.com/en/rest
package github

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

	"github.com/rs/xid"
	"golang.org/x/oauth2"

	"github.com/sakif/issue-dashboard/internal/config"
)

const (
	acceptHeader = "application/vnd.github.v3+json"
	userAgent    = "issue-dashboard"

	// maxBodyBytes bounds how much of an upstream response is read.
	maxBodyBytes = 10 << 20
)

// ErrEmptyPayload is wrapped by the KindDecode RequestError returned when
// GitHub answers 2xx with a JSON null instead of an object.
var ErrEmptyPayload = errors.New("empty payload")

// Kind classifies a failed upstream call.
type Kind int

const (
	// KindTransport: the request never produced a response (DNS, refused
	// connection, timeout, cancelled context, truncated body).
	KindTransport Kind = iota + 1
	// KindStatus: GitHub answered with a non-2xx status.
	KindStatus
	// KindDecode: GitHub answered 2xx but the body was not the expected JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestError is the failure half of every Client call.
type RequestError struct {
	Kind       Kind
	URL        string
	StatusCode int    // set for KindStatus
	Message    string // GitHub's "message" field, when the error body had one
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("github: GET %s returned status %d: %s", e.URL, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("github: GET %s returned status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("github: GET %s failed (%s): %v", e.URL, e.Kind, e.Err)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream HTTP status carried by err, or 0 when err
// is not a KindStatus RequestError.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Kind == KindStatus {
		return reqErr.StatusCode
	}
	return 0
}

// Client performs authenticated GET requests against one GitHub API root.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a Client from the upstream configuration.
//
// The token is attached by an oauth2.Transport over a static token source.
// Its type is "token" rather than the default "Bearer", so every request
// carries "Authorization: token <secret>" as GitHub documents for
// personal access tokens.
func NewClient(cfg config.Upstream, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("github: parsing base URL: %w", err)
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "token",
	})

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: source,
				Base:   http.DefaultTransport,
			},
		},
		logger: logger,
	}, nil
}

// AuthenticatedUser returns the raw JSON object of GET /user.
func (c *Client) AuthenticatedUser(ctx context.Context) (json.RawMessage, error) {
	u := c.endpoint(nil, "user")

	var raw json.RawMessage
	if err := c.get(ctx, u, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, &RequestError{
			Kind: KindDecode,
			URL:  u.String(),
			Err:  errors.New("expected a JSON object"),
		}
	}
	return raw, nil
}

// SearchAssignedIssues runs the issue search "assignee:<username> state:open".
func (c *Client) SearchAssignedIssues(ctx context.Context, username string, page, perPage int) (*SearchResult, error) {
	query := url.Values{}
	query.Set("q", "assignee:"+username+" state:open")
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	var result SearchResult
	if err := c.get(ctx, c.endpoint(query, "search", "issues"), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Issue fetches GET /repos/{owner}/{repo}/issues/{number}.
func (c *Client) Issue(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	u := c.endpoint(nil, "repos", owner, repo, "issues", strconv.Itoa(number))

	var issue *Issue
	if err := c.get(ctx, u, &issue); err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, &RequestError{
			Kind: KindDecode,
			URL:  u.String(),
			Err:  ErrEmptyPayload,
		}
	}
	return issue, nil
}

func (c *Client) endpoint(query url.Values, segments ...string) *url.URL {
	u := c.baseURL.JoinPath(segments...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

// get is the outbound call primitive. It never retries; the first failure
// is returned as a *RequestError.
func (c *Client) get(ctx context.Context, u *url.URL, out any) error {
	callID := xid.New().String()
	target := u.String()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &RequestError{Kind: KindTransport, URL: target, Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("github request started",
		slog.String("call_id", callID),
		slog.String("url", target),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("github request failed",
			slog.String("call_id", callID),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return &RequestError{Kind: KindTransport, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RequestError{Kind: KindTransport, URL: target, Err: fmt.Errorf("reading body: %w", err)}
	}

	c.logger.Info("github request completed",
		slog.String("call_id", callID),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &RequestError{
			Kind:       KindStatus,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    apiErr.Message,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("github response was not JSON",
			slog.String("call_id", callID),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return &RequestError{Kind: KindDecode, URL: target, Err: err}
	}

	return nil
}
