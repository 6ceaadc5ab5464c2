// Package httpclient is the authenticated HTTP client for the TaskHub API.
//
// It attaches the stored bearer token to outbound requests and, on a 401 for
// any non-login request, performs exactly one silent token refresh before
// re-issuing the request. A second 401 after the retry is terminal. All other
// failures pass through unmodified.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"taskhub/internal/session"
)

const (
	// loginPath is exempt from bearer injection and from the refresh
	// retry: a failed login is not an expired session.
	loginPath = "/login"

	// refreshPath receives the refresh credential outside the
	// intercepted path.
	refreshPath = "/auth/refresh"
)

// Request describes a single API call.
type Request struct {
	Method string
	Path   string // e.g. "/tasks/3/complete", joined onto the base URL
	Query  url.Values
	Body   any // marshalled as JSON when non-nil
}

// Client wraps outbound requests with bearer injection and the one-shot
// refresh retry. Side effects are confined to the session store.
type Client struct {
	base  string
	http  *http.Client
	store session.Store
	log   log.FieldLogger
}

// New creates a Client. The timeout applies to every request, refresh calls
// included; a timeout surfaces as an ordinary network failure.
func New(baseURL string, timeout time.Duration, store session.Store, logger log.FieldLogger) *Client {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		store: store,
		log:   logger,
	}
}

// Do sends the request and decodes a 2xx response body into out (skipped when
// out is nil). Failures are returned as *Error.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	return c.do(ctx, req, out, 0)
}

// do carries an explicit attempt counter instead of a mutable retry flag on
// the request; attempt is scoped to this call chain and never shared.
func (c *Client) do(ctx context.Context, req *Request, out any, attempt int) error {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return netError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return netError(err)
	}

	c.log.WithFields(log.Fields{
		"method":  req.Method,
		"path":    req.Path,
		"status":  resp.StatusCode,
		"attempt": attempt,
	}).Debug("api request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := sonic.Unmarshal(body, out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response body"}
		}
		return nil
	}

	failure := decodeFailure(resp.StatusCode, body)

	if resp.StatusCode == http.StatusUnauthorized && req.Path != loginPath && attempt == 0 {
		tok, terr := c.store.Token()
		if terr != nil || tok == nil || tok.RefreshToken == "" {
			// No refresh credential: propagate the original failure.
			return failure
		}
		if c.refresh(ctx, tok.RefreshToken) {
			return c.do(ctx, req, out, attempt+1)
		}
		// Session is unrecoverable; the refresh error itself is not the
		// signal the caller needs.
		if cerr := c.store.Clear(); cerr != nil {
			c.log.WithError(cerr).Warn("failed to clear session")
		}
		return failure
	}

	return failure
}

// refresh exchanges the refresh credential for a new access token and stores
// it. Returns false on any failure.
func (c *Client) refresh(ctx context.Context, refreshToken string) bool {
	payload, err := sonic.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return false
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+refreshPath, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithError(err).Debug("token refresh failed")
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithField("status", resp.StatusCode).Debug("token refresh rejected")
		return false
	}

	// The backend answers either {data:{access_token}} or a top-level
	// access_token.
	var rr struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
		AccessToken string `json:"access_token"`
	}
	if err := sonic.Unmarshal(body, &rr); err != nil {
		return false
	}
	access := rr.Data.AccessToken
	if access == "" {
		access = rr.AccessToken
	}
	if access == "" {
		return false
	}

	if err := c.store.SetAccessToken(access); err != nil {
		c.log.WithError(err).Warn("failed to store refreshed token")
		return false
	}
	c.log.Debug("access token refreshed")
	return true
}

// build assembles the http.Request, injecting the bearer credential for every
// path except login.
func (c *Client) build(ctx context.Context, req *Request) (*http.Request, error) {
	u := c.base + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := sonic.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: "unencodable request body"}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if req.Path != loginPath {
		tok, err := c.store.Token()
		if err == nil && tok != nil && tok.AccessToken != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		}
	}
	return httpReq, nil
}

// decodeFailure maps a non-2xx response to a typed *Error. The body is
// decoded against an explicit schema; anything else is kept as raw message.
func decodeFailure(status int, body []byte) *Error {
	e := &Error{Status: status}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 400 && status < 500:
		e.Kind = KindValidation
	default:
		e.Kind = KindServer
	}

	var payload struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return e
	}
	e.Message = payload.Message
	if e.Message == "" {
		e.Message = payload.Error
	}
	if len(payload.Errors) > 0 {
		e.Fields = make(map[string]string, len(payload.Errors))
		for field, msgs := range payload.Errors {
			if len(msgs) > 0 {
				e.Fields[field] = msgs[0]
			}
		}
	}
	return e
}

// netError wraps a transport-level failure.
func netError(err error) *Error {
	msg := "network error"
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Message: msg}
}
