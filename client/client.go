// Package client calls the timetable API over HTTP and turns every failure into an *Error.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/timetable/core"
)

const (
	// RequestTimeout bounds every request, including reading the response body.
	RequestTimeout = 30 * time.Second

	fallbackMessage = "An error occurred while fetching the data."
)

// Error is returned for any failed request. Status is 0 when no response was received.
type Error struct {
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Path, e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	rest    *rest.Client
	logger  core.Logger
}

type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client. Its timeout is kept at RequestTimeout at most.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Timeout == 0 || hc.Timeout > RequestTimeout {
			hc.Timeout = RequestTimeout
		}
		c.rest = &rest.Client{HTTPClient: hc}
	}
}

func New(baseURL string, logger core.Logger, opts ...Option) *Client {
	vala.BeginValidation().Validate(
		vala.StringNotEmpty(baseURL, "baseURL"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rest:    &rest.Client{HTTPClient: &http.Client{Timeout: RequestTimeout}},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch GETs path and decodes the JSON response into out, when out is not nil.
func (c *Client) Fetch(ctx context.Context, path string, out interface{}) error {
	return c.Send(ctx, http.MethodGet, path, nil, out)
}

// Send sends body, JSON encoded when not nil, to path and decodes the JSON response into out.
// Requests are not retried.
func (c *Client) Send(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req := rest.Request{
		Method:  rest.Method(method),
		BaseURL: c.baseURL + path,
		Headers: map[string]string{"Accept": "application/json"},
	}
	if c.token != "" {
		req.Headers["Authorization"] = "Bearer " + c.token
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		req.Body = data
		req.Headers["Content-Type"] = "application/json"
	}

	res, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return c.fail(path, 0, err.Error())
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		msg := serverMessage(res.Body)
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return c.fail(path, res.StatusCode, msg)
	}

	if out == nil || res.StatusCode == http.StatusNoContent || res.Body == "" {
		return nil
	}
	if err = json.Unmarshal([]byte(res.Body), out); err != nil {
		return c.fail(path, res.StatusCode, err.Error())
	}
	return nil
}

// fail logs and returns the request's error. An empty msg falls back to a generic message.
func (c *Client) fail(path string, status int, msg string) *Error {
	if msg == "" {
		msg = fallbackMessage
	}
	err := &Error{Path: path, Status: status, Message: msg}
	c.logger.Error(fmt.Sprintf("fetch failed: %s", err), map[string]interface{}{
		"path":    path,
		"status":  status,
		"message": msg,
	})
	return err
}

// serverMessage reads the "error" then "message" field of a JSON error body.
func serverMessage(body string) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	for _, v := range []interface{}{payload.Error, payload.Message} {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
