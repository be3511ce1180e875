// Package api implements the HTTP clients for the task tracker's two
// endpoint collaborators: the auth endpoint and the task endpoint. Both
// share one Credential, one base URL, and one error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config carries the settings shared by both endpoint clients.
type Config struct {
	// BaseURL is the API root including the /api base path.
	BaseURL string

	// Timeout bounds each HTTP call. Zero means 30 seconds.
	Timeout time.Duration

	// Logger receives one event per request outcome.
	Logger zerolog.Logger
}

// errorBody is the structured error payload the server attaches to
// non-2xx responses.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Error   string `json:"error"`
}

// client is the shared HTTP core: JSON codec, bearer authentication from
// the Credential, request IDs, and mapping of non-2xx responses to
// APIError.
type client struct {
	baseURL    string
	cred       *Credential
	httpClient *http.Client
	log        zerolog.Logger
}

func newClient(cfg Config, cred *Credential) *client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cred:       cred,
		httpClient: &http.Client{Timeout: timeout},
		log:        cfg.Logger,
	}
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// post performs an HTTP POST request with an optional JSON body.
func (c *client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// put performs an HTTP PUT request with a JSON body.
func (c *client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// delete performs an HTTP DELETE request.
func (c *client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do is the core HTTP method that builds the request, attaches the
// bearer credential, and maps error responses.
func (c *client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
	result interface{},
) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.cred.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).
			Msg("request failed")
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	c.log.Debug().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(method, path, resp.StatusCode, respBody)
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// errorFromResponse converts a non-2xx response into an APIError. The
// server's {message} body wins; otherwise a generic HTTP message is used.
func (c *client) errorFromResponse(method, path string, status int, body []byte) error {
	msg := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		msg = eb.Message
	}

	c.log.Warn().Str("method", method).Str("path", path).
		Int("status", status).Str("message", msg).Msg("api error")

	return &APIError{
		Message:   msg,
		Status:    status,
		Timestamp: time.Now(),
	}
}
