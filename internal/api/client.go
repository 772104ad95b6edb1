// Package api holds the JSON clients for the remote storefront API. All
// protocol surface is plain JSON over HTTP defined by that API; the clients
// only add auth, request ids and failure accounting.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource yields the current auth token, empty when logged out.
// The session store satisfies this.
type TokenSource interface {
	Token() string
}

// HTTPError is a non-2xx response from the remote API.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: u.Host,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"host": name,
				"from": from.String(),
				"to":   to.String(),
			}).Warn("api breaker state changed")
		},
	})

	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:  tokens,
		breaker: breaker,
	}, nil
}

// do runs one request through the circuit breaker. Only transport failures
// count against the breaker; HTTP error statuses are the caller's business.
// Path segments are escaped individually (categories contain spaces).
func (c *Client) do(ctx context.Context, method string, segments []string, body io.Reader) (*http.Response, error) {
	u := c.baseURL.JoinPath(segments...)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func getJSON[T any](ctx context.Context, c *Client, segments ...string) (T, error) {
	var out T

	resp, err := c.do(ctx, http.MethodGet, segments, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

func postJSON[T any](ctx context.Context, c *Client, body any, segments ...string) (T, error) {
	var out T

	payload, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, segments, strings.NewReader(string(payload)))
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
