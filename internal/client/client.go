// Package client is a typed Go client for the fitlog REST API.
package client

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

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *Session
}

// New returns a client for the API at baseURL. A nil httpClient gets a traced default one.
func New(baseURL string, session *Session, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if session == nil {
		session = &Session{}
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		session:    session,
	}, nil
}

func (c *Client) Session() *Session {
	return c.session
}

// do sends the request and decodes a 2xx body into out. Non 2xx responses become *APIError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, authenticated bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u, err := c.baseURL.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := c.session.Token()
		if token == "" {
			return ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debugf("client: close body: %s", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}

	var envelope struct {
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
		Status  int            `json:"status"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Code == "" {
		// plain text errors, e.g. from the rate limiter
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = envelope.Code
	apiErr.Message = envelope.Error
	apiErr.Details = envelope.Details
	if envelope.Status != 0 {
		apiErr.Status = envelope.Status
	}
	return apiErr
}
