// Package httpgateway implements gateways.SubmissionGateway over HTTP: the
// draft is posted as JSON and the {"message": ...} body of the reply is
// surfaced on both success and failure.
package httpgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	orderdomain "github.com/ghuser/pizzaorder/services/order/domain"
	"github.com/ghuser/pizzaorder/services/order/domain/gateways"
	"github.com/ghuser/pizzaorder/services/order/domain/models"
)

const maxResponseBytes = 1 << 20 // 1 MB

// Client posts order drafts to a fixed endpoint. It never retries.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a Client for endpoint (e.g. http://localhost:9009/api/order).
// timeout bounds each request; zero means no client-side timeout.
func New(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageBody struct {
	Message string `json:"message"`
}

// SubmitOrder implements gateways.SubmissionGateway.
func (c *Client) SubmitOrder(ctx context.Context, d models.OrderDraft) (*models.Receipt, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", orderdomain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", orderdomain.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &gateways.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    decodeMessage(raw),
		}
	}

	// Any 2xx is an accepted order, even when the body carries no message.
	return &models.Receipt{Message: decodeMessage(raw)}, nil
}

// decodeMessage extracts {"message": ...} from a response body; anything else
// yields "".
func decodeMessage(raw []byte) string {
	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return plainText(body.Message)
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips any markup the endpoint put into a message. The policy
// escapes entities, so they are decoded again; templates escape on output.
func plainText(s string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// IsRejection reports whether err is a structured rejection from the endpoint.
func IsRejection(err error) bool {
	var rej *gateways.RejectionError
	return errors.As(err, &rej)
}
