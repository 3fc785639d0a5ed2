package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/samvad-hq/nyc-schools/pkg/httpclient"
)

// Requester performs a request against an endpoint and decodes the payload into out,
// which must be a non-nil pointer. Failures are *Error values.
type Requester interface {
	Request(ctx context.Context, ep Endpoint, out any) error
}

var _ Requester = (*Client)(nil)

const defaultAttempts = 2

// Client is the request pipeline: URL build, reachability gate, GET, status check, decode.
// The whole sequence is attempted up to `attempts` times without delay.
type Client struct {
	transport httpclient.Client
	reach     Reachability
	log       Logger
	attempts  int
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithLogger sets the networking logger.
func WithLogger(log Logger) ClientOption {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// WithAttempts sets the total number of attempts per request (first try included).
func WithAttempts(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// NewClient builds a pipeline over transport. A nil reach skips the reachability gate.
func NewClient(transport httpclient.Client, reach Reachability, opts ...ClientOption) *Client {
	c := &Client{
		transport: transport,
		reach:     reach,
		log:       noopLogger{},
		attempts:  defaultAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request implements Requester.
func (c *Client) Request(ctx context.Context, ep Endpoint, out any) error {
	target := reflect.ValueOf(out)
	if !target.IsValid() || target.Kind() != reflect.Pointer || target.IsNil() {
		return InvalidRequestError(fmt.Sprintf("decode target must be a non-nil pointer, got %T", out))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		err = c.requestOnce(ctx, ep, target)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == c.attempts {
			break
		}
		c.log.WarnObj("retrying request", "request_retry", map[string]any{
			"endpoint": ep.describe(),
			"attempt":  attempt,
			"error":    err.Error(),
			"kind":     KindOf(err).String(),
		})
	}
	return err
}

func (c *Client) requestOnce(ctx context.Context, ep Endpoint, target reflect.Value) error {
	u, err := ep.URL()
	if err != nil {
		msg := fmt.Sprintf("building URL with scheme %q host %q path %q failed: %v", ep.Scheme, ep.Host, ep.Path, err)
		c.log.ErrorObj("request build failed", "request_error", map[string]any{
			"endpoint": ep.describe(),
			"error":    msg,
		})
		return InvalidRequestError(msg)
	}
	reqURL := u.String()

	if c.reach != nil && !c.reach.IsReachable() {
		c.log.ErrorObj("request failed: network unreachable", "request_error", map[string]any{
			"url": reqURL,
		})
		return ErrNotReachable
	}

	c.log.InfoObj("request started", "request", map[string]any{"url": reqURL, "method": http.MethodGet})

	resp, err := c.transport.Get(ctx, reqURL, ep.Headers)
	if err != nil {
		c.log.ErrorObj("request transport failed", "request_error", map[string]any{
			"url":   reqURL,
			"error": err.Error(),
		})
		return TransportError(err)
	}
	if resp == nil {
		c.log.ErrorObj("request returned no response", "request_error", map[string]any{"url": reqURL})
		return ErrInvalidResponse
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.log.InfoObj("response received", "response", map[string]any{
		"url":    reqURL,
		"status": status,
		"bytes":  len(body),
	})

	if status < 200 || status >= 300 {
		if err := c.checkStatus(reqURL, status, body, target.Type().Elem()); err != nil {
			return err
		}
	}

	decoded := reflect.New(target.Type().Elem())
	if err := json.Unmarshal(body, decoded.Interface()); err != nil {
		c.log.ErrorObj("response decode failed", "request_error", map[string]any{
			"url":   reqURL,
			"error": err.Error(),
		})
		return DecodingError(err)
	}
	target.Elem().Set(decoded.Elem())
	return nil
}

// checkStatus handles non-2xx responses. Only 400 is classified; other statuses fall
// through to the regular decode.
func (c *Client) checkStatus(reqURL string, status int, body []byte, typ reflect.Type) error {
	apiErr := reflect.New(typ)
	payload := ""
	if err := json.Unmarshal(body, apiErr.Interface()); err == nil {
		payload = fmt.Sprintf("%+v", apiErr.Elem().Interface())
	} else {
		payload = bodySnippet(body)
	}

	if status == http.StatusBadRequest {
		c.log.ErrorObj("request rejected by server", "request_error", map[string]any{
			"url":     reqURL,
			"status":  status,
			"payload": payload,
		})
		return InvalidRequestError(payload)
	}

	c.log.WarnObj("unexpected response status; decoding anyway", "response_status", map[string]any{
		"url":     reqURL,
		"status":  status,
		"payload": payload,
	})
	return nil
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
