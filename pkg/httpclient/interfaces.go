package httpclient

import "context"

// Response is the status and body of a completed HTTP exchange.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues GET requests on behalf of the request pipeline.
// A nil Response with a nil error is treated by callers as an invalid response.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
