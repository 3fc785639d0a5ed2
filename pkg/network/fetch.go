package network

import "context"

// Fetch performs a request and decodes the payload as T.
func Fetch[T any](ctx context.Context, r Requester, ep Endpoint) (T, error) {
	var out T
	if err := r.Request(ctx, ep, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Result carries the outcome of an asynchronous fetch.
type Result[T any] struct {
	Value T
	Err   error
}

// FetchAsync runs Fetch on its own goroutine. The returned channel receives exactly one
// Result and is then closed.
func FetchAsync[T any](ctx context.Context, r Requester, ep Endpoint) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := Fetch[T](ctx, r, ep)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}
