package viewmodel

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/nyc-schools/pkg/network"
)

const schoolsJSON = `[
	{"dbn":"01M292","school_name":"Henry Street School","location":"220 Henry Street, Manhattan NY 10002 (40.71376, -73.98526)","phone_number":"212-406-9411"},
	{"dbn":"01M448","school_name":"University Neighborhood High School","location":"200 Monroe Street, Manhattan NY 10002 (40.71233, -73.98480)","phone_number":"212-962-4341"}
]`

const scoresJSON = `[
	{"dbn":"01M292","num_of_sat_test_takers":"29","sat_critical_reading_avg_score":"355","sat_math_avg_score":"404","sat_writing_avg_score":"363"},
	{"dbn":"01M448","num_of_sat_test_takers":"91","sat_critical_reading_avg_score":"383","sat_math_avg_score":"423","sat_writing_avg_score":"366"}
]`

// stubRequester answers every request with a fixed body or error.
type stubRequester struct {
	mu    sync.Mutex
	body  string
	err   error
	calls int
}

func (s *stubRequester) Request(_ context.Context, _ network.Endpoint, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	if err := json.Unmarshal([]byte(s.body), out); err != nil {
		return network.DecodingError(err)
	}
	return nil
}

func (s *stubRequester) set(body string, err error) {
	s.mu.Lock()
	s.body, s.err = body, err
	s.mu.Unlock()
}

func (s *stubRequester) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// gatedRequester parks every request until the test answers it.
type gatedRequester struct {
	calls chan *pendingCall
}

type pendingCall struct {
	out  any
	resp chan error
}

func newGatedRequester() *gatedRequester {
	return &gatedRequester{calls: make(chan *pendingCall, 8)}
}

func (g *gatedRequester) Request(ctx context.Context, _ network.Endpoint, out any) error {
	pc := &pendingCall{out: out, resp: make(chan error, 1)}
	g.calls <- pc
	select {
	case err := <-pc.resp:
		return err
	case <-ctx.Done():
		return network.TransportError(ctx.Err())
	}
}

func (g *gatedRequester) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case pc := <-g.calls:
		return pc
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for request")
		return nil
	}
}

func (pc *pendingCall) succeed(t *testing.T, body string) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), pc.out); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	pc.resp <- nil
}

func (pc *pendingCall) fail(err error) { pc.resp <- err }

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for completion")
	}
}

var testEndpoint = network.Endpoint{
	Method: network.MethodGet,
	Scheme: network.SchemeHTTPS,
	Host:   "data.cityofnewyork.us",
	Path:   "/resource/test.json",
}
