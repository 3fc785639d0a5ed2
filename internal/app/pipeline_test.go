package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/nyc-schools/internal/config"
)

func TestPipelineStartWaitsForFirstUpdate(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewPipeline(&config.Config{
		APIScheme:            "http",
		APIHost:              srv.Listener.Addr().String(),
		RequestTimeout:       time.Second,
		RequestAttempts:      1,
		ReachabilityTarget:   srv.Listener.Addr().String(),
		ReachabilityInterval: time.Minute,
		ReachabilityTimeout:  time.Second,
		ReachabilityWait:     2 * time.Second,
	})
	p.Start(context.Background())
	defer p.Stop()

	if !p.Monitor.IsReachable() {
		t.Fatalf("expected reachable after start")
	}
	if got := p.Catalog.SchoolsEndpoint().Host; got != srv.Listener.Addr().String() {
		t.Fatalf("unexpected catalog host %q", got)
	}
}

func TestBrowserOptionsBuildViewModels(t *testing.T) {
	b, err := NewBrowser(&config.Config{
		APIScheme:            "https",
		APIHost:              "data.cityofnewyork.us",
		RequestTimeout:       time.Second,
		RequestAttempts:      1,
		ReachabilityTarget:   "data.cityofnewyork.us:443",
		ReachabilityInterval: time.Minute,
		ReachabilityTimeout:  time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	opts := b.Options()
	if opts.NewList == nil || opts.NewDetails == nil || opts.Connectivity == nil {
		t.Fatalf("expected complete ui options")
	}
	if _, err := NewBrowser(nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestBrowserListWritesTable(t *testing.T) {
	api := newAPIServer(t)
	b, err := NewBrowser(testConfig(t, api.URL, "http://127.0.0.1:1"), nil)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}

	var buf bytes.Buffer
	if err := b.List(context.Background(), &buf); err != nil {
		t.Fatalf("List: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"DBN", "01M292", "Henry Street School", "University Neighborhood High School"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBrowserListReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL, "http://127.0.0.1:1")
	b, err := NewBrowser(cfg, nil)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}

	err = b.List(context.Background(), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "Update the app") {
		t.Fatalf("expected update-app failure, got %v", err)
	}
}
