package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/pkg/publishers"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/resource/s3k6-pzi2.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-App-Token") != "token" {
			t.Errorf("missing app token header")
		}
		fmt.Fprint(w, `[{"dbn":"01M292","school_name":"Henry Street School","location":"220 Henry Street (40.71376, -73.98526)"},{"dbn":"01M448","school_name":"University Neighborhood High School"}]`)
	})
	mux.HandleFunc("/resource/f9bf-2cp4.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"dbn":"01M292","num_of_sat_test_takers":"29","sat_math_avg_score":"404"}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type sink struct {
	mu     sync.Mutex
	events []publishers.Event
}

func newSinkServer(t *testing.T, s *sink) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.events = append(s.events, evt)
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiURL, sinkURL string) *config.Config {
	t.Helper()
	u, err := url.Parse(apiURL)
	if err != nil {
		t.Fatalf("parse api url: %v", err)
	}

	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := fmt.Sprintf("publishers:\n  - id: hook\n    type: http\n    http:\n      url: %s\n      timeout_seconds: 2\n", sinkURL)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	return &config.Config{
		AppName:              "nyc-schools-test",
		APIScheme:            "http",
		APIHost:              u.Host,
		APIToken:             "token",
		SchoolsPath:          "/resource/s3k6-pzi2.json",
		SATScoresPath:        "/resource/f9bf-2cp4.json",
		UserAgent:            "test",
		RequestTimeout:       2 * time.Second,
		RequestAttempts:      2,
		ReachabilityTarget:   u.Host,
		ReachabilityInterval: time.Minute,
		ReachabilityTimeout:  time.Second,
		ReachabilityWait:     2 * time.Second,
		PublishersFile:       path,
	}
}

func TestExporterRunOnce(t *testing.T) {
	api := newAPIServer(t)
	s := &sink{}
	hook := newSinkServer(t, s)

	exp, err := NewExporter(context.Background(), testConfig(t, api.URL, hook.URL), nil)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	summary, err := exp.Run(context.Background(), ExportOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Published != 2 || summary.WithScores != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) != 2 {
		t.Fatalf("expected 2 delivered events, got %d", len(s.events))
	}
	for _, evt := range s.events {
		if evt.Source != "nyc-schools-test" {
			t.Fatalf("unexpected source %q", evt.Source)
		}
		if evt.School.DBN == "01M292" && (evt.SATScores == nil || evt.SATScores.MathAvgScore != 404) {
			t.Fatalf("expected joined scores for 01M292, got %+v", evt.SATScores)
		}
	}
}

func TestExporterUnreachableAPI(t *testing.T) {
	api := newAPIServer(t)
	hook := newSinkServer(t, &sink{})
	cfg := testConfig(t, api.URL, hook.URL)

	// Nothing listens on the probe target, so requests are rejected before any I/O.
	ln := httptest.NewServer(http.NotFoundHandler())
	cfg.ReachabilityTarget = ln.Listener.Addr().String()
	ln.Close()

	exp, err := NewExporter(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if _, err := exp.Run(context.Background(), ExportOptions{}); err == nil {
		t.Fatalf("expected error when the API is unreachable")
	}
}

func TestNewExporterRequiresPublishers(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1", "http://127.0.0.1:2")
	raw := "publishers:\n  - id: hook\n    type: http\n    enabled: false\n    http:\n      url: http://127.0.0.1:2\n"
	if err := os.WriteFile(cfg.PublishersFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}
	if _, err := NewExporter(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error with no enabled publishers")
	}
	if _, err := NewExporter(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestExporterLoopStopsOnCancel(t *testing.T) {
	api := newAPIServer(t)
	s := &sink{}
	hook := newSinkServer(t, s)

	exp, err := NewExporter(context.Background(), testConfig(t, api.URL, hook.URL), nil)
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := exp.Run(ctx, ExportOptions{Interval: 100 * time.Millisecond}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) < 2 {
		t.Fatalf("expected at least one pass delivered, got %d events", len(s.events))
	}
}
