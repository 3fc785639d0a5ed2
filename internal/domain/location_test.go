package domain

import (
	"testing"

	"github.com/samvad-hq/nyc-schools/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLocation(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		address string
		lat     float64
		long    float64
	}{
		{
			name:    "valid",
			in:      "10th Street, Brooklyn, NY, 11224 (50.3221, -72.44442)",
			address: "10th Street, Brooklyn, NY, 11224",
			lat:     50.3221,
			long:    -72.44442,
		},
		{
			name:    "bad latitude",
			in:      "10th Street, Brooklyn, NY, 11224 (50.32dd21, -72.44442)",
			address: "10th Street, Brooklyn, NY, 11224",
		},
		{
			name:    "no coordinates",
			in:      "10th Street, Brooklyn, NY, 11224",
			address: "10th Street, Brooklyn, NY, 11224",
		},
		{
			name:    "missing comma",
			in:      "1 Main St (40.1 -73.2)",
			address: "1 Main St",
		},
		{
			name: "empty",
			in:   "",
		},
		{
			name:    "empty coordinate segment",
			in:      "A ()(1, 2)",
			address: "A",
		},
		{
			name:    "underscore digits",
			in:      "A (1_0, 2)",
			address: "A",
		},
		{
			name:    "leading parenthesis",
			in:      "(40.5, -73.9)",
			address: "",
			lat:     40.5,
			long:    -73.9,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			address, lat, long := ParseLocation(tc.in)
			if address != tc.address || lat != tc.lat || long != tc.long {
				t.Fatalf("ParseLocation(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tc.in, address, lat, long, tc.address, tc.lat, tc.long)
			}
		})
	}
}

func TestParseLocationLogsWarningOnFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.S
	logger.S = zap.New(core).Sugar()
	defer func() { logger.S = prev }()

	ParseLocation("10th Street (50.32dd21, -72.44442)")
	ParseLocation("10th Street (50.3221, -72.44442)")

	entries := logs.FilterLevelExact(zap.WarnLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if entries[0].LoggerName != logger.CategoryBusinessLogic {
		t.Fatalf("expected %s category, got %q", logger.CategoryBusinessLogic, entries[0].LoggerName)
	}
}
