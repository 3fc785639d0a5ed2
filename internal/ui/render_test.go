package ui

import (
	"strings"
	"testing"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/internal/viewmodel"
)

func TestMapsLink(t *testing.T) {
	if got := mapsLink(40.71376, -73.98526); got != "maps://?saddr=&daddr=40.71376,-73.98526" {
		t.Fatalf("mapsLink = %q", got)
	}
	if got := mapsLink(0, 0); got != "maps://?saddr=&daddr=0,0" {
		t.Fatalf("mapsLink zero = %q", got)
	}
}

func TestPhoneLink(t *testing.T) {
	if got := phoneLink(" 212-406 9411 "); got != "tel:212-4069411" {
		t.Fatalf("phoneLink = %q", got)
	}
	if got := phoneLink("  "); got != "" {
		t.Fatalf("phoneLink blank = %q, want empty", got)
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		name                  string
		total, cursor, height int
		start, end            int
	}{
		{"fits", 5, 2, 10, 0, 5},
		{"top", 100, 0, 10, 0, 10},
		{"middle", 100, 50, 10, 45, 55},
		{"bottom", 100, 99, 10, 90, 100},
		{"no height", 100, 10, 0, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := visibleRange(tc.total, tc.cursor, tc.height)
			if start != tc.start || end != tc.end {
				t.Fatalf("visibleRange = (%d, %d), want (%d, %d)", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestRenderDetailsScores(t *testing.T) {
	school := domain.School{
		DBN:               "01M292",
		Name:              "Henry Street School",
		OverviewParagraph: "Small school.",
		Address:           "220 Henry Street",
		Latitude:          40.71376,
		Longitude:         -73.98526,
		PhoneNumber:       "212-406-9411",
	}
	s := defaultStyles()

	unavailable := renderDetails(s, viewmodel.SchoolDetailsState{School: school}, 0)
	for _, want := range []string{"Henry Street School", "220 Henry Street", "maps://?saddr=&daddr=40.71376,-73.98526", "tel:212-406-9411", "Small school.", "Unavailable"} {
		if !strings.Contains(unavailable, want) {
			t.Fatalf("expected %q in:\n%s", want, unavailable)
		}
	}

	loading := renderDetails(s, viewmodel.SchoolDetailsState{Status: viewmodel.Status{IsFetchingData: true}, School: school}, 0)
	if !strings.Contains(loading, "Loading...") {
		t.Fatalf("expected loading marker in:\n%s", loading)
	}

	scores := &domain.SATScores{DBN: "01M292", NumOfTestTakers: 29, CriticalReadingAvgScore: 355, MathAvgScore: 404, WritingAvgScore: 363}
	loaded := renderDetails(s, viewmodel.SchoolDetailsState{School: school, SATScores: scores}, 0)
	for _, want := range []string{"404", "355", "363", "29"} {
		if !strings.Contains(loaded, want) {
			t.Fatalf("expected %q in:\n%s", want, loaded)
		}
	}
	if strings.Contains(loaded, "Unavailable") {
		t.Fatalf("did not expect unavailable marker with scores")
	}
}

func TestRenderDetailsWithoutPhone(t *testing.T) {
	out := renderDetails(defaultStyles(), viewmodel.SchoolDetailsState{School: domain.School{DBN: "X"}}, 40)
	if !strings.Contains(out, "No phone number") {
		t.Fatalf("expected missing phone marker in:\n%s", out)
	}
}
