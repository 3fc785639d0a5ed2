package domain

import (
	"encoding/json"
	"testing"
)

func TestSchoolUnmarshalSplitsLocation(t *testing.T) {
	raw := `[{
		"dbn": "21K728",
		"school_name": "Liberation Diploma Plus High School",
		"overview_paragraph": "The mission of Liberation Diploma Plus High School is to...",
		"location": "2865 West 19th Street, Brooklyn, NY 11224 (40.576976, -73.985413)",
		"phone_number": "718-946-6812",
		"borough": "BROOKLYN"
	}]`

	var schools []School
	if err := json.Unmarshal([]byte(raw), &schools); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(schools) != 1 {
		t.Fatalf("expected 1 school, got %d", len(schools))
	}
	s := schools[0]
	if s.ID() != "21K728" || s.Name != "Liberation Diploma Plus High School" {
		t.Fatalf("unexpected identity: %+v", s)
	}
	if s.Address != "2865 West 19th Street, Brooklyn, NY 11224" {
		t.Fatalf("unexpected address %q", s.Address)
	}
	if s.Latitude != 40.576976 || s.Longitude != -73.985413 {
		t.Fatalf("unexpected coordinates %v,%v", s.Latitude, s.Longitude)
	}
	if s.PhoneNumber != "718-946-6812" {
		t.Fatalf("unexpected phone %q", s.PhoneNumber)
	}
}

func TestSchoolUnmarshalMissingFields(t *testing.T) {
	var s School
	if err := json.Unmarshal([]byte(`{"dbn":"02M260"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Name != "" || s.Address != "" || s.Latitude != 0 || s.Longitude != 0 {
		t.Fatalf("expected zero values, got %+v", s)
	}
}

func TestSchoolUnmarshalRequiresDBN(t *testing.T) {
	for _, raw := range []string{`{"school_name":"x"}`, `{"dbn":"  "}`} {
		var s School
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}

func TestSATScoresUnmarshalLenientNumbers(t *testing.T) {
	raw := `[
		{"dbn":"01M292","school_name":"HENRY STREET","num_of_sat_test_takers":"29","sat_critical_reading_avg_score":"355","sat_math_avg_score":"404","sat_writing_avg_score":"363"},
		{"dbn":"01M448","num_of_sat_test_takers":"s","sat_critical_reading_avg_score":"s","sat_math_avg_score":"s","sat_writing_avg_score":"s"},
		{"dbn":"01M450","num_of_sat_test_takers":70,"sat_math_avg_score":" 423 "},
		{"dbn":"01M458","num_of_sat_test_takers":"012","sat_critical_reading_avg_score":"0x1F","sat_math_avg_score":"1_000","sat_writing_avg_score":true},
		{"dbn":"01M460","num_of_sat_test_takers":"0b11","sat_math_avg_score":450.0,"sat_writing_avg_score":null}
	]`

	var scores []SATScores
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(scores) != 5 {
		t.Fatalf("expected 5 records, got %d", len(scores))
	}

	want := []SATScores{
		{DBN: "01M292", NumOfTestTakers: 29, CriticalReadingAvgScore: 355, MathAvgScore: 404, WritingAvgScore: 363},
		{DBN: "01M448"},
		{DBN: "01M450", NumOfTestTakers: 70, MathAvgScore: 423},
		{DBN: "01M458", NumOfTestTakers: 12},
		{DBN: "01M460", MathAvgScore: 450},
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], scores[i])
		}
	}
}

func TestSATScoresUnmarshalRequiresDBN(t *testing.T) {
	var s SATScores
	if err := json.Unmarshal([]byte(`{"sat_math_avg_score":"400"}`), &s); err == nil {
		t.Fatalf("expected error for missing dbn")
	}
}

func TestFindSATScores(t *testing.T) {
	scores := []SATScores{{DBN: "A", MathAvgScore: 1}, {DBN: "B", MathAvgScore: 2}, {DBN: "B", MathAvgScore: 3}}

	got, ok := FindSATScores(scores, "B")
	if !ok || got.MathAvgScore != 2 {
		t.Fatalf("expected first B match, got %+v ok=%v", got, ok)
	}
	got.MathAvgScore = 99
	if scores[1].MathAvgScore != 2 {
		t.Fatalf("expected a copy, slice was modified")
	}

	if _, ok := FindSATScores(scores, "C"); ok {
		t.Fatalf("expected no match for C")
	}

	idx := IndexSATScores(scores)
	if len(idx) != 2 || idx["B"].MathAvgScore != 2 {
		t.Fatalf("unexpected index %+v", idx)
	}
}
