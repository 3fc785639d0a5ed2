package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// School is one record of the NYC high school directory. Identity is DBN.
type School struct {
	DBN               string  `json:"dbn"`
	Name              string  `json:"school_name"`
	OverviewParagraph string  `json:"overview_paragraph"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	PhoneNumber       string  `json:"phone_number"`
}

// ID returns the stable identifier used for list identity.
func (s School) ID() string { return s.DBN }

// schoolRecord is the wire shape of the school directory API.
type schoolRecord struct {
	DBN               string `json:"dbn"`
	Name              string `json:"school_name"`
	OverviewParagraph string `json:"overview_paragraph"`
	Location          string `json:"location"`
	PhoneNumber       string `json:"phone_number"`
}

// UnmarshalJSON decodes the API record, splitting the combined location field into
// address and coordinates.
func (s *School) UnmarshalJSON(data []byte) error {
	var rec schoolRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	dbn := strings.TrimSpace(rec.DBN)
	if dbn == "" {
		return fmt.Errorf("school record is missing dbn")
	}

	address, lat, long := ParseLocation(rec.Location)
	*s = School{
		DBN:               dbn,
		Name:              rec.Name,
		OverviewParagraph: rec.OverviewParagraph,
		Address:           address,
		Latitude:          lat,
		Longitude:         long,
		PhoneNumber:       rec.PhoneNumber,
	}
	return nil
}

// SATScores holds the average SAT results of one school.
type SATScores struct {
	DBN                     string `json:"dbn"`
	NumOfTestTakers         int    `json:"num_of_sat_test_takers"`
	CriticalReadingAvgScore int    `json:"sat_critical_reading_avg_score"`
	MathAvgScore            int    `json:"sat_math_avg_score"`
	WritingAvgScore         int    `json:"sat_writing_avg_score"`
}

// satScoresRecord accepts numbers either as JSON strings or JSON numbers.
type satScoresRecord struct {
	DBN                     string `json:"dbn"`
	NumOfTestTakers         any    `json:"num_of_sat_test_takers"`
	CriticalReadingAvgScore any    `json:"sat_critical_reading_avg_score"`
	MathAvgScore            any    `json:"sat_math_avg_score"`
	WritingAvgScore         any    `json:"sat_writing_avg_score"`
}

// UnmarshalJSON decodes the API record. Missing or non-numeric scores (the API reports
// suppressed values as "s") become 0 instead of failing the decode.
func (s *SATScores) UnmarshalJSON(data []byte) error {
	var rec satScoresRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	dbn := strings.TrimSpace(rec.DBN)
	if dbn == "" {
		return fmt.Errorf("sat scores record is missing dbn")
	}

	*s = SATScores{
		DBN:                     dbn,
		NumOfTestTakers:         lenientInt(rec.NumOfTestTakers),
		CriticalReadingAvgScore: lenientInt(rec.CriticalReadingAvgScore),
		MathAvgScore:            lenientInt(rec.MathAvgScore),
		WritingAvgScore:         lenientInt(rec.WritingAvgScore),
	}
	return nil
}

// lenientInt reads a score sent either as a base-10 string or as a JSON number.
// Anything else, including booleans and suppressed values like "s", is 0.
func lenientInt(v any) int {
	switch n := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	case float64, json.Number:
		i, err := cast.ToIntE(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
