package publishers

import "github.com/samvad-hq/nyc-schools/internal/domain"

func sampleEvent() Event {
	return NewEvent("nycopendata", domain.School{
		DBN:         "01M292",
		Name:        "Henry Street School",
		Address:     "220 Henry Street, Manhattan NY 10002",
		Latitude:    40.71376,
		Longitude:   -73.98526,
		PhoneNumber: "212-406-9411",
	}, &domain.SATScores{DBN: "01M292", NumOfTestTakers: 29, MathAvgScore: 404})
}
