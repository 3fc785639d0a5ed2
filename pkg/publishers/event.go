package publishers

import (
	"time"

	"github.com/samvad-hq/nyc-schools/internal/domain"
)

// Event is one school joined with its SAT results, if the dataset has any.
type Event struct {
	Source      string            `json:"source"`
	School      domain.School     `json:"school"`
	SATScores   *domain.SATScores `json:"sat_scores,omitempty"`
	CollectedAt time.Time         `json:"collected_at"`
}

// NewEvent stamps an event for school with the current UTC time.
func NewEvent(source string, school domain.School, scores *domain.SATScores) Event {
	return Event{
		Source:      source,
		School:      school,
		SATScores:   scores,
		CollectedAt: time.Now().UTC(),
	}
}

// DBN is the school identifier carried as a message attribute by queue sinks.
func (e Event) DBN() string { return e.School.DBN }
