package viewmodel

import (
	"context"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/pkg/network"
)

// SchoolDetailsState is a snapshot of the detail screen. SATScores is nil until a
// matching record has been loaded.
type SchoolDetailsState struct {
	Status
	School    domain.School
	SATScores *domain.SATScores
}

// SchoolDetails loads the SAT scores of one school.
type SchoolDetails struct {
	school    domain.School
	requester network.Requester
	endpoint  network.Endpoint
	m         *machine[*domain.SATScores]
}

// NewSchoolDetails builds the detail view model for school.
func NewSchoolDetails(school domain.School, r network.Requester, ep network.Endpoint, d Dispatcher, opts ...Option) *SchoolDetails {
	o := buildOptions(opts)
	return &SchoolDetails{
		school:    school,
		requester: r,
		endpoint:  ep,
		m:         newMachine("school_details", d, o.log, cloneScores),
	}
}

// School returns the school this view model describes.
func (vm *SchoolDetails) School() domain.School { return vm.school }

// FetchSATScores loads every SAT record and keeps the first one whose DBN matches the
// school. No match leaves SATScores nil without raising an error. The returned channel
// closes like the one from SchoolList.FetchSchools.
func (vm *SchoolDetails) FetchSATScores() <-chan struct{} {
	return vm.m.run(func(ctx context.Context) (*domain.SATScores, error) {
		scores, err := network.Fetch[[]domain.SATScores](ctx, vm.requester, vm.endpoint)
		if err != nil {
			return nil, err
		}
		match, _ := domain.FindSATScores(scores, vm.school.DBN)
		return match, nil
	})
}

// State returns a copy of the current state.
func (vm *SchoolDetails) State() SchoolDetailsState {
	st, scores := vm.m.snapshot()
	return SchoolDetailsState{Status: st, School: vm.school, SATScores: scores}
}

// Observe registers fn to be called with a snapshot after every state change.
func (vm *SchoolDetails) Observe(fn func(SchoolDetailsState)) {
	vm.m.observe(func(st Status, scores *domain.SATScores) {
		fn(SchoolDetailsState{Status: st, School: vm.school, SATScores: scores})
	})
}

// DismissError hides the alert.
func (vm *SchoolDetails) DismissError() { vm.m.dismissError() }

// Close cancels in-flight work. Later completions and fetches are ignored.
func (vm *SchoolDetails) Close() { vm.m.close() }

func cloneScores(in *domain.SATScores) *domain.SATScores {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
