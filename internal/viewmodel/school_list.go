package viewmodel

import (
	"context"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/pkg/network"
)

// SchoolListState is a snapshot of the list screen.
type SchoolListState struct {
	Status
	Schools []domain.School
}

// SchoolList loads the school directory for the list screen.
type SchoolList struct {
	requester network.Requester
	endpoint  network.Endpoint
	m         *machine[[]domain.School]
}

// NewSchoolList builds the list view model. Completions are delivered through d.
func NewSchoolList(r network.Requester, ep network.Endpoint, d Dispatcher, opts ...Option) *SchoolList {
	o := buildOptions(opts)
	return &SchoolList{
		requester: r,
		endpoint:  ep,
		m:         newMachine("school_list", d, o.log, cloneSchools),
	}
}

// FetchSchools starts a load. The returned channel is closed once its completion has
// been handled on the dispatcher, or dropped by a dispatcher that stopped.
func (vm *SchoolList) FetchSchools() <-chan struct{} {
	return vm.m.run(func(ctx context.Context) ([]domain.School, error) {
		return network.Fetch[[]domain.School](ctx, vm.requester, vm.endpoint)
	})
}

// State returns a copy of the current state.
func (vm *SchoolList) State() SchoolListState {
	st, schools := vm.m.snapshot()
	return SchoolListState{Status: st, Schools: schools}
}

// Observe registers fn to be called with a snapshot after every state change.
func (vm *SchoolList) Observe(fn func(SchoolListState)) {
	vm.m.observe(func(st Status, schools []domain.School) {
		fn(SchoolListState{Status: st, Schools: schools})
	})
}

// DismissError hides the alert; ErrorState is kept until the next successful load.
func (vm *SchoolList) DismissError() { vm.m.dismissError() }

// Close cancels in-flight work. Later completions and fetches are ignored.
func (vm *SchoolList) Close() { vm.m.close() }

func cloneSchools(in []domain.School) []domain.School {
	if in == nil {
		return nil
	}
	out := make([]domain.School, len(in))
	copy(out, in)
	return out
}
