// Package ui provides the Bubble Tea terminal front end: a school list and a detail screen.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/internal/viewmodel"
)

// Connectivity is the reachability view shown in the header.
type Connectivity interface {
	IsReachable() bool
	IsReachableOnCellular() bool
}

// Options configures the UI.
type Options struct {
	Context context.Context
	// NewList builds the list view model on the given dispatcher.
	NewList func(viewmodel.Dispatcher) *viewmodel.SchoolList
	// NewDetails builds a detail view model for the selected school.
	NewDetails func(domain.School, viewmodel.Dispatcher) *viewmodel.SchoolDetails
	// Connectivity is optional; without it the header shows no status.
	Connectivity Connectivity
	PollTick     time.Duration
}

type screen int

const (
	screenList screen = iota
	screenDetails
)

type tickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	dispatch   viewmodel.Dispatcher
	list       *viewmodel.SchoolList
	newDetails func(domain.School, viewmodel.Dispatcher) *viewmodel.SchoolDetails
	details    *viewmodel.SchoolDetails
	reach      Connectivity
	pollTick   time.Duration

	screen   screen
	cursor   int
	width    int
	height   int
	keys     keyMap
	styles   styles
	spinner  spinner.Model
	viewport viewport.Model
}

// New builds the model. Completions of every view model it creates go through d.
func New(opts Options, d viewmodel.Dispatcher) (Model, error) {
	if opts.NewList == nil || opts.NewDetails == nil {
		return Model{}, errors.New("ui requires list and details view model factories")
	}
	if d == nil {
		d = viewmodel.Inline
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}

	st := defaultStyles()
	return Model{
		dispatch:   d,
		list:       opts.NewList(d),
		newDetails: opts.NewDetails,
		reach:      opts.Connectivity,
		pollTick:   pollTick,
		screen:     screenList,
		keys:       defaultKeyMap(),
		styles:     st,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.Title)),
		viewport:   viewport.New(80, 20),
	}, nil
}

// Init implements tea.Model. The list loads as soon as the program starts.
func (m Model) Init() tea.Cmd {
	m.list.FetchSchools()
	return tea.Batch(m.spinner.Tick, tickCmd(m.pollTick))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyMsg:
		msg()
		m.clampCursor()
		m.refreshDetails()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-8, 3)
		m.refreshDetails()
		return m, nil

	case tickMsg:
		return m, tickCmd(m.pollTick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshDetails()
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.closeDetails()
			m.list.Close()
			return m, tea.Quit
		}
		if m.screen == screenDetails {
			return m.handleDetailsKey(msg)
		}
		return m.handleListKey(msg), nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	st := m.list.State()

	if st.ShouldShowErrorState {
		switch {
		case key.Matches(msg, m.keys.Retry):
			m.list.DismissError()
			m.list.FetchSchools()
		case key.Matches(msg, m.keys.Dismiss):
			m.list.DismissError()
		}
		return m
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(st.Schools)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(st.Schools)-1, 0)
	case key.Matches(msg, m.keys.Retry):
		m.list.FetchSchools()
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(st.Schools) {
			m.openDetails(st.Schools[m.cursor])
		}
	}
	return m
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.details.State()

	if st.ShouldShowErrorState {
		if key.Matches(msg, m.keys.Dismiss) {
			m.details.DismissError()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Back) {
		m.closeDetails()
		m.screen = screenList
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) openDetails(school domain.School) {
	m.details = m.newDetails(school, m.dispatch)
	m.screen = screenDetails
	m.viewport.GotoTop()
	m.details.FetchSATScores()
	m.refreshDetails()
}

func (m *Model) closeDetails() {
	if m.details != nil {
		m.details.Close()
		m.details = nil
	}
}

func (m *Model) refreshDetails() {
	if m.screen != screenDetails || m.details == nil {
		return
	}
	m.viewport.SetContent(renderDetails(m.styles, m.details.State(), m.viewport.Width))
}

func (m *Model) clampCursor() {
	n := len(m.list.State().Schools)
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-8, 3)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.screen == screenDetails && m.details != nil {
		return m.renderDetailScreen(m.details.State())
	}
	return m.renderList(m.list.State())
}

// Run starts the program and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Context != nil {
		ctx = opts.Context
	}

	d := newProgramDispatcher()
	model, err := New(opts, d)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	d.attach(p)

	final, err := p.Run()
	d.stop()
	if fm, ok := final.(Model); ok {
		fm.closeDetails()
		fm.list.Close()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
