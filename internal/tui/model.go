// Package tui renders the sales dashboard in the terminal: period-bucketed
// totals, payment-source distribution, the weekly histogram and a searchable
// transaction log.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/refresh"
	"github.com/jolucode/fin-guard/internal/repository"
)

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding
	WeekMode   key.Binding
	MonthMode  key.Binding
	PrevPeriod key.Binding
	NextPeriod key.Binding
	Search     key.Binding
	CycleMatch key.Binding
	Escape     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		WeekMode:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		MonthMode:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
		PrevPeriod: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous period")),
		NextPeriod: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next period")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		CycleMatch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "search field")),
		Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search")),
	}
}

// Config wires the dashboard's dependencies.
type Config struct {
	Repository repository.NotificationRepository
	Bus        *refresh.Bus
	DeviceID   string
	Now        func() time.Time
}

// Model holds the dashboard state.
type Model struct {
	repo     repository.NotificationRepository
	bus      *refresh.Bus
	deviceID string
	now      func() time.Time

	refreshCh     <-chan refresh.Scope
	refreshCancel func()

	keymap    KeyMap
	search    textinput.Model
	searching bool

	logs       []model.NotificationLog
	filter     dashboard.FilterState
	aggregates dashboard.Aggregates
	errMsg     string
	loading    bool

	width    int
	height   int
	quitting bool
}

// NewModel creates the dashboard model.
func NewModel(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	search := textinput.New()
	search.Placeholder = "monto, dd/mm o remitente"
	search.CharLimit = 64
	search.Width = 32

	var (
		ch     <-chan refresh.Scope
		cancel func()
	)
	if cfg.Bus != nil {
		ch, cancel = cfg.Bus.Subscribe()
	}

	return Model{
		repo:          cfg.Repository,
		bus:           cfg.Bus,
		deviceID:      cfg.DeviceID,
		now:           cfg.Now,
		refreshCh:     ch,
		refreshCancel: cancel,
		keymap:        DefaultKeyMap(),
		search:        search,
		filter:        dashboard.NewFilterState(cfg.Now()),
		aggregates:    dashboard.Empty(),
		loading:       true,
	}
}

// Init starts the first fetch and the refresh-bus watch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadLogs()}
	if m.refreshCh != nil {
		cmds = append(cmds, m.waitForRefresh())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case logsLoadedMsg:
		m.loading = false
		m.errMsg = ""
		m.logs = msg.logs
		m.recompute()
		return m, nil

	case logsFailedMsg:
		m.loading = false
		m.errMsg = common.UserMessage(msg.err)
		m.logs = nil
		m.aggregates = dashboard.Empty()
		return m, nil

	case refreshMsg:
		var cmds []tea.Cmd
		if msg.scope.Matches(refresh.ScopeDashboard) {
			m.loading = true
			cmds = append(cmds, m.loadLogs())
		}
		cmds = append(cmds, m.waitForRefresh())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch {
		case key.Matches(msg, m.keymap.Escape):
			m.searching = false
			m.search.Blur()
			return m, nil
		case key.Matches(msg, m.keymap.CycleMatch):
			m.applyAction(dashboard.SetSearchFilter{Filter: nextSearchFilter(m.filter.Filter)})
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.applyAction(dashboard.SetSearchQuery{Query: m.search.Value()})
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		if m.refreshCancel != nil {
			m.refreshCancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Refresh):
		// Pull-to-refresh analog: other screens reload through the bus,
		// this one reloads directly.
		if m.bus != nil {
			m.bus.Publish(refresh.ScopeAll)
		}
		m.loading = true
		return m, m.loadLogs()
	case key.Matches(msg, m.keymap.WeekMode):
		m.applyAction(dashboard.SetFilterMode{Mode: dashboard.FilterWeek})
	case key.Matches(msg, m.keymap.MonthMode):
		m.applyAction(dashboard.SetFilterMode{Mode: dashboard.FilterMonth})
	case key.Matches(msg, m.keymap.PrevPeriod):
		m.applyAction(dashboard.PreviousPeriod{})
	case key.Matches(msg, m.keymap.NextPeriod):
		m.applyAction(dashboard.NextPeriod{})
	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		m.search.Focus()
	}
	return m, nil
}

// applyAction runs the filter reducer and recomputes the aggregates, the
// recompute-on-every-mutation contract.
func (m *Model) applyAction(action dashboard.Action) {
	m.filter = dashboard.Reduce(m.filter, action, m.now())
	m.recompute()
}

func (m *Model) recompute() {
	m.aggregates = dashboard.Compute(m.logs, m.filter, m.now())
}

func nextSearchFilter(f dashboard.SearchFilter) dashboard.SearchFilter {
	switch f {
	case dashboard.SearchAll:
		return dashboard.SearchAmount
	case dashboard.SearchAmount:
		return dashboard.SearchDate
	case dashboard.SearchDate:
		return dashboard.SearchSender
	default:
		return dashboard.SearchAll
	}
}

// Messages.

type logsLoadedMsg struct {
	logs []model.NotificationLog
}

type logsFailedMsg struct {
	err error
}

type refreshMsg struct {
	scope refresh.Scope
}

// loadLogs fetches the log on a background goroutine owned by bubbletea.
func (m Model) loadLogs() tea.Cmd {
	repo := m.repo
	deviceID := m.deviceID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logs, err := repo.GetNotificationLogs(ctx, deviceID)
		if err != nil {
			return logsFailedMsg{err: common.NewUserError("No se pudo conectar al servidor", err)}
		}
		return logsLoadedMsg{logs: logs}
	}
}

// waitForRefresh blocks on the bus subscription until the next tag.
func (m Model) waitForRefresh() tea.Cmd {
	ch := m.refreshCh
	return func() tea.Msg {
		scope, ok := <-ch
		if !ok {
			return nil
		}
		return refreshMsg{scope: scope}
	}
}
