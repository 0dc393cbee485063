// Package dashboard is a terminal UI over the spec store. It follows
// the Elm architecture: the Model holds all state, Update reacts to
// messages, View renders. A filesystem watcher feeds change messages
// so the board stays current while specs are edited elsewhere.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HendryAvila/specdeck/internal/spec"
	"github.com/HendryAvila/specdeck/internal/store"
)

type viewState int

const (
	stateList viewState = iota
	stateDetail
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(1, 0, 0, 0)
	completedBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Render("done")
	openBadge      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Render("open")
)

// Messages.

type summariesMsg []store.Summary

type loadErrMsg struct{ err error }

type storeChangedMsg struct{}

// specItem adapts a store summary to the bubbles list.
type specItem struct {
	summary store.Summary
}

func (i specItem) Title() string {
	name := i.summary.Name
	if i.summary.Group != "" {
		name = i.summary.Group + "/" + name
	}
	return name
}

func (i specItem) Description() string {
	s := i.summary
	badge := openBadge
	if s.Status() == store.StatusCompleted {
		badge = completedBadge
	}
	return fmt.Sprintf("%s %3d%%  %d/%d tasks  %s  %s",
		taskBar(s.Checked, s.Total, 10), s.Percent(), s.Checked, s.Total,
		store.DisplayStamp(s.Stamp), badge)
}

func (i specItem) FilterValue() string { return i.summary.Name }

// taskRow is one visible line of the detail task tree.
type taskRow struct {
	node  *spec.TaskNode
	depth int
}

// Model is the dashboard state.
type Model struct {
	store  *store.Store
	events <-chan struct{}

	state     viewState
	specList  list.Model
	summaries []store.Summary

	detail    *store.Summary
	collapsed map[string]bool
	cursor    int
	vp        viewport.Model

	width  int
	height int
	ready  bool
	err    error
}

// NewModel builds the dashboard over an opened store. events delivers
// change notifications from a Watcher; it may be nil in tests.
func NewModel(s *store.Store, events <-chan struct{}) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "specdeck"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return Model{
		store:     s,
		events:    events,
		state:     stateList,
		specList:  l,
		collapsed: map[string]bool{},
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSummaries(m.store)}
	if m.events != nil {
		cmds = append(cmds, waitForChange(m.events))
	}
	return tea.Batch(cmds...)
}

func loadSummaries(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		summaries, err := s.LoadAll()
		if err != nil {
			return loadErrMsg{err: err}
		}
		return summariesMsg(summaries)
	}
}

func waitForChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.specList.SetSize(msg.Width, msg.Height-2)
		m.vp = viewport.New(msg.Width, max(1, msg.Height-5))
		m.ready = true
		if m.state == stateDetail {
			m.refreshDetailContent()
		}
		return m, nil

	case summariesMsg:
		m.summaries = msg
		m.err = nil
		items := make([]list.Item, len(msg))
		for i := range msg {
			items[i] = specItem{summary: msg[i]}
		}
		cmd := m.specList.SetItems(items)
		if m.detail != nil {
			m.reattachDetail()
		}
		return m, cmd

	case loadErrMsg:
		m.err = msg.err
		return m, nil

	case storeChangedMsg:
		return m, tea.Batch(loadSummaries(m.store), waitForChange(m.events))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.state == stateList {
		m.specList, cmd = m.specList.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filtering owns the keyboard while active.
	if m.state == stateList && m.specList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.specList, cmd = m.specList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.state == stateDetail {
			m.exitDetail()
			return m, nil
		}
		return m, tea.Quit
	case "esc":
		if m.state == stateDetail {
			m.exitDetail()
			return m, nil
		}
	case "r":
		return m, loadSummaries(m.store)
	case "enter":
		if m.state == stateList {
			if item, ok := m.specList.SelectedItem().(specItem); ok {
				m.enterDetail(item.summary)
			}
			return m, nil
		}
		m.toggleCollapse()
		return m, nil
	case " ":
		if m.state == stateDetail {
			m.toggleCollapse()
			return m, nil
		}
	case "up", "k":
		if m.state == stateDetail {
			m.moveCursor(-1)
			return m, nil
		}
	case "down", "j":
		if m.state == stateDetail {
			m.moveCursor(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateList:
		m.specList, cmd = m.specList.Update(msg)
	case stateDetail:
		m.vp, cmd = m.vp.Update(msg)
	}
	return m, cmd
}

func (m *Model) enterDetail(s store.Summary) {
	m.state = stateDetail
	m.detail = &s
	m.collapsed = map[string]bool{}
	m.cursor = 0
	m.refreshDetailContent()
}

func (m *Model) exitDetail() {
	m.state = stateList
	m.detail = nil
}

// reattachDetail repoints the open detail view at the reloaded
// summary, or falls back to the list when the spec is gone.
func (m *Model) reattachDetail() {
	for i := range m.summaries {
		s := m.summaries[i]
		if s.Name == m.detail.Name && s.Group == m.detail.Group {
			m.detail = &s
			rows := visibleTasks(s.Tasks, m.collapsed)
			if m.cursor >= len(rows) {
				m.cursor = max(0, len(rows)-1)
			}
			m.refreshDetailContent()
			return
		}
	}
	m.exitDetail()
}

func (m *Model) moveCursor(delta int) {
	rows := visibleTasks(m.detail.Tasks, m.collapsed)
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(rows) {
		m.cursor = max(0, len(rows)-1)
	}
	m.refreshDetailContent()
}

func (m *Model) toggleCollapse() {
	rows := visibleTasks(m.detail.Tasks, m.collapsed)
	if m.cursor >= len(rows) {
		return
	}
	n := rows[m.cursor].node
	if len(n.Children) == 0 {
		return
	}
	m.collapsed[n.ID] = !m.collapsed[n.ID]
	m.refreshDetailContent()
}

func (m *Model) refreshDetailContent() {
	if !m.ready || m.detail == nil {
		return
	}
	m.vp.SetContent(m.renderTaskTree())
	// Keep the cursor line on screen.
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("error: %v", m.err)) +
			footerStyle.Render("\nr reload · q quit")
	}

	switch m.state {
	case stateDetail:
		return m.viewDetail()
	default:
		return m.specList.View() +
			footerStyle.Render("\nenter open · r reload · q quit")
	}
}

func (m Model) viewDetail() string {
	s := m.detail
	var b strings.Builder

	name := s.Name
	if s.Group != "" {
		name = s.Group + "/" + name
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(s.Title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %d%% (%d/%d tasks)  %s",
		taskBar(s.Checked, s.Total, 10), s.Percent(), s.Checked, s.Total,
		store.DisplayStamp(s.Stamp))))
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString(footerStyle.Render(
		"\n↑/↓ move · space collapse · esc back · q quit"))
	return b.String()
}

func (m Model) renderTaskTree() string {
	rows := visibleTasks(m.detail.Tasks, m.collapsed)
	if len(rows) == 0 {
		return dimStyle.Render("no tasks in the implementation plan")
	}
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, renderTaskLine(row, i == m.cursor, m.collapsed[row.node.ID]))
	}
	return strings.Join(lines, "\n")
}

// visibleTasks flattens the tree depth-first, skipping the children of
// collapsed nodes.
func visibleTasks(nodes []*spec.TaskNode, collapsed map[string]bool) []taskRow {
	var rows []taskRow
	var walk func(nodes []*spec.TaskNode, depth int)
	walk = func(nodes []*spec.TaskNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, taskRow{node: n, depth: depth})
			if !collapsed[n.ID] {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(nodes, 0)
	return rows
}

func renderTaskLine(row taskRow, selected, collapsed bool) string {
	n := row.node

	mark := "[ ]"
	style := pendingStyle
	if len(n.Children) > 0 {
		checked, total := spec.Completion(n)
		mark = fmt.Sprintf("(%d/%d)", checked, total)
		if checked == total {
			style = checkedStyle
		}
	} else if n.Checked {
		mark = "[x]"
		style = checkedStyle
	}

	branch := "  "
	if len(n.Children) > 0 {
		branch = "▾ "
		if collapsed {
			branch = "▸ "
		}
	}

	line := fmt.Sprintf("%s%s%s %s: %s",
		strings.Repeat("  ", row.depth), branch, mark, n.ID, n.Description)
	if selected {
		return selectedStyle.Render("› " + line)
	}
	return style.Render("  " + line)
}

// taskBar renders a fixed-width completion bar. An empty plan counts
// as complete.
func taskBar(checked, total, width int) string {
	filled := width
	if total > 0 {
		filled = checked * width / total
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Run opens the store's dashboard and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, s *store.Store, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := NewWatcher(s.Root, logger)
	if err := w.Start(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(s, w.Events()),
		tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
