package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sigil/internal/demo"
)

type runModel struct {
	title   string
	events  <-chan demo.Event
	spinner spinner.Model
	prog    progress.Model
	items   []sampleItem
	index   map[string]int
	budget  uint64
	percent float64
	width   int
	done    bool
}

type sampleItem struct {
	name     string
	status   string
	consumed uint64
}

type eventMsg demo.Event
type doneMsg struct{}

// NewRunModel returns a Bubble Tea model that renders per-sample progress
// and a budget burn-down across the whole run.
func NewRunModel(title string, samples []string, budget uint64, events <-chan demo.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]sampleItem, 0, len(samples))
	index := make(map[string]int, len(samples))
	for i, name := range samples {
		items = append(items, sampleItem{name: name, status: "queued"})
		index[name] = i
	}
	return &runModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		budget:  budget,
		width:   80,
	}
}

func (m *runModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(demo.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *runModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	costWidth := 14
	nameWidth := m.width - statusWidth - costWidth - 6
	if nameWidth < 16 {
		nameWidth = 16
	}

	var total uint64
	for _, item := range m.items {
		total += item.consumed
		name := runewidth.FillRight(truncate(item.name, nameWidth), nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s %d/%d", statusStyled, name, item.consumed, m.budget))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(m.percent))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	b.WriteString(dim.Render(fmt.Sprintf("burned %d of %d units",
		total, m.budget*uint64(len(m.items)))))
	b.WriteString("\n")

	return b.String()
}

func (m *runModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *runModel) applyEvent(ev demo.Event) tea.Cmd {
	idx, ok := m.index[ev.Sample]
	if !ok {
		return nil
	}
	if label := statusLabel(ev); label != "" {
		m.items[idx].status = label
	}
	m.items[idx].consumed = ev.Consumed

	if m.budget == 0 {
		return nil
	}
	var total uint64
	for _, item := range m.items {
		total += item.consumed
	}
	pct := float64(total) / (float64(m.budget) * float64(len(m.items)))
	if pct > 1 {
		pct = 1
	}
	m.percent = pct
	return m.prog.SetPercent(pct)
}

func statusLabel(ev demo.Event) string {
	switch ev.Status {
	case demo.StatusQueued:
		return "queued"
	case demo.StatusDone:
		return "done"
	case demo.StatusError:
		return "error"
	case demo.StatusWorking:
		switch ev.Stage {
		case demo.StageInitialize:
			return "initializing"
		case demo.StageExecute:
			return "executing"
		}
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "initializing", "executing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
