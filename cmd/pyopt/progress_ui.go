package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pyopt/internal/optimizer"
)

// progressModel is a Bubble Tea model rendering the live status of every
// unit the fixed-point driver is optimizing, adapted from the teacher's
// internal/ui/progress.go (which renders per-file build pipeline events)
// to render per-unit optimizer.ProgressEvents instead.
type progressModel struct {
	title   string
	events  <-chan optimizer.ProgressEvent
	spinner spinner.Model
	prog    progress.Model
	items   []unitItem
	index   map[string]int
	done    bool
	width   int
}

type unitItem struct {
	name   string
	status string
	stage  optimizer.Stage
}

type unitEventMsg optimizer.ProgressEvent
type unitsDoneMsg struct{}

// newProgressModel returns a Bubble Tea model tracking units by name; it
// reads ProgressEvents off events until the channel is closed.
func newProgressModel(title string, units []string, events <-chan optimizer.ProgressEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]unitItem, 0, len(units))
	index := make(map[string]int, len(units))
	for i, name := range units {
		items = append(items, unitItem{name: name, status: "queued"})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case unitEventMsg:
		ev := optimizer.ProgressEvent(msg)
		cmd := m.applyEvent(ev)
		return m, tea.Batch(cmd, m.listenForEvent())
	case unitsDoneMsg:
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

func (m *progressModel) View() string {
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
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncateName(item.name, nameWidth)
		statusStyled := styleUnitStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return unitsDoneMsg{}
		}
		return unitEventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev optimizer.ProgressEvent) tea.Cmd {
	idx, ok := m.index[ev.Unit]
	if !ok {
		return nil
	}
	if label := unitStatusLabel(ev.Stage, ev.Status); label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}

	total := 0.0
	for _, item := range m.items {
		if item.status == "done" || item.status == "error" {
			total += 1.0
		} else {
			total += progressFromStage(item.stage)
		}
	}
	pct := 0.0
	if len(m.items) > 0 {
		pct = total / float64(len(m.items))
	}
	return m.prog.SetPercent(pct)
}

func progressFromStage(stage optimizer.Stage) float64 {
	switch stage {
	case optimizer.StageFold:
		return 0.3
	case optimizer.StageNeeded:
		return 0.6
	case optimizer.StageDCE:
		return 0.85
	default:
		return 0.0
	}
}

func unitStatusLabel(stage optimizer.Stage, status optimizer.Status) string {
	switch status {
	case optimizer.StatusQueued:
		return "queued"
	case optimizer.StatusDone:
		return "done"
	case optimizer.StatusError:
		return "error"
	case optimizer.StatusWorking:
		return unitStageLabel(stage)
	default:
		return ""
	}
}

func unitStageLabel(stage optimizer.Stage) string {
	switch stage {
	case optimizer.StageFold:
		return "folding"
	case optimizer.StageNeeded:
		return "needed"
	case optimizer.StageDCE:
		return "dce"
	default:
		return "working"
	}
}

func styleUnitStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "folding", "needed", "dce":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncateName(value string, width int) string {
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
