package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"plexlex/internal/driver"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = map[string]lipgloss.Style{
		"done":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"loading": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"cache":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"lexing":  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
	// share of a file's work considered complete once it enters a stage
	stageWeight = map[driver.Stage]float64{
		driver.StageLoad:  0.1,
		driver.StageCache: 0.3,
		driver.StageLex:   0.5,
	}
)

const statusWidth = 8

type fileRow struct {
	path    string
	status  string
	stage   driver.Stage
	tokens  int
	elapsed time.Duration
}

type progressModel struct {
	title  string
	events <-chan driver.Event

	spin spinner.Model
	bar  progress.Model

	rows   []fileRow
	byPath map[string]int
	phase  string

	finished, failed, cached, tokens int

	width int
	done  bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel renders tokenizer progress for files, one row per file,
// followed by a bar for the whole run. The program quits once events is
// closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	m := &progressModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		rows:   make([]fileRow, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, path := range files {
		m.rows[i] = fileRow{path: path, status: "queued"}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for one event off the channel.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// applyEvent updates the row of ev.File, or the run phase for run-level
// events. Events for files outside the list are ignored.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	label := statusLabel(ev)
	if ev.File == "" {
		if label != "" {
			m.phase = label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok || label == "" {
		return nil
	}
	row := &m.rows[i]
	row.status = label
	row.stage = ev.Stage
	if ev.Final() {
		row.tokens = ev.Tokens
		row.elapsed = ev.Elapsed
		m.finished++
		m.tokens += ev.Tokens
		switch {
		case ev.Status == driver.StatusError:
			m.failed++
		case ev.Cached:
			m.cached++
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		switch row.status {
		case "done", "cached", "error":
			sum++
		default:
			sum += stageWeight[row.stage]
		}
	}
	return sum / float64(len(m.rows))
}

func statusLabel(ev driver.Event) string {
	switch ev.Status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusError:
		return "error"
	case driver.StatusDone:
		if ev.Cached {
			return "cached"
		}
		return "done"
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return "loading"
		case driver.StageCache:
			return "cache"
		case driver.StageLex:
			return "lexing"
		}
	}
	return ""
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spin.View() + " " + header
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d files, %d tokens, %d cached, %d errors",
		m.finished, len(m.rows), m.tokens, m.cached, m.failed)))
	b.WriteString("\n\n")

	pathWidth := max(m.width-statusWidth-24, 20)
	for _, row := range m.rows {
		status := runewidth.FillLeft(row.status, statusWidth)
		if st, ok := statusStyle[row.status]; ok {
			status = st.Render(status)
		}
		fmt.Fprintf(&b, "  %s %s", status, truncate(row.path, pathWidth))
		if row.tokens > 0 {
			b.WriteString(countStyle.Render(fmt.Sprintf("  %d tok %s", row.tokens, row.elapsed.Round(time.Microsecond))))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
