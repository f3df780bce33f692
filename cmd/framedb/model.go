package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bietkhonhungvandi212/frame-db/internal/storage/buffer"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

// Model drives the frame-table inspector: the navigation keys move the target
// page id, the help key toggles the help view, and each other key runs one
// buffer pool operation (most of them on the target page id). Every update
// re-renders the frame table.
type Model struct {
	pool     *buffer.Pool
	filePath string
	dumpPath string

	target   util.PageID
	opLog    []string
	logView  viewport.Model
	help     help.Model
	keys     keyMap
	width    int
	height   int
	showHelp bool
	lastErr  error
}

func NewModel(pool *buffer.Pool, filePath, dumpPath string) Model {
	vp := viewport.New(80, 8)
	vp.Style = logStyle

	return Model{
		pool:     pool,
		filePath: filePath,
		dumpPath: dumpPath,
		logView:  vp,
		help:     help.New(),
		keys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			// Drain dirty frames before the terminal goes away.
			if err := m.pool.Shutdown(); err != nil {
				m.record(fmt.Sprintf("shutdown: %v", err), err)
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.PrevPage):
			if m.target > 0 {
				m.target--
			}

		case key.Matches(msg, m.keys.NextPage):
			m.target++

		case key.Matches(msg, m.keys.Pin):
			_, err := m.pool.Pin(m.target)
			m.record(fmt.Sprintf("pin %d", m.target), err)

		case key.Matches(msg, m.keys.Unpin):
			err := m.pool.Unpin(&buffer.Handle{PageID: m.target})
			m.record(fmt.Sprintf("unpin %d", m.target), err)

		case key.Matches(msg, m.keys.Dirty):
			err := m.pool.MarkDirty(&buffer.Handle{PageID: m.target})
			m.record(fmt.Sprintf("mark dirty %d", m.target), err)

		case key.Matches(msg, m.keys.Force):
			err := m.pool.ForcePage(&buffer.Handle{PageID: m.target})
			m.record(fmt.Sprintf("force %d", m.target), err)

		case key.Matches(msg, m.keys.Flush):
			err := m.pool.ForceFlush()
			m.record("force flush", err)

		case key.Matches(msg, m.keys.Dump):
			err := m.dumpSnapshot()
			m.record(fmt.Sprintf("dump snapshot to %s", m.dumpPath), err)

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

func (m *Model) record(op string, err error) {
	m.lastErr = err
	line := op
	if err != nil {
		line = fmt.Sprintf("%s: %v", op, err)
	}
	m.opLog = append(m.opLog, line)
	m.logView.SetContent(strings.Join(m.opLog, "\n"))
	m.logView.GotoBottom()
}

func (m Model) dumpSnapshot() error {
	b, err := m.pool.Snapshot().Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(m.dumpPath, b, 0o644)
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("framedb inspector"))
	sections = append(sections, m.renderFrameTable())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.logView.View())

	if m.lastErr != nil {
		sections = append(sections, errorStyle.Render(m.lastErr.Error()))
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.help.ShortHelpView([]key.Binding{
			m.keys.Pin, m.keys.Unpin, m.keys.Dirty, m.keys.Flush, m.keys.Help, m.keys.Quit,
		}))
	}

	return strings.Join(sections, "\n")
}

func (m Model) renderFrameTable() string {
	contents := m.pool.FrameContents()
	dirty := m.pool.DirtyFlags()
	pins := m.pool.FixCounts()

	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-7s %-8s %-5s %-5s", "frame", "page", "pin", "dirty")))
	b.WriteString("\n")

	for i, pid := range contents {
		var row string
		if pid == util.NoPage {
			row = emptyFrameStyle.Render(fmt.Sprintf("%-7d %-8s %-5d %-5s", i, "-", pins[i], "-"))
		} else {
			flag := "no"
			if dirty[i] {
				flag = dirtyStyle.Render("yes")
			}
			line := fmt.Sprintf("%-7d %-8d %-5d %-5s", i, pid, pins[i], flag)
			if pid == m.target {
				row = selectedRowStyle.Render(line)
			} else {
				row = frameRowStyle.Render(line)
			}
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	left := statusBarStyle.Render(fmt.Sprintf("file %s", m.filePath))
	mid := statusBarStyle.Render(fmt.Sprintf("target page %d", m.target))
	right := statusBarStyle.Render(fmt.Sprintf("reads %d | writes %d", m.pool.NumReadIO(), m.pool.NumWriteIO()))
	return lipgloss.JoinHorizontal(lipgloss.Left, left, " ", mid, " ", right)
}

func (m Model) renderHelp() string {
	return helpStyle.Render(m.help.FullHelpView([][]key.Binding{
		{m.keys.PrevPage, m.keys.NextPage, m.keys.Pin, m.keys.Unpin, m.keys.Dirty},
		{m.keys.Force, m.keys.Flush, m.keys.Dump, m.keys.Help, m.keys.Quit},
	}))
}
