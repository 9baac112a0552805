package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Screen is the collaborator contract every routed screen implements.
// Screens are constructed fresh on every push and mutate themselves via
// pointer receivers; the host never inspects their internals.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	Title() string
}

// Disposer is an optional hook run when a screen is popped.
type Disposer interface {
	Dispose()
}

// Model is the navigation host: it owns the frame (header, status bar,
// body, footer), interprets the global quit/back keys, and hands every
// other message to the visible screen.
type Model struct {
	router    *Router
	keys      *KeyRegistry
	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool
}

func NewModel(router *Router, keys *KeyRegistry) Model {
	return Model{
		router: router,
		keys:   keys,
		status: "Ready",
		width:  100,
		height: 32,
	}
}

func (m Model) Init() tea.Cmd {
	return m.router.takeInit()
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case tea.KeyMsg:
		route := m.router.CurrentRoute()
		if m.keys.IsAction(msg, "quit", route) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.keys.IsAction(msg, "back", route) {
			if err := m.router.Pop(); err != nil {
				// back at the floor is a quiet no-op
				if !errors.Is(err, ErrStackFloor) {
					m.SetError(err)
				}
				return m, nil
			}
			m.SetStatus("Ready")
			return m, nil
		}
	}

	cmd := m.router.Top().Update(msg)
	if init := m.router.takeInit(); init != nil {
		cmd = tea.Batch(cmd, init)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := renderHeader(m)
	status := renderStatusBar(m)
	footer := renderFooter(m)
	available := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if available < 0 {
		available = 0
	}
	var body string
	if available > 0 {
		body = m.router.Top().View(maxInt(1, m.width-2), available)
	}
	body = fitHeight(body, available)
	main := strings.TrimSuffix(strings.Join([]string{header, status, body}, "\n"), "\n")
	main = fitHeight(main, lipgloss.Height(header)+lipgloss.Height(status)+available)
	view := strings.Join([]string{main, footer}, "\n")
	view = fitHeight(view, maxInt(1, m.height))
	return appStyle.Width(maxInt(1, m.width)).MaxWidth(maxInt(1, m.width)).Render(view)
}

// renderHeader shows the app name and the navigation trail.
func renderHeader(m Model) string {
	left := headerAppStyle.Render("Speak Sharp")
	titles := m.router.Titles()
	crumbs := make([]string, 0, len(titles))
	for i, t := range titles {
		if i == len(titles)-1 {
			crumbs = append(crumbs, crumbTopStyle.Render(t))
		} else {
			crumbs = append(crumbs, crumbStyle.Render(t))
		}
	}
	right := strings.Join(crumbs, crumbStyle.Render(" > "))
	right = ansi.Truncate(right, maxInt(1, m.width), "")
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderBar(headerBarStyle, maxInt(1, m.width), left+strings.Repeat(" ", gap)+right, colorMantle)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
