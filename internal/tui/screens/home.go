package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

var homeTabs = [3]string{"Dashboard", "History", "Profile"}

var homeMenu = []struct {
	label  string
	detail string
	route  string
}{
	{"Practice a speech", "record and analyze a new take", tui.RouteRecording},
	{"Search sessions", "find a past topic", tui.RouteSearch},
	{"Progress", "weekly goal and trend", tui.RouteProgress},
	{"Notifications", "goal and streak notes", tui.RouteNotifications},
	{"Settings", "defaults, backend, data", tui.RouteSettings},
	{"Upgrade", "plans and billing", tui.RoutePayment},
}

// Home is the dashboard. The selected tab is transient local state:
// it starts at 0 on every fresh instance and selecting the history or
// profile tab fires exactly one push, after which the highlight snaps
// back to the dashboard so returning from the pushed screen never
// re-navigates.
type Home struct {
	deps        *Deps
	tab         int
	cursor      int
	stats       service.Stats
	statsLoaded bool
	goal        progress.Model
}

func NewHome(deps *Deps) *Home {
	p := progress.New(progress.WithDefaultGradient())
	return &Home{deps: deps, goal: p}
}

func (h *Home) Title() string { return "Home" }

func (h *Home) Init() tea.Cmd {
	return loadStats(h.deps)
}

func (h *Home) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		h.stats = msg.stats
		h.statsLoaded = true
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			return h.selectTab((h.tab + len(homeTabs) - 1) % len(homeTabs))
		case "right":
			return h.selectTab((h.tab + 1) % len(homeTabs))
		case "1", "2", "3":
			idx, _ := strconv.Atoi(msg.String())
			return h.selectTab(idx - 1)
		case "j", "down":
			if h.cursor < len(homeMenu)-1 {
				h.cursor++
			}
		case "k", "up":
			if h.cursor > 0 {
				h.cursor--
			}
		case "enter":
			return h.deps.push(homeMenu[h.cursor].route)
		case "r":
			return h.deps.push(tui.RouteRecording)
		}
	}
	return nil
}

// selectTab applies the dashboard tab contract: tab 1 pushes the
// history route, tab 2 the profile route, tab 0 only moves the
// highlight. The highlight snaps back to 0 after a navigation so the
// selection is never sticky.
func (h *Home) selectTab(idx int) tea.Cmd {
	h.tab = idx
	switch idx {
	case 1:
		h.tab = 0
		return h.deps.push(tui.RouteHistory)
	case 2:
		h.tab = 0
		return h.deps.push(tui.RouteProfile)
	default:
		return nil
	}
}

func (h *Home) View(width, height int) string {
	account := h.deps.Account.Get()
	greeting := "Good to see you"
	if name := account.FirstName(); name != "" {
		greeting = "Good to see you, " + name
	}

	var b strings.Builder
	b.WriteString(h.renderTabs() + "\n\n")
	b.WriteString(tui.TitleStyle.Render(greeting) + "\n\n")
	b.WriteString(h.renderStats(width) + "\n")
	b.WriteString(h.renderGoal(width) + "\n\n")
	b.WriteString(h.renderMenu())
	return b.String()
}

func (h *Home) renderTabs() string {
	parts := make([]string, 0, len(homeTabs))
	for i, name := range homeTabs {
		if i == h.tab {
			parts = append(parts, tui.AccentStyle.Bold(true).Underline(true).Render(name))
		} else {
			parts = append(parts, tui.SubtitleStyle.Render(name))
		}
	}
	return strings.Join(parts, "   ")
}

func (h *Home) renderStats(width int) string {
	sessions, week, streak, best := "-", "-", "-", "-"
	if h.statsLoaded {
		sessions = strconv.Itoa(h.stats.Totals.Sessions)
		week = fmt.Sprintf("%d / %d", h.stats.ThisWeek, h.deps.Config.Practice.WeeklyGoal)
		streak = strconv.Itoa(h.stats.Streak) + "d"
		best = fmt.Sprintf("%.0f", h.stats.Totals.BestScore)
	}
	row := widgets.HStack{
		Items: []widgets.Widget{
			widgets.Panel{Title: "Sessions", Content: tui.ValueStyle.Render(sessions)},
			widgets.Panel{Title: "This week", Content: tui.ValueStyle.Render(week)},
			widgets.Panel{Title: "Streak", Content: tui.ValueStyle.Render(streak)},
			widgets.Panel{Title: "Best score", Content: tui.ValueStyle.Render(best)},
		},
		Gap: 1,
	}
	return row.Render(width, 3)
}

func (h *Home) renderGoal(width int) string {
	goal := h.deps.Config.Practice.WeeklyGoal
	if goal <= 0 || !h.statsLoaded {
		return ""
	}
	ratio := float64(h.stats.ThisWeek) / float64(goal)
	if ratio > 1 {
		ratio = 1
	}
	h.goal.Width = maxInt(10, width-24)
	return tui.LabelStyle.Render("Weekly goal  ") + h.goal.ViewAs(ratio)
}

func (h *Home) renderMenu() string {
	lines := make([]string, 0, len(homeMenu))
	for i, item := range homeMenu {
		marker := "  "
		label := tui.ValueStyle.Render(item.label)
		if i == h.cursor {
			marker = tui.AccentStyle.Render("▸ ")
			label = tui.AccentStyle.Bold(true).Render(item.label)
		}
		lines = append(lines, marker+label+tui.SubtitleStyle.Render("  "+item.detail))
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
