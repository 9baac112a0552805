package screens

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/tui"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeNudge
	noticePraise
)

type notice struct {
	kind   noticeKind
	title  string
	detail string
}

// Notifications derives nudges from local stats. Nothing is pushed from
// the backend, every notice is recomputed on entry.
type Notifications struct {
	deps    *Deps
	stats   service.Stats
	loaded  bool
	notices []notice
	cursor  int
}

func NewNotifications(deps *Deps) *Notifications {
	return &Notifications{deps: deps}
}

func (n *Notifications) Title() string { return "Notifications" }

func (n *Notifications) Init() tea.Cmd { return loadStats(n.deps) }

func (n *Notifications) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		n.stats = msg.stats
		n.loaded = true
		n.notices = n.build()
		if n.cursor >= len(n.notices) {
			n.cursor = 0
		}
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if n.cursor > 0 {
				n.cursor--
			}
		case "down", "j":
			if n.cursor < len(n.notices)-1 {
				n.cursor++
			}
		}
	}
	return nil
}

func (n *Notifications) build() []notice {
	var out []notice
	goal := n.deps.Config.Practice.WeeklyGoal

	if n.stats.Totals.Sessions == 0 {
		out = append(out, notice{
			kind:   noticeNudge,
			title:  "Record your first session",
			detail: "Feedback and progress tracking start with one take.",
		})
		return out
	}

	if goal > 0 && n.stats.ThisWeek < goal {
		left := goal - n.stats.ThisWeek
		out = append(out, notice{
			kind:   noticeNudge,
			title:  fmt.Sprintf("%d session%s to go this week", left, plural(left)),
			detail: fmt.Sprintf("Weekly goal is %d, you have done %d.", goal, n.stats.ThisWeek),
		})
	} else if goal > 0 {
		out = append(out, notice{
			kind:   noticePraise,
			title:  "Weekly goal reached",
			detail: fmt.Sprintf("%d sessions this week. Raise the goal in settings?", n.stats.ThisWeek),
		})
	}

	if n.stats.Streak >= 2 {
		out = append(out, notice{
			kind:   noticePraise,
			title:  fmt.Sprintf("%d-day streak", n.stats.Streak),
			detail: "Practice today to keep it alive.",
		})
	}

	if idle := n.daysIdle(); idle > 7 {
		out = append(out, notice{
			kind:   noticeNudge,
			title:  fmt.Sprintf("%d days since your last session", idle),
			detail: "Short takes count. Two minutes resets the clock.",
		})
	}

	if n.deps.Config.Backend.Offline {
		out = append(out, notice{
			kind:   noticeInfo,
			title:  "Offline mode is on",
			detail: "Takes are scored locally until you reconnect.",
		})
	}

	if len(out) == 0 {
		out = append(out, notice{
			kind:   noticeInfo,
			title:  "All caught up",
			detail: "Nothing needs your attention.",
		})
	}
	return out
}

// daysIdle counts days since the most recent activity row. Zero when
// activity exists today or history is empty.
func (n *Notifications) daysIdle() int {
	if len(n.stats.Days) == 0 {
		return 0
	}
	last, err := time.Parse(time.DateOnly, n.stats.Days[len(n.stats.Days)-1].Day)
	if err != nil {
		return 0
	}
	return int(time.Now().UTC().Sub(last).Hours() / 24)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (n *Notifications) View(width, height int) string {
	lines := []string{tui.TitleStyle.Render("Notifications"), ""}
	if !n.loaded {
		lines = append(lines, tui.SubtitleStyle.Render("Checking..."))
	}
	for i, nt := range n.notices {
		marker := "  "
		if i == n.cursor {
			marker = tui.AccentStyle.Render("▸ ")
		}
		lines = append(lines, marker+n.badge(nt.kind)+" "+nt.title)
		lines = append(lines, "     "+tui.SubtitleStyle.Render(nt.detail))
		lines = append(lines, "")
	}
	lines = append(lines, tui.HintStyle.Render("j/k move    esc back"))
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (n *Notifications) badge(kind noticeKind) string {
	switch kind {
	case noticeNudge:
		return tui.WarnStyle.Render("●")
	case noticePraise:
		return tui.SuccessStyle.Render("●")
	default:
		return tui.SubtitleStyle.Render("●")
	}
}
