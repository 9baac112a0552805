package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/tui"
)

const historyPageSize = 50

type historyLoadedMsg struct {
	rows []repository.Session
	err  error
}

type syncDoneMsg struct {
	res service.SyncResult
	err error
}

type reviewReadyMsg struct {
	err error
}

// History lists stored sessions newest first. Enter reopens a session's
// feedback, s pulls remote speeches, / jumps to search.
type History struct {
	deps    *Deps
	tbl     table.Model
	rows    []repository.Session
	spin    spinner.Model
	syncing bool
}

func NewHistory(deps *Deps) *History {
	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Topic", Width: 28},
			{Title: "Type", Width: 14},
			{Title: "Length", Width: 7},
			{Title: "Score", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#cba6f7"))
	styles.Selected = styles.Selected.Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#cba6f7"))
	tbl.SetStyles(styles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.AccentStyle

	return &History{deps: deps, tbl: tbl, spin: sp}
}

func (h *History) Title() string { return "History" }

func (h *History) Init() tea.Cmd { return h.load() }

func (h *History) load() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := deps.History.List(ctx, deps.Account.Get().ID, historyPageSize)
		return historyLoadedMsg{rows: rows, err: err}
	}
}

func (h *History) sync() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := deps.History.Sync(ctx, deps.Account.Get().ID)
		return syncDoneMsg{res: res, err: err}
	}
}

func (h *History) review() tea.Cmd {
	if len(h.rows) == 0 {
		return nil
	}
	idx := h.tbl.Cursor()
	if idx < 0 || idx >= len(h.rows) {
		return nil
	}
	deps := h.deps
	id := h.rows[idx].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return reviewReadyMsg{err: deps.Practice.Review(ctx, id)}
	}
}

func (h *History) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			h.deps.logger().Error("load history", zap.Error(msg.err))
			return tui.ErrorCmd(msg.err)
		}
		h.rows = msg.rows
		h.tbl.SetRows(h.tableRows())
		return nil

	case syncDoneMsg:
		h.syncing = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		status := fmt.Sprintf("Imported %d, skipped %d", msg.res.Imported, msg.res.Skipped)
		return tea.Batch(h.load(), tui.StatusCmd(status))

	case reviewReadyMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		return h.deps.push(tui.RouteFeedback)

	case spinner.TickMsg:
		if !h.syncing {
			return nil
		}
		var cmd tea.Cmd
		h.spin, cmd = h.spin.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return h.review()
		case "s":
			if h.syncing {
				return nil
			}
			h.syncing = true
			return tea.Batch(h.spin.Tick, h.sync())
		case "/":
			return h.deps.push(tui.RouteSearch)
		}
		var cmd tea.Cmd
		h.tbl, cmd = h.tbl.Update(msg)
		return cmd
	}
	return nil
}

func (h *History) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(h.rows))
	for _, s := range h.rows {
		score := "-"
		if s.Analysis != nil {
			score = fmt.Sprintf("%.1f", s.Analysis.OverallScore)
		}
		length := analysis.FormatClock(time.Duration(s.DurationSeconds * float64(time.Second)))
		rows = append(rows, table.Row{
			h.formatWhen(s.RecordedAt),
			s.Topic,
			s.SpeechType,
			length,
			score,
		})
	}
	return rows
}

// formatWhen renders a timestamp with the configured layout and zone.
func (h *History) formatWhen(t time.Time) string {
	layout := h.deps.Config.UI.DateFormat
	if layout == "" {
		layout = "02/01"
	}
	loc := time.Local
	if name := h.deps.Config.UI.Timezone; name != "" && name != "Local" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}
	return t.In(loc).Format(layout)
}

func (h *History) View(width, height int) string {
	if len(h.rows) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			tui.TitleStyle.Render("History"),
			"",
			tui.SubtitleStyle.Render("No sessions yet."),
			tui.SubtitleStyle.Render("Record one from the dashboard, or press s to pull your account."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	status := tui.HintStyle.Render("enter review    s sync    / search")
	if h.syncing {
		status = h.spin.View() + tui.SubtitleStyle.Render(" Pulling remote speeches...")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("History"),
		tui.SubtitleStyle.Render(fmt.Sprintf("%d sessions", len(h.rows))),
		"",
		h.tbl.View(),
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
