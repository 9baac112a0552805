package screens

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/service"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

// Progress charts the last week of practice against the weekly goal.
type Progress struct {
	deps  *Deps
	goal  progress.Model
	stats service.Stats
}

func NewProgress(deps *Deps) *Progress {
	bar := progress.New(progress.WithDefaultGradient())
	return &Progress{deps: deps, goal: bar}
}

func (p *Progress) Title() string { return "Progress" }

func (p *Progress) Init() tea.Cmd { return loadStats(p.deps) }

func (p *Progress) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		p.stats = msg.stats
	}
	return nil
}

func (p *Progress) View(width, height int) string {
	goal := p.deps.Config.Practice.WeeklyGoal
	if goal <= 0 {
		goal = 1
	}
	ratio := float64(p.stats.ThisWeek) / float64(goal)
	if ratio > 1 {
		ratio = 1
	}
	p.goal.Width = maxInt(20, width/2)

	chart := widgets.BarChart{
		Title:  "Last 7 days",
		Points: p.weekPoints(),
		Unit:   "sessions",
	}

	facts := []string{
		factLine("This week", fmt.Sprintf("%d of %d sessions", p.stats.ThisWeek, goal)),
		factLine("Streak", fmt.Sprintf("%d days", p.stats.Streak)),
		factLine("Lifetime", fmt.Sprintf("%d sessions", p.stats.Totals.Sessions)),
		factLine("Best score", fmt.Sprintf("%.1f", p.stats.Totals.BestScore)),
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("Progress"),
		"",
		tui.SubtitleStyle.Render("Weekly goal"),
		p.goal.ViewAs(ratio),
		"",
		chart.Render(maxInt(36, width/2), 9),
		"",
		lipgloss.JoinVertical(lipgloss.Left, facts...),
		"",
		widgets.Meter{Label: "Average score", Score: p.stats.Totals.AverageScore, Color: tui.ScoreColor(p.stats.Totals.AverageScore)}.Render(maxInt(40, width/2), 1),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// weekPoints expands the sparse activity rows into a dense 7-day window
// ending today.
func (p *Progress) weekPoints() []widgets.BarPoint {
	byDay := make(map[string]int, len(p.stats.Days))
	for _, d := range p.stats.Days {
		byDay[d.Day] = d.Sessions
	}
	now := time.Now().UTC()
	points := make([]widgets.BarPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		points = append(points, widgets.BarPoint{
			Label: day.Format("Mon"),
			Value: float64(byDay[day.Format(time.DateOnly)]),
		})
	}
	return points
}
