package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/tui"
)

type searchDoneMsg struct {
	rows []repository.Session
	err  error
}

// Search filters history by topic. Substring matches rank first, then
// near-miss topics by edit distance. Tab moves between the query box
// and the result list.
type Search struct {
	deps     *Deps
	query    textinput.Model
	rows     []repository.Session
	cursor   int
	picking  bool // result list focused
	searched bool
}

func NewSearch(deps *Deps) *Search {
	q := newField("topic contains...", false)
	q.Focus()
	return &Search{deps: deps, query: q}
}

func (s *Search) Title() string { return "Search" }

func (s *Search) Init() tea.Cmd { return textinput.Blink }

func (s *Search) run() tea.Cmd {
	deps := s.deps
	query := s.query.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := deps.History.Search(ctx, deps.Account.Get().ID, query)
		return searchDoneMsg{rows: rows, err: err}
	}
}

func (s *Search) open() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	deps := s.deps
	id := s.rows[s.cursor].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return reviewReadyMsg{err: deps.Practice.Review(ctx, id)}
	}
}

func (s *Search) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		s.rows = msg.rows
		s.cursor = 0
		s.searched = true
		if len(s.rows) > 0 {
			s.focusResults()
		}
		return nil

	case reviewReadyMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		return s.deps.push(tui.RouteFeedback)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.picking {
				s.focusQuery()
			} else if len(s.rows) > 0 {
				s.focusResults()
			}
			return nil
		case "enter":
			if s.picking {
				return s.open()
			}
			return s.run()
		}
		if s.picking {
			switch msg.String() {
			case "up", "k":
				if s.cursor > 0 {
					s.cursor--
				}
			case "down", "j":
				if s.cursor < len(s.rows)-1 {
					s.cursor++
				}
			default:
				// typing resumes editing the query
				s.focusQuery()
				var cmd tea.Cmd
				s.query, cmd = s.query.Update(msg)
				return cmd
			}
			return nil
		}
		var cmd tea.Cmd
		s.query, cmd = s.query.Update(msg)
		return cmd
	}
	return nil
}

func (s *Search) focusResults() {
	s.picking = true
	s.query.Blur()
}

func (s *Search) focusQuery() {
	s.picking = false
	s.query.Focus()
}

func (s *Search) View(width, height int) string {
	lines := []string{
		tui.TitleStyle.Render("Search sessions"),
		"",
		s.query.View(),
		"",
	}

	switch {
	case !s.searched:
		lines = append(lines, tui.SubtitleStyle.Render("Type a few letters of the topic and press enter."))
	case len(s.rows) == 0:
		lines = append(lines, tui.SubtitleStyle.Render("No matches for "+strings.TrimSpace(s.query.Value())+"."))
	default:
		shown := len(s.rows)
		if shown > 8 {
			shown = 8
		}
		for i := 0; i < shown; i++ {
			lines = append(lines, s.resultLine(i))
		}
		if len(s.rows) > shown {
			lines = append(lines, tui.SubtitleStyle.Render(fmt.Sprintf("  ... and %d more", len(s.rows)-shown)))
		}
	}

	lines = append(lines, "", tui.HintStyle.Render("enter search    tab results    enter open"))
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Search) resultLine(i int) string {
	row := s.rows[i]
	score := "-"
	if row.Analysis != nil {
		score = fmt.Sprintf("%.1f", row.Analysis.OverallScore)
	}
	line := fmt.Sprintf("%s  %-30s %s", row.RecordedAt.Format("02/01"), truncateTopic(row.Topic, 30), score)
	if s.picking && i == s.cursor {
		return tui.AccentStyle.Render("▸ " + line)
	}
	return "  " + line
}

func truncateTopic(topic string, limit int) string {
	if len(topic) <= limit {
		return topic
	}
	return topic[:limit-3] + "..."
}
