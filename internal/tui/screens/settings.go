package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/config"
	"github.com/speaksharp/speaksharp/internal/tui"
	"github.com/speaksharp/speaksharp/internal/tui/widgets"
)

type maintenanceDoneMsg struct {
	err error
}

type settingKind int

const (
	settingText settingKind = iota
	settingToggle
	settingChoice
)

// settingRow binds one list row to a config field. Text rows open an
// inline editor, toggles and choices flip on enter.
type settingRow struct {
	label   string
	kind    settingKind
	choices []string
	get     func(*config.Config) string
	set     func(*config.Config, string) error
}

func settingsRows() []settingRow {
	setString := func(dst func(*config.Config) *string) func(*config.Config, string) error {
		return func(cfg *config.Config, v string) error {
			*dst(cfg) = strings.TrimSpace(v)
			return nil
		}
	}
	return []settingRow{
		{
			label: "Backend URL",
			get:   func(cfg *config.Config) string { return cfg.Backend.BaseURL },
			set:   setString(func(cfg *config.Config) *string { return &cfg.Backend.BaseURL }),
		},
		{
			label: "Offline mode",
			kind:  settingToggle,
			get: func(cfg *config.Config) string {
				if cfg.Backend.Offline {
					return "on"
				}
				return "off"
			},
		},
		{
			label:   "Voice profile",
			kind:    settingChoice,
			choices: []string{"female", "male", "unspecified"},
			get: func(cfg *config.Config) string {
				if cfg.Backend.Gender == "" {
					return "unspecified"
				}
				return cfg.Backend.Gender
			},
			set: func(cfg *config.Config, v string) error {
				if v == "unspecified" {
					v = ""
				}
				cfg.Backend.Gender = v
				return nil
			},
		},
		{
			label: "Speech type",
			get:   func(cfg *config.Config) string { return cfg.Practice.SpeechType },
			set:   setString(func(cfg *config.Config) *string { return &cfg.Practice.SpeechType }),
		},
		{
			label: "Target length",
			get:   func(cfg *config.Config) string { return cfg.Practice.Duration },
			set:   setString(func(cfg *config.Config) *string { return &cfg.Practice.Duration }),
		},
		{
			label: "Weekly goal",
			get:   func(cfg *config.Config) string { return strconv.Itoa(cfg.Practice.WeeklyGoal) },
			set: func(cfg *config.Config, v string) error {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 1 {
					return fmt.Errorf("weekly goal must be a positive number")
				}
				cfg.Practice.WeeklyGoal = n
				return nil
			},
		},
		{
			label: "Date format",
			get:   func(cfg *config.Config) string { return cfg.UI.DateFormat },
			set:   setString(func(cfg *config.Config) *string { return &cfg.UI.DateFormat }),
		},
		{
			label: "Timezone",
			get:   func(cfg *config.Config) string { return cfg.UI.Timezone },
			set:   setString(func(cfg *config.Config) *string { return &cfg.UI.Timezone }),
		},
		{
			label: "Takes folder",
			get:   func(cfg *config.Config) string { return cfg.Audio.TakePath },
			set:   setString(func(cfg *config.Config) *string { return &cfg.Audio.TakePath }),
		},
		{
			label: "Transcripts folder",
			get:   func(cfg *config.Config) string { return cfg.Audio.TranscriptPath },
			set:   setString(func(cfg *config.Config) *string { return &cfg.Audio.TranscriptPath }),
		},
	}
}

// Settings edits the on-disk configuration in place. Nothing touches the
// file until w writes it.
type Settings struct {
	deps       *Deps
	rows       []settingRow
	cursor     int
	editing    bool
	input      textinput.Model
	dirty      bool
	confirming bool // reset popup shown
	resetting  bool
}

func NewSettings(deps *Deps) *Settings {
	return &Settings{deps: deps, rows: settingsRows()}
}

func (s *Settings) Title() string { return "Settings" }

func (s *Settings) Init() tea.Cmd { return nil }

func (s *Settings) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case maintenanceDoneMsg:
		s.resetting = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		return tui.StatusCmd("Local data cleared")

	case tea.KeyMsg:
		if s.confirming {
			return s.updateConfirm(msg)
		}
		if s.editing {
			return s.updateEditor(msg)
		}
		return s.updateList(msg)
	}
	return nil
}

func (s *Settings) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		s.confirming = false
		s.resetting = true
		return s.reset()
	case "n":
		s.confirming = false
	}
	return nil
}

func (s *Settings) updateEditor(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		row := s.rows[s.cursor]
		if err := row.set(s.deps.Config, s.input.Value()); err != nil {
			return tui.ErrorCmd(err)
		}
		s.editing = false
		s.dirty = true
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *Settings) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "enter":
		return s.activate()
	case "w":
		if err := config.Save(*s.deps.Config); err != nil {
			s.deps.logger().Error("write config", zap.Error(err))
			return tui.ErrorCmd(err)
		}
		s.dirty = false
		return tui.StatusCmd("Configuration saved")
	case "R":
		if !s.resetting {
			s.confirming = true
		}
	}
	return nil
}

func (s *Settings) activate() tea.Cmd {
	row := s.rows[s.cursor]
	switch row.kind {
	case settingToggle:
		s.deps.Config.Backend.Offline = !s.deps.Config.Backend.Offline
		s.dirty = true
	case settingChoice:
		next := nextChoice(row.choices, row.get(s.deps.Config))
		if err := row.set(s.deps.Config, next); err != nil {
			return tui.ErrorCmd(err)
		}
		s.dirty = true
	default:
		s.input = newField("", false)
		s.input.SetValue(row.get(s.deps.Config))
		s.input.CursorEnd()
		s.input.Focus()
		s.editing = true
		return textinput.Blink
	}
	return nil
}

func nextChoice(choices []string, current string) string {
	for i, c := range choices {
		if c == current {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func (s *Settings) reset() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return maintenanceDoneMsg{err: deps.Maintenance.Reset(ctx)}
	}
}

func (s *Settings) View(width, height int) string {
	lines := []string{tui.TitleStyle.Render("Settings"), ""}
	for i, row := range s.rows {
		value := row.get(s.deps.Config)
		if s.editing && i == s.cursor {
			value = s.input.View()
		}
		line := fmt.Sprintf("%-20s %s", row.label, value)
		if i == s.cursor && !s.editing {
			line = tui.AccentStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	switch {
	case s.resetting:
		lines = append(lines, tui.SubtitleStyle.Render("Clearing local data..."))
	case s.dirty:
		lines = append(lines, tui.WarnStyle.Render("Unsaved changes"))
	default:
		lines = append(lines, tui.SubtitleStyle.Render("Saved"))
	}
	lines = append(lines, tui.HintStyle.Render("enter edit    w write    R erase local data"))

	base := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
	if !s.confirming {
		return base
	}
	card := lipgloss.JoinVertical(lipgloss.Center,
		tui.TitleStyle.Render("Erase all local data?"),
		"",
		"Sessions and analyses are deleted.",
		"Your account and speech types stay.",
		"",
		tui.HintStyle.Render("y erase    n keep"),
	)
	return widgets.RenderPopup(base, card, width, height)
}
