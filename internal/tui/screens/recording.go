package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/database/repository"
	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
)

type typesLoadedMsg struct {
	types []repository.SpeechType
	err   error
}

type recordingStartedMsg struct{ err error }

type takeStoppedMsg struct {
	practice state.Practice
	err      error
}

type recordTickMsg struct{}

// Recording is the take screen: a setup form (topic and speech type)
// that flips into the live clock once recording starts.
type Recording struct {
	deps      *Deps
	topic     textinput.Model
	types     []repository.SpeechType
	typeIdx   int
	recording bool
	starting  bool
}

func NewRecording(deps *Deps) *Recording {
	ti := textinput.New()
	ti.Placeholder = "What are you speaking about?"
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = 44
	ti.Focus()
	return &Recording{deps: deps, topic: ti}
}

func (r *Recording) Title() string { return "Practice" }

func (r *Recording) Init() tea.Cmd {
	types := r.deps.Types
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		list, err := types.List(ctx)
		return typesLoadedMsg{types: list, err: err}
	})
}

func (r *Recording) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case typesLoadedMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		r.types = msg.types
		for i, st := range r.types {
			if st.Name == r.deps.Config.Practice.SpeechType {
				r.typeIdx = i
			}
		}
		return nil
	case recordingStartedMsg:
		r.starting = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		r.recording = true
		return tea.Batch(tui.StatusCmd("Recording"), r.tick())
	case recordTickMsg:
		if !r.recording {
			return nil
		}
		return r.tick()
	case takeStoppedMsg:
		r.recording = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		if cmd := r.deps.push(tui.RoutePlayback); cmd != nil {
			return cmd
		}
		return tui.StatusCmd("Take saved, " + analysis.FormatClock(msg.practice.Elapsed))
	case tea.KeyMsg:
		if r.starting {
			return nil
		}
		if r.recording {
			if msg.String() == " " {
				return r.stop()
			}
			return nil
		}
		switch msg.String() {
		case "enter":
			return r.start()
		case "left", "ctrl+p":
			if len(r.types) > 0 {
				r.typeIdx = (r.typeIdx + len(r.types) - 1) % len(r.types)
			}
			return nil
		case "right", "ctrl+n":
			if len(r.types) > 0 {
				r.typeIdx = (r.typeIdx + 1) % len(r.types)
			}
			return nil
		}
		var cmd tea.Cmd
		r.topic, cmd = r.topic.Update(msg)
		return cmd
	}
	return nil
}

func (r *Recording) start() tea.Cmd {
	topic := strings.TrimSpace(r.topic.Value())
	speechType := r.currentType().Name
	r.starting = true
	practice := r.deps.Practice
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := practice.Begin(ctx, topic, speechType); err != nil {
			return recordingStartedMsg{err: err}
		}
		if err := practice.StartRecording(ctx); err != nil {
			return recordingStartedMsg{err: err}
		}
		return recordingStartedMsg{}
	}
}

func (r *Recording) stop() tea.Cmd {
	practice := r.deps.Practice
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		p, err := practice.StopRecording(ctx)
		return takeStoppedMsg{practice: p, err: err}
	}
}

func (r *Recording) tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return recordTickMsg{} })
}

// Dispose abandons an in-flight take when the screen is popped mid
// recording.
func (r *Recording) Dispose() {
	if !r.recording {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.deps.Practice.Retake(ctx); err != nil {
		r.deps.logger().Warn("abandon take", zap.Error(err))
	}
}

func (r *Recording) currentType() repository.SpeechType {
	if len(r.types) == 0 {
		return repository.SpeechType{Name: r.deps.Config.Practice.SpeechType}
	}
	return r.types[r.typeIdx]
}

func (r *Recording) View(width, height int) string {
	if r.recording {
		return r.liveView(width, height)
	}
	st := r.currentType()
	expected := st.ExpectedRange()
	if expected == "" {
		expected = r.deps.Config.Practice.Duration + " minutes"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("New practice session"),
		"",
		tui.LabelStyle.Render("Topic"),
		r.topic.View(),
		"",
		tui.LabelStyle.Render("Speech type"),
		tui.AccentStyle.Render("◂ ")+tui.ValueStyle.Render(st.Name)+tui.AccentStyle.Render(" ▸")+
			tui.SubtitleStyle.Render("  "+expected),
		"",
		tui.HintStyle.Render("enter start recording    left/right change type"),
	)
	if r.starting {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", tui.AccentStyle.Render("Starting..."))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (r *Recording) liveView(width, height int) string {
	p := r.deps.Session.Get()
	clock := analysis.FormatClock(r.deps.Practice.Elapsed())
	typeLine := p.SpeechType
	if p.ExpectedDuration != "" {
		typeLine += "  target " + p.ExpectedDuration
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		tui.ErrorStyle.Bold(true).Render("● REC"),
		"",
		tui.TitleStyle.Render(clock),
		"",
		tui.ValueStyle.Render(p.Topic),
		tui.SubtitleStyle.Render(typeLine),
		"",
		tui.HintStyle.Render("space stop    esc abandon"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
