package screens

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/speaksharp/speaksharp/internal/analysis"
	"github.com/speaksharp/speaksharp/internal/tui"
)

type analysisDoneMsg struct{ err error }

type retakeDoneMsg struct{ err error }

type playTickMsg struct{}

const playStep = 250 * time.Millisecond

// Playback reviews the current take before analysis. There is no real
// audio pipeline, so the transport just sweeps a cursor across the
// take's duration.
type Playback struct {
	deps      *Deps
	bar       progress.Model
	spin      spinner.Model
	pos       time.Duration
	playing   bool
	analyzing bool
}

func NewPlayback(deps *Deps) *Playback {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tui.AccentStyle
	return &Playback{
		deps: deps,
		bar:  progress.New(progress.WithDefaultGradient()),
		spin: sp,
	}
}

func (p *Playback) Title() string { return "Playback" }

func (p *Playback) Init() tea.Cmd { return nil }

func (p *Playback) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !p.analyzing {
			return nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return cmd
	case playTickMsg:
		if !p.playing {
			return nil
		}
		p.pos += playStep
		if total := p.deps.Session.Get().Elapsed; p.pos >= total {
			p.pos = total
			p.playing = false
			return nil
		}
		return p.tick()
	case analysisDoneMsg:
		p.analyzing = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		if cmd := p.deps.push(tui.RouteFeedback); cmd != nil {
			return cmd
		}
		return tui.StatusCmd("Analysis complete")
	case retakeDoneMsg:
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		if err := p.deps.Router.Pop(); err != nil {
			return tui.ErrorCmd(err)
		}
		return tui.StatusCmd("Ready for another take")
	case tea.KeyMsg:
		if p.analyzing {
			return nil
		}
		switch msg.String() {
		case " ":
			p.playing = !p.playing
			if p.playing {
				if p.pos >= p.deps.Session.Get().Elapsed {
					p.pos = 0
				}
				return p.tick()
			}
			return nil
		case "a":
			return p.analyze()
		case "r":
			return p.retake()
		}
	}
	return nil
}

func (p *Playback) tick() tea.Cmd {
	return tea.Tick(playStep, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (p *Playback) analyze() tea.Cmd {
	p.analyzing = true
	p.playing = false
	practice := p.deps.Practice
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_, err := practice.Analyze(ctx)
		return analysisDoneMsg{err: err}
	})
}

func (p *Playback) retake() tea.Cmd {
	p.playing = false
	practice := p.deps.Practice
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return retakeDoneMsg{err: practice.Retake(ctx)}
	}
}

func (p *Playback) View(width, height int) string {
	take := p.deps.Session.Get()
	total := take.Elapsed
	ratio := 0.0
	if total > 0 {
		ratio = float64(p.pos) / float64(total)
	}
	p.bar.Width = maxInt(20, width/2)

	audio := "no audio file attached"
	if take.AudioPath != "" {
		audio = take.AudioPath
	}
	transport := "▶"
	if p.playing {
		transport = "⏸"
	}

	status := tui.HintStyle.Render("space play/pause    a analyze    r retake    esc back")
	if p.analyzing {
		status = p.spin.View() + " " + tui.AccentStyle.Render("Analyzing your take...")
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		tui.TitleStyle.Render(take.Topic),
		tui.SubtitleStyle.Render(take.SpeechType),
		"",
		tui.ValueStyle.Render(transport+"  "+analysis.FormatClock(p.pos)+" / "+analysis.FormatClock(total)),
		p.bar.ViewAs(ratio),
		"",
		tui.LabelStyle.Render("Audio: ")+tui.SubtitleStyle.Render(audio),
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
