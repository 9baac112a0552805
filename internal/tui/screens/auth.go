package screens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/speaksharp/speaksharp/internal/state"
	"github.com/speaksharp/speaksharp/internal/tui"
)

// authDoneMsg is the result of a background login or registration.
type authDoneMsg struct {
	account state.Account
	err     error
}

// finishSignIn publishes the account, remembers it in the vault, and
// rebuilds the stack as splash → home.
func finishSignIn(deps *Deps, account state.Account) tea.Cmd {
	deps.Account.Set(account)
	if err := deps.Vault.Remember(account.ID); err != nil {
		deps.logger().Warn("remember session", zap.Error(err))
	}
	deps.Router.PopToFloor()
	if cmd := deps.push(tui.RouteHome); cmd != nil {
		return cmd
	}
	return tui.StatusCmd("Signed in as " + account.Name)
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Width = 36
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// cycleFocus blurs every field and focuses the one at idx.
func cycleFocus(fields []*textinput.Model, idx int) tea.Cmd {
	var cmd tea.Cmd
	for i, f := range fields {
		if i == idx {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// Login is the sign-in form.
type Login struct {
	deps     *Deps
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func NewLogin(deps *Deps) *Login {
	l := &Login{
		deps:     deps,
		email:    newField("you@example.com", false),
		password: newField("password", true),
	}
	l.email.Focus()
	return l
}

func (l *Login) Title() string { return "Sign in" }

func (l *Login) Init() tea.Cmd { return textinput.Blink }

func (l *Login) fields() []*textinput.Model {
	return []*textinput.Model{&l.email, &l.password}
}

func (l *Login) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authDoneMsg:
		l.busy = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		return finishSignIn(l.deps, msg.account)
	case tea.KeyMsg:
		if l.busy {
			return nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			l.focus = (l.focus + 1) % 2
			return cycleFocus(l.fields(), l.focus)
		case "enter":
			return l.signIn()
		case "ctrl+r":
			return l.deps.push(tui.RouteRegister)
		}
		var cmd tea.Cmd
		switch l.focus {
		case 0:
			l.email, cmd = l.email.Update(msg)
		default:
			l.password, cmd = l.password.Update(msg)
		}
		return cmd
	}
	return nil
}

func (l *Login) signIn() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		return tui.ErrorCmd(errors.New("enter your email and password"))
	}
	l.busy = true
	svc := l.deps.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		account, err := svc.Login(ctx, email, password)
		return authDoneMsg{account: account, err: err}
	}
}

func (l *Login) View(width, height int) string {
	status := tui.HintStyle.Render("enter sign in    ctrl+r create account")
	if l.busy {
		status = tui.AccentStyle.Render("Signing in...")
	}
	form := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("Sign in to Speak Sharp"),
		"",
		tui.LabelStyle.Render("Email"),
		l.email.View(),
		"",
		tui.LabelStyle.Render("Password"),
		l.password.View(),
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}

// Register is the account-creation form.
type Register struct {
	deps     *Deps
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int
	busy     bool
}

func NewRegister(deps *Deps) *Register {
	r := &Register{
		deps:     deps,
		name:     newField("Ada Lovelace", false),
		email:    newField("you@example.com", false),
		password: newField("at least 8 characters", true),
		confirm:  newField("repeat password", true),
	}
	r.name.Focus()
	return r
}

func (r *Register) Title() string { return "Create account" }

func (r *Register) Init() tea.Cmd { return textinput.Blink }

func (r *Register) fields() []*textinput.Model {
	return []*textinput.Model{&r.name, &r.email, &r.password, &r.confirm}
}

func (r *Register) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case authDoneMsg:
		r.busy = false
		if msg.err != nil {
			return tui.ErrorCmd(msg.err)
		}
		return finishSignIn(r.deps, msg.account)
	case tea.KeyMsg:
		if r.busy {
			return nil
		}
		fields := r.fields()
		switch msg.String() {
		case "tab", "down":
			r.focus = (r.focus + 1) % len(fields)
			return cycleFocus(fields, r.focus)
		case "shift+tab", "up":
			r.focus = (r.focus + len(fields) - 1) % len(fields)
			return cycleFocus(fields, r.focus)
		case "enter":
			return r.submit()
		}
		updated, cmd := fields[r.focus].Update(msg)
		*fields[r.focus] = updated
		return cmd
	}
	return nil
}

func (r *Register) submit() tea.Cmd {
	if r.password.Value() != r.confirm.Value() {
		return tui.ErrorCmd(errors.New("passwords do not match"))
	}
	name := strings.TrimSpace(r.name.Value())
	email := strings.TrimSpace(r.email.Value())
	password := r.password.Value()
	r.busy = true
	svc := r.deps.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		account, err := svc.Register(ctx, name, email, password)
		return authDoneMsg{account: account, err: err}
	}
}

func (r *Register) View(width, height int) string {
	status := tui.HintStyle.Render("enter create account    esc back to sign in")
	if r.busy {
		status = tui.AccentStyle.Render("Creating account...")
	}
	form := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render("Create your account"),
		"",
		tui.LabelStyle.Render("Name"),
		r.name.View(),
		"",
		tui.LabelStyle.Render("Email"),
		r.email.View(),
		"",
		tui.LabelStyle.Render("Password"),
		r.password.View(),
		"",
		tui.LabelStyle.Render("Confirm password"),
		r.confirm.View(),
		"",
		status,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
