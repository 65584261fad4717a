package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/field"
	"github.com/dmitrymomot/storefront/pkg/form"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

type input int

const (
	inputEmail input = iota
	inputPassword
	inputName
	inputCount
)

// changedMsg reports that the form or the session changed.
type changedMsg struct{}

type signedOutMsg struct{ err error }

// Model is the bubbletea model of the sign-in screen.
type Model struct {
	ctx      context.Context
	client   auth.Client
	form     *form.Form
	observer *auth.Observer

	inputs  [inputCount]textinput.Model
	focus   input
	spinner spinner.Model
	styles  styles

	signals chan struct{}
	detach  []func()

	state  form.State
	user   *auth.User
	status string
}

// New builds the screen around f. Submissions and sign-out use client;
// observer reports the signed-in user.
func New(ctx context.Context, client auth.Client, f *form.Form, observer *auth.Observer) Model {
	m := Model{
		ctx:      ctx,
		client:   client,
		form:     f,
		observer: observer,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:   defaultStyles(),
		signals:  make(chan struct{}, 1),
	}

	placeholders := [inputCount]string{"you@example.com", "password", "your name"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 128
		ti.Width = 32
		m.inputs[i] = ti
	}
	m.inputs[inputPassword].EchoMode = textinput.EchoPassword
	m.inputs[inputPassword].EchoCharacter = '•'
	m.inputs[inputEmail].Focus()

	signals := m.signals
	notify := func() {
		select {
		case signals <- struct{}{}:
		default:
		}
	}
	m.detach = []func(){
		f.OnChange(func(form.State) { notify() }),
		observer.OnChange(func(*auth.User) { notify() }),
	}

	m.state = f.State()
	m.user = observer.Current()
	return m
}

// Close detaches the model from the form and the observer.
func (m Model) Close() {
	for _, fn := range m.detach {
		fn()
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.signals))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.refresh()
		return m, waitForChange(m.signals)

	case signedOutMsg:
		if msg.err != nil {
			m.status = sanitizer.SingleLine(msg.err.Error())
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		return m, m.moveFocus(1)

	case "shift+tab", "up":
		return m, m.moveFocus(-1)

	case "ctrl+t":
		m.form.ToggleMode()
		m.status = ""
		m.refresh()
		if m.focus >= m.visibleInputs() {
			return m, m.setFocus(inputEmail)
		}
		return m, nil

	case "ctrl+r":
		m.form.Email().Flush()
		if _, ok := m.form.RequestPasswordReset(m.ctx); !ok {
			m.status = "Enter a valid email address to reset your password"
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil

	case "ctrl+o":
		if m.user == nil {
			return m, nil
		}
		return m, m.signOut()

	case "enter":
		m.form.Flush()
		if _, ok := m.form.Submit(m.ctx); !ok {
			m.status = "Complete the highlighted fields"
		} else {
			m.status = ""
		}
		m.refresh()
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.textChanged(m.focus, after)
		m.refresh()
	}
	return m, cmd
}

func (m Model) textChanged(in input, text string) {
	switch in {
	case inputEmail:
		m.form.Email().TextChanged(text)
	case inputPassword:
		m.form.Password().TextChanged(text)
	case inputName:
		m.form.Name().TextChanged(text)
	}
}

func (m *Model) refresh() {
	m.state = m.form.State()
	m.user = m.observer.Current()
}

func (m Model) visibleInputs() input {
	if m.state.Mode == form.ModeSignUp {
		return inputCount
	}
	return inputName
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := int(m.visibleInputs())
	next := (int(m.focus) + delta + n) % n
	return m.setFocus(input(next))
}

func (m *Model) setFocus(in input) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = in
	return m.inputs[in].Focus()
}

func (m Model) signOut() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return signedOutMsg{err: client.SignOut(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder

	title := "Sign in"
	if m.state.Mode == form.ModeSignUp {
		title = "Create account"
	}
	b.WriteString(m.styles.title.Render(title))
	if m.state.Submitting || m.state.Resetting {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	labels := [inputCount]string{"Email", "Password", "Name"}
	statuses := [inputCount]field.Status{m.state.Email.Status, m.state.Password.Status, m.state.Name.Status}
	errs := [inputCount]string{m.state.Email.Message, m.state.Password.Message, m.state.Name.Message}

	for i := input(0); i < m.visibleInputs(); i++ {
		label := m.styles.label
		if i == m.focus {
			label = m.styles.focused
		}
		fmt.Fprintf(&b, "%s %s %s\n", label.Render(labels[i]), m.inputs[i].View(), m.marker(statuses[i]))
		if statuses[i] == field.Invalid {
			for _, line := range strings.Split(errs[i], "\n") {
				b.WriteString(strings.Repeat(" ", 11) + m.styles.invalid.Render(line) + "\n")
			}
		}
	}

	if m.state.LastError != "" {
		b.WriteString("\n" + m.styles.err.Render(sanitizer.SingleLine(m.state.LastError)) + "\n")
	}
	if m.state.Notice != "" {
		b.WriteString("\n" + m.styles.notice.Render(m.state.Notice) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.help.Render(m.status) + "\n")
	}
	if m.user != nil {
		name := m.user.DisplayName
		if name == "" {
			name = m.user.Email
		}
		b.WriteString("\n" + m.styles.notice.Render("Signed in as "+name) + "\n")
	}

	b.WriteString("\n" + m.styles.help.Render(
		"enter submit • tab next • ctrl+t sign in/up • ctrl+r reset password • ctrl+o sign out • esc quit",
	))
	return m.styles.box.Render(b.String()) + "\n"
}

func (m Model) marker(s field.Status) string {
	switch s {
	case field.Valid:
		return m.styles.valid.Render("✓")
	case field.Invalid:
		return m.styles.invalid.Render("✗")
	case field.Pending:
		return m.styles.pending.Render("…")
	default:
		return " "
	}
}

// Run shows the screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, client auth.Client, f *form.Form, observer *auth.Observer, opts ...tea.ProgramOption) error {
	m := New(ctx, client, f, observer)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
