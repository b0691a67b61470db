package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalsky/app"
	"github.com/CrestNiraj12/terminalsky/domain"
)

// LoggedInMsg is sent once a session has been created.
type LoggedInMsg struct {
	Session    domain.Session
	Identifier string // As typed, for pre-filling the next run.
}

type resultMsg struct {
	identifier string
	res        domain.Result[domain.Session]
}

type field int

const (
	identifierField field = iota
	passwordField
)

// Model is the login form.
type Model struct {
	session    app.SessionService
	identifier textinput.Model
	password   textinput.Model
	focus      field
	submitting bool
	autoSubmit bool
	err        string
	spinner    spinner.Model
}

// New creates the login form, pre-filling identifier and password.
// With both present the form submits itself on Init.
func New(session app.SessionService, identifier, password string) Model {
	id := textinput.New()
	id.Prompt = "Handle   "
	id.Placeholder = "alice.bsky.social"
	id.CharLimit = 253
	id.SetValue(identifier)

	pw := textinput.New()
	pw.Prompt = "Password "
	pw.Placeholder = "app password"
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.SetValue(password)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1185FE"))

	m := Model{
		session:    session,
		identifier: id,
		password:   pw,
		spinner:    s,
		autoSubmit: identifier != "" && password != "",
	}
	if identifier != "" {
		m.focus = passwordField
		m.password.Focus()
	} else {
		m.identifier.Focus()
	}
	return m
}

// Init starts the cursor blink, or the login itself when credentials were
// supplied up front.
func (m Model) Init() tea.Cmd {
	if m.autoSubmit {
		return tea.Batch(m.spinner.Tick, m.login())
	}
	return textinput.Blink
}

// Submitting reports whether a login request is in flight.
func (m Model) Submitting() bool {
	return m.submitting || m.autoSubmit
}

// Err returns the last login error.
func (m Model) Err() string {
	return m.err
}

func (m Model) login() tea.Cmd {
	session := m.session
	identifier := strings.TrimSpace(m.identifier.Value())
	password := m.password.Value()
	return func() tea.Msg {
		return resultMsg{
			identifier: identifier,
			res:        session.Login(context.Background(), identifier, password),
		}
	}
}

// Update handles input for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.submitting = false
		m.autoSubmit = false
		if !msg.res.OK {
			m.err = msg.res.Error
			m.password.SetValue("")
			return m.focusField(passwordField)
		}
		m.err = ""
		sess := msg.res.Data
		ident := msg.identifier
		return m, func() tea.Msg { return LoggedInMsg{Session: sess, Identifier: ident} }

	case spinner.TickMsg:
		if !m.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.Submitting() {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return m.focusField(1 - m.focus)
		case tea.KeyEnter:
			if m.focus == identifierField && m.password.Value() == "" {
				return m.focusField(passwordField)
			}
			m.submitting = true
			m.err = ""
			return m, tea.Batch(m.spinner.Tick, m.login())
		}
	}

	var cmd tea.Cmd
	if m.focus == identifierField {
		m.identifier, cmd = m.identifier.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) focusField(f field) (Model, tea.Cmd) {
	m.focus = f
	if f == identifierField {
		m.password.Blur()
		return m, m.identifier.Focus()
	}
	m.identifier.Blur()
	return m, m.password.Focus()
}
