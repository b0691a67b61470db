package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"github.com/CrestNiraj12/terminalsky/app"
	"github.com/CrestNiraj12/terminalsky/domain"
	"github.com/CrestNiraj12/terminalsky/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	Ref       domain.PostRef // Zero if cancelled
	Reply     bool
	Cancelled bool
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// submitResultMsg carries the outcome of Post or Reply.
type submitResultMsg struct {
	res domain.Result[domain.PostRef]
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode       mode
	post       app.PostService
	editor     *editor.EnvEditor
	parent     *domain.Post // Reply target; nil for a top-level post
	textarea   textarea.Model
	status     string
	err        string
	submitting bool
}

// NewEditor creates a compose model that opens $EDITOR via tea.ExecProcess.
// A failed submit falls back to the inline textarea with the text kept.
func NewEditor(post app.PostService, ed *editor.EnvEditor, parent *domain.Post) Model {
	m := NewInline(post, parent)
	m.mode = editorMode
	m.editor = ed
	m.status = "Opening editor..."
	return m
}

// NewInline creates a compose model with an inline Bubble Tea textarea.
func NewInline(post app.PostService, parent *domain.Post) Model {
	ta := textarea.New()
	ta.Placeholder = "What's up?"
	if parent != nil {
		ta.Placeholder = "Write your reply"
	}
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		post:     post,
		parent:   parent,
		textarea: ta,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// Draft returns the text being composed and its reply target.
func (m Model) Draft() domain.ReplyDraft {
	d := domain.ReplyDraft{Text: m.textarea.Value()}
	if m.parent != nil {
		d.Parent = *m.parent
	}
	return d
}

// IsReply reports whether this compose session replies to a post.
func (m Model) IsReply() bool {
	return m.parent != nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess so Bubble
// Tea leaves raw mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	replyTo := ""
	if m.parent != nil {
		replyTo = "@" + m.parent.Author.Handle
	}
	cmd, tmpPath, err := m.editor.Cmd(m.textarea.Value(), replyTo)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: fmt.Errorf("preparing editor: %w", err)}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			m.mode = inlineMode
			m.status = ""
			m.err = "Editor: " + msg.err.Error()
			return m, textarea.Blink
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			m.mode = inlineMode
			m.status = ""
			m.err = err.Error()
			return m, textarea.Blink
		}
		if content == "" {
			return m, done(DoneMsg{Cancelled: true, Reply: m.IsReply()})
		}
		m.textarea.SetValue(content)
		return m.submit()

	// --- Submit results ---

	case submitResultMsg:
		m.submitting = false
		if !msg.res.OK {
			// Keep the draft; the editor has already exited, so continue inline.
			m.mode = inlineMode
			m.status = ""
			m.err = msg.res.Error
			return m, nil
		}
		m.textarea.Reset()
		m.err = ""
		return m, done(DoneMsg{Ref: msg.res.Data, Reply: m.IsReply()})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{Cancelled: true, Reply: m.IsReply()})
		case "ctrl+d", "ctrl+s":
			return m.submit()
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit validates the draft locally and sends it. Whitespace-only text is
// ignored without touching state.
func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return m, nil
	}
	if uniseg.GraphemeClusterCount(text) > domain.MaxPostGraphemes {
		m.mode = inlineMode
		m.status = ""
		m.err = domain.ErrPostTooLong.Error()
		return m, nil
	}

	m.submitting = true
	m.err = ""
	m.status = "Posting..."
	post := m.post
	parent := m.parent
	return m, func() tea.Msg {
		if parent != nil {
			return submitResultMsg{res: post.Reply(context.Background(), text, *parent)}
		}
		return submitResultMsg{res: post.Post(context.Background(), text)}
	}
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
