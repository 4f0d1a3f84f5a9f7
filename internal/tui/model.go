// Package tui implements the interactive compose form: a bubbletea model
// with a content textarea, an optional media URL input, and an error
// banner driven by the reactive error surface. The surface is owned by
// the model and only touched from Update, never from command goroutines.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pulsefeed/pulsecli/internal/backend"
	"github.com/pulsefeed/pulsecli/internal/boundary"
	"github.com/pulsefeed/pulsecli/internal/config"
	apperrors "github.com/pulsefeed/pulsecli/internal/errors"
	"github.com/pulsefeed/pulsecli/internal/surface"
	"github.com/pulsefeed/pulsecli/internal/validate"
)

// Field focus order within the form.
const (
	focusContent = iota
	focusMediaURL
	focusCount
)

// submitDoneMsg carries the outcome of an asynchronous submission. The
// generation guards against stale completions after a retry.
type submitDoneMsg struct {
	post       backend.Post
	err        error
	generation uint64
}

// Model is the root bubbletea model for the compose form.
type Model struct {
	content  textarea.Model
	mediaURL textinput.Model
	spin     spinner.Model

	keymap      KeyMap
	validator   validate.Validator
	client      backend.Client
	surface     *surface.Surface
	renderGuard *boundary.Boundary[string]
	timeout     time.Duration

	parentCtx  context.Context
	focus      int
	submitting bool
	generation uint64
	published  []backend.Post
	width      int
	version    string
	exitCode   int
}

// NewModel creates a new compose-form model.
func NewModel(parentCtx context.Context, client backend.Client, cfg config.AppConfig, version string) Model {
	validator := validate.NewValidator(cfg.Rules)

	ta := textarea.New()
	ta.Placeholder = "What's on your mind?"
	ta.CharLimit = cfg.Rules.PostMaxLen + 1 // allow typing past the bound so the counter can warn
	ta.SetHeight(5)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "https://... (optional media)"
	ti.Prompt = "media url > "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return Model{
		content:     ta,
		mediaURL:    ti,
		spin:        sp,
		keymap:      DefaultKeyMap(),
		validator:   validator,
		client:      client,
		surface:     surface.New(),
		renderGuard: boundary.New[string](renderFallback),
		timeout:     cfg.Timeout,
		parentCtx:   parentCtx,
		version:     version,
		exitCode:    apperrors.ExitSuccess,
	}
}

// Surface exposes the model's error surface, mainly for tests.
func (m Model) Surface() *surface.Surface { return m.surface }

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.content.SetWidth(msg.Width - 4)
		m.mediaURL.Width = msg.Width - 16
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitDoneMsg:
		if msg.generation != m.generation {
			return m, nil // stale completion from a superseded submission
		}
		m.submitting = false
		if msg.err != nil {
			e := apperrors.Normalize(msg.err)
			if e.IsValidation() {
				m.surface.ApplyValidation(e)
			} else {
				m.surface.Report(e)
			}
			return m, nil
		}
		m.published = append(m.published, msg.post)
		m.content.Reset()
		m.mediaURL.Reset()
		m.surface.Dismiss()
		m.surface.ClearFieldErrors()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		// A contained render fault maps to its exit code on quit.
		if m.renderGuard.Contained() {
			m.exitCode = apperrors.ExitCodeFor(m.renderGuard.Captured())
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Retry):
		if e := m.surface.Current(); e != nil && e.IsRetryable() && !m.submitting {
			return m.submit()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Dismiss):
		m.surface.Dismiss()
		if m.renderGuard.Contained() {
			m.renderGuard.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m.cycleFocus(1)

	case key.Matches(msg, m.keymap.PrevField):
		return m.cycleFocus(-1)
	}

	// Typing into a field clears that field's stale message.
	if m.focus == focusContent && m.surface.HasFieldError("content") {
		m.surface.ClearFieldError("content")
	}
	if m.focus == focusMediaURL && m.surface.HasFieldError("media_url") {
		m.surface.ClearFieldError("media_url")
	}
	return m.updateFocused(msg)
}

func (m Model) cycleFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = (m.focus + delta + focusCount) % focusCount
	if m.focus == focusContent {
		m.mediaURL.Blur()
		return m, m.content.Focus()
	}
	m.content.Blur()
	return m, m.mediaURL.Focus()
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusContent {
		m.content, cmd = m.content.Update(msg)
	} else {
		m.mediaURL, cmd = m.mediaURL.Update(msg)
	}
	return m, cmd
}

// submit validates the form and, on success, launches the backend call.
// Validation failures populate the surface and field map synchronously and
// never leave the process.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	validated := m.validator.NewPost(m.content.Value(), strings.TrimSpace(m.mediaURL.Value()))
	if validated.IsErr() {
		m.surface.ApplyValidation(validated.UnwrapErr())
		return m, nil
	}

	m.surface.Dismiss()
	m.surface.ClearFieldErrors()
	m.submitting = true
	m.generation++

	post := validated.Unwrap()
	return m, tea.Batch(
		m.spin.Tick,
		submitCmd(m.parentCtx, m.client, post, m.timeout, m.generation),
	)
}

// submitCmd performs the backend call off the UI goroutine. Panics in the
// client are recovered here and delivered as an ordinary failure message
// so the form never crashes.
func submitCmd(parent context.Context, client backend.Client, post validate.NewPost, timeout time.Duration, gen uint64) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = submitDoneMsg{err: apperrors.Normalize(r), generation: gen}
			}
		}()

		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		url := ""
		if post.MediaURL != nil {
			url = post.MediaURL.String()
		}
		created, err := client.CreatePost(ctx, post.Content.String(), url)
		return submitDoneMsg{post: created, err: err, generation: gen}
	}
}

// View renders the compose form inside the render containment boundary: a
// panic while rendering is swallowed there and replaced with a critical
// banner instead of tearing down the terminal.
func (m Model) View() string {
	return m.renderGuard.Execute(m.renderBody)
}

// renderFallback replaces the body when rendering itself has crashed.
func renderFallback(e *apperrors.Error) string {
	return bannerCriticalStyle.Render(
		e.UserMessage() + "\n" + retryHintStyle.Render("press esc to reset the view, ctrl+c to quit"))
}

func (m Model) renderBody() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pulse · compose"))
	b.WriteString(" ")
	b.WriteString(footerDescStyle.Render(m.version))
	b.WriteString("\n\n")

	b.WriteString(m.content.View())
	b.WriteString("\n")
	b.WriteString(m.renderCounter())
	if msg, ok := m.surface.FieldError("content"); ok {
		b.WriteString("\n")
		b.WriteString(fieldErrorStyle.Render("✗ " + msg))
	}
	b.WriteString("\n\n")

	b.WriteString(m.mediaURL.View())
	if msg, ok := m.surface.FieldError("media_url"); ok {
		b.WriteString("\n")
		b.WriteString(fieldErrorStyle.Render("✗ " + msg))
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(labelStyle.Render(" publishing..."))
		b.WriteString("\n")
	}

	if banner := m.renderBanner(); banner != "" {
		b.WriteString("\n")
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if n := len(m.published); n > 0 {
		last := m.published[n-1]
		b.WriteString("\n")
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ published %s", last.ID)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderCounter shows remaining characters for the content field.
func (m Model) renderCounter() string {
	used := len([]rune(m.content.Value()))
	max := m.validator.Rules().PostMaxLen
	text := fmt.Sprintf("%d/%d", used, max)
	if used > max {
		return counterOverStyle.Render(text)
	}
	return counterStyle.Render(text)
}

// renderBanner renders the current surface error, if any.
func (m Model) renderBanner() string {
	e := m.surface.Current()
	if e == nil {
		return ""
	}

	style := bannerErrorStyle
	if e.Severity == apperrors.SeverityCritical {
		style = bannerCriticalStyle
	}

	lines := []string{e.UserMessage()}
	if e.IsRetryable() {
		hint := "press ctrl+r to retry"
		if e.RetryAfterSeconds > 0 {
			hint = fmt.Sprintf("retry in %ds (ctrl+r)", e.RetryAfterSeconds)
		}
		lines = append(lines, retryHintStyle.Render(hint))
	}
	return style.Width(m.bannerWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) bannerWidth() int {
	if m.width > 8 {
		return m.width - 4
	}
	return 60
}

func (m Model) renderFooter() string {
	bindings := []key.Binding{
		m.keymap.Submit,
		m.keymap.NextField,
		m.keymap.Dismiss,
		m.keymap.Retry,
		m.keymap.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerDescStyle.Render("  ·  "))
}

// Run is the public entry point for the TUI mode. It creates the bubbletea
// program, runs it, and returns the exit code.
func Run(ctx context.Context, client backend.Client, cfg config.AppConfig, version string) int {
	model := NewModel(ctx, client, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
