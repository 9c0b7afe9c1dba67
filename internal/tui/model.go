package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/chatboot/internal/chat"
	"github.com/diogo/chatboot/internal/models"
	"github.com/diogo/chatboot/internal/render"
)

// Visible strings of the chat view
const (
	headerTitle      = "Chat con IA"
	inputPlaceholder = "Escribe tu mensaje..."
	typingIndicator  = "Escribiendo..."
)

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// replyMsg carries the outcome of one request back to the event loop
type replyMsg struct {
	reply *models.Message
	err   error
}

// Settings configures the chat view
type Settings struct {
	ModelName string
	// ShowErrors displays failed requests under the input
	ShowErrors bool
	Render     render.Options
	Logger     *zap.Logger
}

// Model represents the TUI state
type Model struct {
	session  *chat.Session
	settings Settings
	logger   *zap.Logger

	// Requests are canceled when the view quits
	ctx    context.Context
	cancel context.CancelFunc

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready   bool
	lastErr error
	notice  string

	width  int
	height int
}

// NewChatModel creates the chat view for session
func NewChatModel(session *chat.Session, settings Settings) Model {
	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.BlurredStyle.Base = lipgloss.NewStyle().Foreground(colorTextDim)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	if settings.Render.Width == 0 {
		settings.Render = render.DefaultOptions()
	}
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		session:  session,
		settings: settings,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		textarea: ta,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	pending := m.session.Pending()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.shutdown()
			return m, tea.Quit

		case "enter":
			if pending {
				return m, nil
			}
			return m.submit()

		case "ctrl+y":
			m.copyLastReply()
			return m, nil
		}

	case replyMsg:
		m.handleReply(msg)
		if !m.session.Pending() {
			cmds = append(cmds, m.textarea.Focus())
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if pending {
			m.spinner, cmd = m.spinner.Update(msg)
			m.updateViewport()
			cmds = append(cmds, cmd)
		}
	}

	// Input is disabled while a reply is outstanding
	if !pending {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the input to the session and starts the request
func (m Model) submit() (tea.Model, tea.Cmd) {
	user, ok := m.session.Begin(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.notice = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.complete(user), m.spinner.Tick)
}

// complete runs the request off the event loop
func (m Model) complete(user models.Message) tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		reply, err := session.Complete(ctx, user)
		return replyMsg{reply: reply, err: err}
	}
}

func (m *Model) handleReply(msg replyMsg) {
	switch {
	case msg.err == nil:
		m.lastErr = nil
	case errors.Is(msg.err, context.Canceled), errors.Is(msg.err, chat.ErrSessionClosed):
		// quitting
	case m.settings.ShowErrors:
		m.lastErr = msg.err
	}
}

func (m *Model) copyLastReply() {
	reply, ok := m.session.LastReply()
	if !ok {
		m.notice = "Nada que copiar"
		return
	}
	if err := copyToClipboard(reply.Content); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.notice = "No se pudo copiar"
		return
	}
	m.notice = "Respuesta copiada"
}

// shutdown cancels outstanding requests so late replies never reach the view
func (m *Model) shutdown() {
	m.cancel()
	m.session.Close()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	inputHeight := 5
	statusHeight := 1
	errorHeight := 0
	if m.settings.ShowErrors {
		errorHeight = 3
	}

	vpHeight := height - headerHeight - inputHeight - statusHeight - errorHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
	m.updateViewport()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Iniciando...")
	}

	contentWidth := m.viewport.Width
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render(headerTitle),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.settings.ModelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	var messages string
	if m.session.Len() == 0 {
		messages = m.renderWelcome()
	} else {
		messages = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	panel := inputPanelStyle
	if m.session.Pending() {
		panel = inputDisabledStyle
	}
	sections = append(sections, panel.Width(contentWidth).Render(m.textarea.View()))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.settings.ShowErrors && m.lastErr != nil {
		sections = append(sections, FormatError(m.lastErr))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 2

	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render(headerTitle),
		"",
		welcomeStyle.Width(width).Render("Pregunta lo que quieras sobre programación en Python"),
	)

	topPadding := (m.viewport.Height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Enviar"},
		{"Ctrl+Y", "Copiar"},
		{"↑↓", "Desplazar"},
		{"Esc", "Salir"},
	}

	items := make([]string, 0, len(shortcuts)+1)
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	if m.notice != "" {
		items = append(items, noticeStyle.Render(m.notice))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport lays out the transcript: user bubbles right, replies left
func (m *Model) updateViewport() {
	width := m.viewport.Width - 2
	if width < 10 {
		width = 10
	}
	maxBubble := width * 3 / 4

	var content strings.Builder
	for i, msg := range m.session.Transcript() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			bubbleWidth := lipgloss.Width(msg.Content) + 2
			if bubbleWidth > maxBubble {
				bubbleWidth = maxBubble
			}
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, userLabelStyle.Render("Tú")))
			content.WriteString("\n")
			content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		} else {
			rendered := render.Reply(msg.Content, m.settings.Render.WithWidth(maxBubble-4))
			content.WriteString(assistantLabelStyle.Render("IA"))
			content.WriteString("\n")
			content.WriteString(assistantBubbleStyle.Render(rendered))
		}
		content.WriteString("\n")
	}

	if m.session.Pending() {
		content.WriteString("\n")
		content.WriteString(m.spinner.View() + " " + typingStyle.Render(typingIndicator))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI and blocks until the user quits
func RunChat(session *chat.Session, settings Settings) error {
	m := NewChatModel(session, settings)
	defer m.shutdown()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
