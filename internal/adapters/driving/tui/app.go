package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/components/input"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/components/sidebar"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/components/status"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/keymap"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/messages"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driving/tui/styles"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/services"
)

// role identifies who wrote a transcript entry.
type role int

const (
	roleUser role = iota
	roleAssistant
	roleSystem
)

// entry is one block of the transcript.
type entry struct {
	role    role
	text    string
	sources []string
	isError bool
}

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	viewport viewport.Model
	input    *input.ChatInput
	spinner  spinner.Model
	sidebar  *sidebar.Sidebar
	status   *status.Bar

	transcript []entry

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat TUI. Exchanges already in the session are shown.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	a := &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		input:    input.NewChatInput(s),
		spinner:  sp,
		sidebar:  sidebar.New(s),
		status:   status.NewBar(s, km),
	}

	for _, e := range ports.Session.History() {
		a.transcript = append(a.transcript,
			entry{role: roleUser, text: e.Question},
			entry{role: roleAssistant, text: e.Answer, sources: e.Sources},
		)
	}
	a.refreshSidebar()
	return a, nil
}

// WithContext sets the context passed to session calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		tea.SetWindowTitle("DocChat - Chat with your documents"),
		a.loadDocumentCount(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.status.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.status.SetSpinner(a.spinner.View())
		return a, cmd

	case messages.AnswerReceived:
		a.status.Clear()
		if errors.Is(msg.Err, domain.ErrNoDocuments) || errors.Is(msg.Err, domain.ErrInvalidInput) {
			a.dropPendingQuestion()
			a.notify(userMessage(msg.Err), true)
			return a, nil
		}
		a.transcript = append(a.transcript, entry{
			role:    roleAssistant,
			text:    msg.Exchange.Answer,
			sources: msg.Exchange.Sources,
			isError: msg.Err != nil,
		})
		a.refreshSidebar()
		a.renderTranscript()
		return a, nil

	case messages.UploadFinished:
		a.status.Clear()
		ok := 0
		for _, r := range msg.Results {
			if r.Err != nil {
				a.transcript = append(a.transcript, entry{
					role: roleSystem, text: fmt.Sprintf("✗ Error processing %s: %v", r.Filename, r.Err), isError: true,
				})
				continue
			}
			ok++
			a.transcript = append(a.transcript, entry{
				role: roleSystem, text: fmt.Sprintf("✓ Processed %s (%d chunks)", r.Filename, len(r.Chunks)),
			})
		}
		if ok > 0 {
			a.notify(fmt.Sprintf("Successfully processed %d documents!", ok), false)
		}
		a.renderTranscript()
		return a, a.loadDocumentCount()

	case messages.DocumentCountLoaded:
		a.sidebar.Documents = msg.Count
		return a, nil

	case messages.ChatCleared:
		if msg.Err != nil {
			a.notify(msg.Err.Error(), true)
			return a, nil
		}
		a.transcript = nil
		a.refreshSidebar()
		a.renderTranscript()
		a.notify("Chat cleared", false)
		return a, nil

	case messages.DocumentsCleared:
		if msg.Err != nil {
			a.notify(msg.Err.Error(), true)
			return a, nil
		}
		a.notify("All documents cleared", false)
		return a, a.loadDocumentCount()

	case messages.ModelChanged:
		a.refreshSidebar()
		a.notify("Model set to "+msg.Model, false)
		return a, nil

	case messages.Notice:
		a.notify(msg.Text, msg.IsError)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.ClearChat):
		return a, a.clearChat()

	case key.Matches(msg, a.keymap.ScrollUp), key.Matches(msg, a.keymap.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case key.Matches(msg, a.keymap.Send):
		text := strings.TrimSpace(a.input.Value())
		a.input.Reset()
		return a, a.submit(text)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit handles one line of input: a slash command or a question.
func (a *App) submit(text string) tea.Cmd {
	if strings.HasPrefix(text, "/") {
		return a.runCommand(text)
	}
	if a.status.Busy() {
		return nil
	}
	if text == "" {
		a.notify(services.MsgEmptyQuestion, true)
		return nil
	}
	if a.sidebar.Documents == 0 {
		a.notify(services.MsgNoDocuments, true)
		return nil
	}

	a.transcript = append(a.transcript, entry{role: roleUser, text: text})
	a.renderTranscript()
	a.status.SetState(status.StateThinking)

	session, ctx := a.ports.Session, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		exchange, err := session.Ask(ctx, text)
		return messages.AnswerReceived{Exchange: exchange, Err: err}
	})
}

// runCommand executes a slash command.
func (a *App) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/upload":
		if len(args) == 0 {
			a.notify("usage: /upload <path...>", true)
			return nil
		}
		if a.status.Busy() {
			return nil
		}
		raws, err := rawDocuments(args)
		if err != nil {
			a.notify(err.Error(), true)
			return nil
		}
		a.status.SetState(status.StateUploading)
		session, ctx := a.ports.Session, a.ctx
		return tea.Batch(a.spinner.Tick, func() tea.Msg {
			return messages.UploadFinished{Results: session.Upload(ctx, raws)}
		})

	case "/model":
		if len(args) == 0 {
			a.notify(fmt.Sprintf("Model: %s (available: %s)",
				a.ports.Session.Model(), strings.Join(domain.AvailableModels(), ", ")), false)
			return nil
		}
		model := args[0]
		a.ports.Session.SetModel(model)
		settings := a.ports.Settings
		return func() tea.Msg {
			if settings != nil {
				if err := settings.SetModel(model); err != nil {
					return messages.Notice{Text: err.Error(), IsError: true}
				}
			}
			return messages.ModelChanged{Model: model}
		}

	case "/clear":
		return a.clearChat()

	case "/clear-docs":
		session, ctx := a.ports.Session, a.ctx
		return func() tea.Msg {
			return messages.DocumentsCleared{Err: session.ClearDocuments(ctx)}
		}

	case "/quit", "/exit":
		return tea.Quit

	case "/help":
		a.notify("Commands: /upload <path...>  /model [id]  /clear  /clear-docs  /quit", false)
		return nil

	default:
		a.notify(fmt.Sprintf("unknown command %s (try /help)", name), true)
		return nil
	}
}

func (a *App) clearChat() tea.Cmd {
	session, ctx := a.ports.Session, a.ctx
	return func() tea.Msg {
		return messages.ChatCleared{Err: session.ClearChat(ctx)}
	}
}

func (a *App) loadDocumentCount() tea.Cmd {
	session, ctx := a.ports.Session, a.ctx
	return func() tea.Msg {
		return messages.DocumentCountLoaded{Count: session.DocumentCount(ctx)}
	}
}

func (a *App) notify(text string, isError bool) {
	a.status.SetMessage(text)
	if isError {
		a.status.SetState(status.StateError)
	} else {
		a.status.SetState(status.StateReady)
	}
}

func (a *App) dropPendingQuestion() {
	if n := len(a.transcript); n > 0 && a.transcript[n-1].role == roleUser {
		a.transcript = a.transcript[:n-1]
		a.renderTranscript()
	}
}

func (a *App) refreshSidebar() {
	session := a.ports.Session
	a.sidebar.Questions = session.QuestionCount()
	a.sidebar.Model = session.Model()
	a.sidebar.Recent = session.RecentQuestions(services.DefaultRecentQuestions)
}

func (a *App) resize(width, height int) {
	a.width, a.height = width, height
	a.ready = true

	chatWidth := max(width-sidebar.Width, 20)
	bodyHeight := max(height-4, 5) // input box and status bar

	a.viewport.Width = chatWidth - 4
	a.viewport.Height = bodyHeight - 2
	a.sidebar.SetHeight(bodyHeight)
	a.input.SetWidth(width)
	a.status.SetWidth(width)
	a.renderTranscript()
}

// renderTranscript redraws the viewport and scrolls to the newest entry.
func (a *App) renderTranscript() {
	if len(a.transcript) == 0 {
		a.viewport.SetContent(a.styles.Muted.Render(
			"Upload documents with /upload <path...> and ask questions about them."))
		return
	}

	wrap := lipgloss.NewStyle().Width(max(a.viewport.Width, 10))
	blocks := make([]string, 0, len(a.transcript))
	for _, e := range a.transcript {
		blocks = append(blocks, wrap.Render(a.renderEntry(e)))
	}
	a.viewport.SetContent(strings.Join(blocks, "\n\n"))
	a.viewport.GotoBottom()
}

func (a *App) renderEntry(e entry) string {
	switch e.role {
	case roleUser:
		return a.styles.UserLabel.Render("You: ") + e.text
	case roleAssistant:
		text := e.text
		if e.isError {
			text = a.styles.Error.Render(text)
		}
		out := a.styles.AssistantLabel.Render("Assistant: ") + text
		if names := uniqueSources(e.sources); len(names) > 0 {
			out += "\n" + a.styles.Source.Render("Sources: "+strings.Join(names, ", "))
		}
		return out
	default:
		if e.isError {
			return a.styles.Error.Render(e.text)
		}
		return a.styles.Success.Render(e.text)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	chat := a.styles.Transcript.
		Width(a.viewport.Width + 2).
		Height(a.viewport.Height).
		Render(a.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, a.sidebar.View())

	return lipgloss.JoinVertical(lipgloss.Left, body, a.input.View(), a.status.View())
}

// Run starts the chat in the alternate screen and blocks until it exits.
func Run(ctx context.Context, ports *Ports) error {
	app, err := NewApp(ports)
	if err != nil {
		return err
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Ready returns whether the first window size has arrived.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.resize(width, height)
}

// rawDocuments expands glob patterns into files to upload.
func rawDocuments(patterns []string) ([]domain.RawDocument, error) {
	var raws []domain.RawDocument
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q", domain.ErrInvalidInput, pattern)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match %s", domain.ErrInvalidInput, pattern)
		}
		for _, path := range matches {
			raws = append(raws, domain.RawDocument{Filename: filepath.Base(path), Path: path})
		}
	}
	return raws, nil
}

func uniqueSources(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// userMessage strips the sentinel prefix from session rejections.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoDocuments):
		return services.MsgNoDocuments
	case errors.Is(err, domain.ErrInvalidInput):
		return services.MsgEmptyQuestion
	default:
		return err.Error()
	}
}
