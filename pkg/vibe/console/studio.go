package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/76creates/stickers/flexbox"
	constants "github.com/ImGajeed76/vibepalette/internal"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/history"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RequestState tracks whether a generation is outstanding. Submitting is
// only possible while Idle.
type RequestState int

const (
	Idle RequestState = iota
	InFlight
)

func (s RequestState) String() string {
	if s == InFlight {
		return "in flight"
	}
	return "idle"
}

// Generator produces a palette for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (palette.Palette, error)
}

// CredentialStore reads and replaces the color service credential. Saving
// an empty value removes it.
type CredentialStore interface {
	Credential() string
	Save(value string) error
}

// StudioOptions wires the studio to its collaborators. Generator and
// History are required.
type StudioOptions struct {
	Generator    Generator
	History      history.Collection
	Credentials  CredentialStore
	Copy         Copier
	Logger       *slog.Logger
	Version      string
	Placeholders []string
}

var examplePrompts = []string{
	"Ocean sunset",
	"Neon cyberpunk",
	"Forest morning",
	"Vintage cafe",
	"Pastel spring",
	"Summer beach",
	"Cozy autumn",
}

type focusArea int

const (
	focusPrompt focusArea = iota
	focusPalette
	focusHistory
	focusSettings
	focusConfirmClear
	focusHelp
)

type generatedMsg struct {
	palette palette.Palette
	err     error
}

type copiedMsg struct {
	hex string
	err error
}

type historyChangedMsg struct{}

var studioStyles = struct {
	topBar     lipgloss.Style
	card       lipgloss.Style
	activeCard lipgloss.Style
	statusBar  lipgloss.Style
	title      lipgloss.Style
	version    lipgloss.Style
	heading    lipgloss.Style
	muted      lipgloss.Style
	overlay    lipgloss.Style
}{
	topBar: lipgloss.NewStyle().
		Padding(0, 1).
		Align(lipgloss.Center),
	card: lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")),
	activeCard: lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(constants.Theme.PrimaryColor)),
	statusBar: lipgloss.NewStyle().
		Padding(0, 1),
	title: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
		Bold(true),
	version: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.TertiaryColor)),
	heading: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.SecondaryColor)).
		Bold(true).
		PaddingBottom(1),
	muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(constants.Theme.TertiaryColor)),
	overlay: lipgloss.NewStyle().
		Padding(1, 3).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(constants.Theme.PrimaryColor)),
}

// StudioModel is the interactive palette screen: prompt, current palette,
// history, settings and help.
type StudioModel struct {
	options StudioOptions

	prompt   textinput.Model
	keyInput textinput.Model
	spinner  spinner.Model

	state  RequestState
	cancel context.CancelFunc

	current  *palette.Palette
	palettes []palette.Palette

	focus         focusArea
	returnFocus   focusArea
	colorCursor   int
	historyCursor int
	confirmYes    bool

	toast    *toast
	toastSeq int

	changes     chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()

	// UI components
	flexbox   *flexbox.FlexBox
	topBar    *flexbox.Cell
	leftCard  *flexbox.Cell
	rightCard *flexbox.Cell
	statusBar *flexbox.Cell
	width     int
	height    int
	help      string
}

// NewStudioModel creates the studio and subscribes it to history changes.
// Call Close once the program has exited.
func NewStudioModel(opts StudioOptions) (*StudioModel, error) {
	if opts.Generator == nil {
		return nil, fmt.Errorf("studio needs a generator")
	}
	if opts.History == nil {
		return nil, fmt.Errorf("studio needs a history")
	}
	if opts.Copy == nil {
		opts.Copy = SystemClipboard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.Placeholders) == 0 {
		opts.Placeholders = examplePrompts
	}

	prompt := textinput.New()
	prompt.Prompt = "› "
	prompt.PromptStyle = promptStyle
	prompt.TextStyle = inputStyle
	prompt.PlaceholderStyle = placeholderStyle
	prompt.Placeholder = fmt.Sprintf("Try %q", opts.Placeholders[rand.Intn(len(opts.Placeholders))])
	prompt.CharLimit = 200
	prompt.Focus()

	keyInput := textinput.New()
	keyInput.Prompt = "› "
	keyInput.PromptStyle = promptStyle
	keyInput.TextStyle = inputStyle
	keyInput.PlaceholderStyle = placeholderStyle
	keyInput.Placeholder = "sk-..."
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.CharLimit = 256

	topBar := flexbox.NewCell(1, 2).SetStyle(studioStyles.topBar)
	leftCard := flexbox.NewCell(3, 12).SetStyle(studioStyles.activeCard)
	rightCard := flexbox.NewCell(2, 12).SetStyle(studioStyles.card)
	statusBar := flexbox.NewCell(1, 1).SetStyle(studioStyles.statusBar)

	fb := flexbox.New(0, 0)
	fb.AddRows([]*flexbox.Row{
		fb.NewRow().AddCells(topBar),
		fb.NewRow().AddCells(leftCard, rightCard),
		fb.NewRow().AddCells(statusBar),
	})

	m := &StudioModel{
		options:  opts,
		prompt:   prompt,
		keyInput: keyInput,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(promptStyle),
		),
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		flexbox:   fb,
		topBar:    topBar,
		leftCard:  leftCard,
		rightCard: rightCard,
		statusBar: statusBar,
	}

	m.palettes = opts.History.List()
	m.unsubscribe = opts.History.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default: // a reload is already pending
		}
	})

	return m, nil
}

// Close stops listening for history changes and cancels any running request.
func (m *StudioModel) Close() {
	m.closeOnce.Do(func() {
		m.unsubscribe()
		m.cancelRequest()
		close(m.done)
	})
}

// State reports whether a generation is outstanding.
func (m *StudioModel) State() RequestState {
	return m.state
}

// Current returns the palette on display, if any.
func (m *StudioModel) Current() (palette.Palette, bool) {
	if m.current == nil {
		return palette.Palette{}, false
	}
	return *m.current, true
}

// CanSubmit reports whether enter in the prompt would start a generation.
func (m *StudioModel) CanSubmit() bool {
	return m.state == Idle && strings.TrimSpace(m.prompt.Value()) != ""
}

func (m *StudioModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}

func (m *StudioModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return historyChangedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Update handles UI state updates based on user input
func (m *StudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case generatedMsg:
		return m.handleGenerated(msg)
	case copiedMsg:
		if msg.err != nil {
			m.options.Logger.Warn("clipboard write failed", slog.String("error", msg.err.Error()))
			return m, m.showToast(toastError, "Failed to copy to clipboard")
		}
		return m, m.showToast(toastSuccess, fmt.Sprintf("Copied %s to clipboard", msg.hex))
	case historyChangedMsg:
		m.reloadHistory()
		return m, m.waitForChange()
	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil
	case spinner.TickMsg:
		if m.state != InFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateInputs(msg)
}

func (m *StudioModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case focusSettings:
		m.keyInput, cmd = m.keyInput.Update(msg)
	}
	return cmd
}

// handleWindowSize updates the UI layout based on window size
func (m *StudioModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.flexbox.SetWidth(msg.Width)
	m.flexbox.SetHeight(msg.Height)
	m.flexbox.ForceRecalculate()
	m.prompt.Width = max(10, m.leftCard.GetWidth()-10)

	if m.focus == focusHelp {
		m.help = renderHelp(m.width - 10)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *StudioModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancelRequest()
		return m, tea.Quit
	}

	switch m.focus {
	case focusHelp:
		m.setFocus(m.returnFocus)
		return m, nil
	case focusConfirmClear:
		return m.handleConfirmKey(msg)
	case focusSettings:
		return m.handleSettingsKey(msg)
	}

	key := msg.String()
	if key == "f1" || (key == "?" && m.focus != focusPrompt) {
		m.returnFocus = m.focus
		m.help = renderHelp(m.width - 10)
		m.setFocus(focusHelp)
		return m, nil
	}

	switch key {
	case "ctrl+s":
		return m.openSettings()
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusPalette:
		return m.handlePaletteKey(msg)
	case focusHistory:
		return m.handleHistoryKey(msg)
	default:
		return m.handlePromptKey(msg)
	}
}

func (m *StudioModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.submit()
	case tea.KeyEsc:
		if m.state == InFlight {
			m.cancelRequest()
			return m, nil
		}
		m.prompt.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// submit starts a generation for the current prompt, or does nothing when
// the prompt is blank or a request is already running.
func (m *StudioModel) submit() tea.Cmd {
	if !m.CanSubmit() {
		return nil
	}

	prompt := m.prompt.Value()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = InFlight
	m.options.Logger.Debug("generation started", slog.String("prompt", prompt))

	return tea.Batch(m.generateCmd(ctx, prompt), m.spinner.Tick)
}

func (m *StudioModel) generateCmd(ctx context.Context, prompt string) tea.Cmd {
	generator := m.options.Generator
	return func() tea.Msg {
		p, err := generator.Generate(ctx, prompt)
		return generatedMsg{palette: p, err: err}
	}
}

func (m *StudioModel) cancelRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *StudioModel) handleGenerated(msg generatedMsg) (tea.Model, tea.Cmd) {
	m.state = Idle
	m.cancelRequest()

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, m.showToast(toastInfo, "Generation cancelled")
		}
		m.options.Logger.Error("generation failed", slog.String("error", msg.err.Error()))
		return m, m.showToast(toastError, "Failed to generate color palette. Please try again.")
	}

	p := msg.palette
	m.current = &p
	m.colorCursor = 0

	if err := m.options.History.Add(p); err != nil {
		m.options.Logger.Error("saving palette failed", slog.String("error", err.Error()))
		return m, m.showToast(toastError, "Palette generated but not saved")
	}
	m.reloadHistory()
	return m, nil
}

func (m *StudioModel) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current == nil {
		m.setFocus(focusPrompt)
		return m, nil
	}
	colors := m.current.Colors
	if len(colors) == 0 {
		m.setFocus(focusPrompt)
		return m, nil
	}

	switch key := msg.String(); key {
	case "left", "h":
		if m.colorCursor > 0 {
			m.colorCursor--
		}
	case "right", "l":
		if m.colorCursor < len(colors)-1 {
			m.colorCursor++
		}
	case "enter", "c":
		return m, m.copyCmd(colors[m.colorCursor])
	case "esc":
		m.setFocus(focusPrompt)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(colors) {
				m.colorCursor = i
				return m, m.copyCmd(colors[i])
			}
		}
	}
	return m, nil
}

func (m *StudioModel) copyCmd(hex string) tea.Cmd {
	copyFn := m.options.Copy
	return func() tea.Msg {
		return copiedMsg{hex: hex, err: copyFn(hex)}
	}
}

func (m *StudioModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.palettes) == 0 {
		m.setFocus(focusPrompt)
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case "down", "j":
		if m.historyCursor < len(m.palettes)-1 {
			m.historyCursor++
		}
	case "enter":
		p := m.palettes[m.historyCursor]
		m.current = &p
		m.colorCursor = 0
		m.setFocus(focusPalette)
	case "d", "delete", "backspace":
		id := m.palettes[m.historyCursor].ID
		if err := m.options.History.Remove(id); err != nil {
			m.options.Logger.Error("removing palette failed", slog.String("id", id), slog.String("error", err.Error()))
			return m, m.showToast(toastError, "Could not delete palette")
		}
		m.reloadHistory()
	case "C":
		m.confirmYes = false
		m.returnFocus = focusHistory
		m.setFocus(focusConfirmClear)
	case "esc":
		m.setFocus(focusPrompt)
	}
	return m, nil
}

func (m *StudioModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.confirmYes = !m.confirmYes
		return m, nil
	case "y":
		m.confirmYes = true
	case "n", "esc":
		m.confirmYes = false
	case "enter":
	default:
		return m, nil
	}

	m.setFocus(m.returnFocus)
	if !m.confirmYes {
		return m, nil
	}
	if err := m.options.History.Clear(); err != nil {
		m.options.Logger.Error("clearing history failed", slog.String("error", err.Error()))
		return m, m.showToast(toastError, "Could not clear history")
	}
	m.reloadHistory()
	return m, m.showToast(toastInfo, "History cleared")
}

func (m *StudioModel) openSettings() (tea.Model, tea.Cmd) {
	if m.options.Credentials == nil {
		return m, m.showToast(toastError, "Settings are unavailable: no keyring")
	}
	m.returnFocus = m.focus
	m.keyInput.Reset()
	m.setFocus(focusSettings)
	return m, textinput.Blink
}

func (m *StudioModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(m.returnFocus)
		return m, nil
	case "ctrl+d":
		return m, m.saveCredential("")
	case "enter":
		return m, m.saveCredential(m.keyInput.Value())
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m *StudioModel) saveCredential(value string) tea.Cmd {
	m.setFocus(m.returnFocus)
	value = strings.TrimSpace(value)

	if err := m.options.Credentials.Save(value); err != nil {
		m.options.Logger.Error("saving credential failed", slog.String("error", err.Error()))
		return m.showToast(toastError, "Could not save API key")
	}
	if value == "" {
		return m.showToast(toastInfo, "API key removed, using built-in themes")
	}
	return m.showToast(toastSuccess, "API key saved")
}

// setFocus moves keyboard focus, keeping the text inputs' cursors in sync.
func (m *StudioModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusPrompt {
		m.prompt.Focus()
	} else {
		m.prompt.Blur()
	}
	if f == focusSettings {
		m.keyInput.Focus()
	} else {
		m.keyInput.Blur()
	}
}

func (m *StudioModel) cycleFocus(step int) {
	order := []focusArea{focusPrompt}
	if m.current != nil {
		order = append(order, focusPalette)
	}
	if len(m.palettes) > 0 {
		order = append(order, focusHistory)
	}

	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + step + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *StudioModel) reloadHistory() {
	m.palettes = m.options.History.List()
	if m.historyCursor >= len(m.palettes) {
		m.historyCursor = max(0, len(m.palettes)-1)
	}
	if m.focus == focusHistory && len(m.palettes) == 0 {
		m.setFocus(focusPrompt)
	}
}

func (m *StudioModel) showToast(level toastLevel, text string) tea.Cmd {
	m.toastSeq++
	m.toast = &toast{id: m.toastSeq, level: level, text: text}
	return expireToast(m.toastSeq)
}
