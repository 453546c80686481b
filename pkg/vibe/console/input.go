package console

import (
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a prompt with esc or ctrl+c.
var ErrCancelled = errors.New("input cancelled")

// InputOptions allows customization of the input behavior
type InputOptions struct {
	Prompt      string
	Regex       string
	RegexError  string // Custom error message for regex validation
	Default     string
	Placeholder string
	CharLimit   int
	Width       int
	Required    bool // If true, empty input is not allowed
	Mask        bool // Hide typed characters, for secrets
	Hint        string
}

// DefaultInputOptions returns the default options
func DefaultInputOptions() InputOptions {
	return InputOptions{
		Prompt:     "Enter value:",
		CharLimit:  156,
		Width:      40,
		Required:   false,
		RegexError: "Input format is invalid",
		Hint:       "(enter to confirm, esc to cancel)",
	}
}

// Input takes a prompt and optional options, returns the validated user input
func Input(opts ...InputOptions) (string, error) {
	options := DefaultInputOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	p := tea.NewProgram(newInputModel(options))
	m, err := p.Run()
	if err != nil {
		return "", err
	}

	finalModel := m.(inputModel)
	if finalModel.quitted {
		return "", ErrCancelled
	}
	return finalModel.textInput.Value(), nil
}

type inputModel struct {
	textInput textinput.Model
	options   InputOptions
	regex     *regexp.Regexp
	quitted   bool
}

func newInputModel(options InputOptions) inputModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = options.CharLimit
	ti.Width = options.Width
	ti.Prompt = ""
	ti.TextStyle = inputStyle
	ti.PlaceholderStyle = placeholderStyle

	if options.Mask {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	if options.Default != "" {
		ti.SetValue(options.Default)
	}
	if options.Placeholder != "" {
		ti.Placeholder = options.Placeholder
	}

	var re *regexp.Regexp
	if options.Regex != "" {
		re = regexp.MustCompile(options.Regex)
	}

	return inputModel{
		textInput: ti,
		options:   options,
		regex:     re,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) validateInput(input string) (bool, string) {
	if m.options.Required && strings.TrimSpace(input) == "" {
		return false, "Input is required"
	}
	if m.regex != nil && input != "" && !m.regex.MatchString(input) {
		return false, m.options.RegexError
	}
	return true, ""
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if valid, _ := m.validateInput(m.textInput.Value()); valid {
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitted = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	var builder strings.Builder

	builder.WriteString(promptStyle.Render(m.options.Prompt))
	builder.WriteString("\n\n")
	builder.WriteString(m.textInput.View())
	builder.WriteString("\n\n")

	if valid, errMsg := m.validateInput(m.textInput.Value()); !valid && m.textInput.Value() != "" {
		builder.WriteString(errorStyle.Render(errMsg))
		builder.WriteString("\n")
	}

	builder.WriteString(hintStyle.Render(m.options.Hint))
	builder.WriteString("\n")

	return builder.String()
}

// Mask hides a secret for display, keeping only its last four characters.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("•", len(value))
	}
	return strings.Repeat("•", 8) + value[len(value)-4:]
}
