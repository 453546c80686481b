package console

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListSelectOptions allows customization of the list select behavior
type ListSelectOptions struct {
	Title string
}

// DefaultListSelectOptions returns the default options
func DefaultListSelectOptions() ListSelectOptions {
	return ListSelectOptions{
		Title: "Select an option:",
	}
}

// ListSelect takes a slice of strings and returns the selected index.
// Items may carry ANSI styling, such as rendered swatches.
func ListSelect(items []string, opts ...ListSelectOptions) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items provided")
	}

	options := DefaultListSelectOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	p := tea.NewProgram(newListModel(items, options))
	m, err := p.Run()
	if err != nil {
		return -1, err
	}

	finalModel := m.(listModel)
	if finalModel.quitted {
		return -1, ErrCancelled
	}
	return finalModel.selected(), nil
}

type listModel struct {
	items    []string
	cursor   int
	offset   int
	maxItems int
	options  ListSelectOptions
	quitted  bool
}

func newListModel(items []string, options ListSelectOptions) listModel {
	return listModel{
		items:    items,
		options:  options,
		maxItems: len(items),
	}
}

func (m listModel) selected() int {
	return m.cursor + m.offset
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.maxItems = max(1, min(len(m.items), msg.Height-4))
		if m.cursor >= m.maxItems {
			m.offset += m.cursor - m.maxItems + 1
			m.cursor = m.maxItems - 1
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitted = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.selected() >= len(m.items)-1 {
				break
			}
			if m.cursor < m.maxItems-1 {
				m.cursor++
			} else {
				m.offset++
			}
		}
	}

	return m, nil
}

func (m listModel) View() string {
	var builder strings.Builder

	builder.WriteString(promptStyle.Render(m.options.Title))
	builder.WriteString("\n\n")

	end := min(len(m.items), m.offset+m.maxItems)
	for i, item := range m.items[m.offset:end] {
		if i == m.cursor {
			builder.WriteString(selectedItemStyle.Render("▸ ") + item)
		} else {
			builder.WriteString("  " + item)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(hintStyle.Render("↑/↓ to move • enter to select • esc to cancel"))

	return builder.String()
}
