package console

import (
	constants "github.com/ImGajeed76/vibepalette/internal"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.PrimaryColor))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.ErrorColor)).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.SuccessColor))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.TertiaryColor)).
			Italic(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(constants.Theme.TertiaryColor))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.SecondaryColor))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(constants.Theme.PrimaryColor)).
				Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(constants.Theme.TertiaryColor))
)
