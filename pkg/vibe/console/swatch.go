package console

import (
	"strings"

	constants "github.com/ImGajeed76/vibepalette/internal"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/charmbracelet/lipgloss"
)

// SwatchOptions controls how a palette is drawn as color blocks.
type SwatchOptions struct {
	Width    int  // width of each block
	Height   int  // height of each block
	Selected int  // index of the highlighted color, -1 for none
	Labels   bool // print the hex code inside the block
}

// DefaultSwatchOptions returns the default options
func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{
		Width:    12,
		Height:   3,
		Selected: -1,
		Labels:   true,
	}
}

// LabelColor picks dark or light text for readability on hex.
func LabelColor(hex string) lipgloss.Color {
	if palette.IsLight(hex) {
		return lipgloss.Color(constants.Theme.DarkTextColor)
	}
	return lipgloss.Color(constants.Theme.LightTextColor)
}

// RenderSwatches draws colors side by side, with a marker row beneath the
// selected one.
func RenderSwatches(colors []string, opts ...SwatchOptions) string {
	options := DefaultSwatchOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Width < 1 {
		options.Width = 1
	}
	if options.Height < 1 {
		options.Height = 1
	}

	blocks := make([]string, 0, len(colors))
	markers := make([]string, 0, len(colors))
	for i, hex := range colors {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(LabelColor(hex)).
			Width(options.Width).
			Height(options.Height).
			Align(lipgloss.Center, lipgloss.Center)

		label := ""
		if options.Labels {
			label = strings.ToUpper(hex)
			if i == options.Selected {
				style = style.Bold(true).Underline(true)
			}
		}
		blocks = append(blocks, style.Render(label))

		marker := strings.Repeat(" ", options.Width)
		if i == options.Selected {
			marker = lipgloss.PlaceHorizontal(options.Width, lipgloss.Center, selectedItemStyle.Render("▲"))
		}
		markers = append(markers, marker)
	}

	swatches := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	if options.Selected < 0 || options.Selected >= len(colors) {
		return swatches
	}
	return lipgloss.JoinVertical(lipgloss.Left, swatches, strings.Join(markers, ""))
}

// RenderStrip draws a palette as a compact one-line strip.
func RenderStrip(colors []string, cellWidth int) string {
	var builder strings.Builder
	for _, hex := range colors {
		builder.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Render(strings.Repeat(" ", max(1, cellWidth))))
	}
	return builder.String()
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
