package console

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# Vibe Palette

Describe a vibe, mood or theme and get five matching colors.

## Prompt

| Key | Action |
| --- | --- |
| enter | generate a palette |
| esc | cancel a running generation |
| tab | move to the palette, then the history |
| ctrl+s | settings (color service key) |
| f1, ? | this help (? works outside the prompt) |
| ctrl+c | quit |

## Palette

| Key | Action |
| --- | --- |
| ←/→ | pick a color |
| 1-5 | copy that color |
| enter, c | copy the picked color |

## History

| Key | Action |
| --- | --- |
| ↑/↓ | move |
| enter | show the palette |
| d | delete the entry |
| C | clear all history |

Without a service key, palettes come from built-in themes such as
*ocean*, *sunset*, *forest*, *pastel*, *neon* and *vintage*.
`

// renderHelp renders the key reference for the given wrap width.
func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, width)),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
