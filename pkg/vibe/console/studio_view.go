package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *StudioModel) View() string {
	switch m.focus {
	case focusHelp:
		return m.overlay(m.help + "\n" + hintStyle.Render("press any key to close"))
	case focusSettings:
		return m.overlay(m.settingsView())
	case focusConfirmClear:
		return m.overlay(m.confirmView())
	}

	if m.width == 0 || m.height == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.headerView(),
			m.promptView(0),
			m.historyView(0, 0),
			m.statusView(),
		)
	}

	m.topBar.SetContent(m.headerView())

	if m.focus == focusHistory {
		m.leftCard.SetStyle(studioStyles.card)
		m.rightCard.SetStyle(studioStyles.activeCard)
	} else {
		m.leftCard.SetStyle(studioStyles.activeCard)
		m.rightCard.SetStyle(studioStyles.card)
	}

	// card frame: border plus horizontal padding on both sides
	leftInner := m.leftCard.GetWidth() - 6
	rightInner := m.rightCard.GetWidth() - 6
	m.leftCard.SetContent(m.promptView(leftInner))
	m.rightCard.SetContent(m.historyView(rightInner, m.rightCard.GetHeight()-6))
	m.statusBar.SetContent(m.statusView())

	return m.flexbox.Render()
}

func (m *StudioModel) overlay(content string) string {
	box := studioStyles.overlay.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *StudioModel) headerView() string {
	title := studioStyles.title.Render("Vibe Palette")
	if m.options.Version != "" {
		title += " " + studioStyles.version.Render("v"+m.options.Version)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		title,
		studioStyles.muted.Render("Describe a vibe, mood, or theme to get a matching color palette"),
	)
}

func (m *StudioModel) promptView(width int) string {
	var b strings.Builder

	b.WriteString(studioStyles.heading.Render("Prompt"))
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")

	switch {
	case m.state == InFlight:
		b.WriteString(m.spinner.View() + " " + itemStyle.Render("Generating palette...") +
			"  " + hintStyle.Render("esc to cancel"))
	case m.CanSubmit():
		b.WriteString(hintStyle.Render("enter to generate"))
	default:
		b.WriteString(hintStyle.Render("type a prompt to generate"))
	}
	b.WriteString("\n\n")

	if m.current == nil {
		b.WriteString(studioStyles.muted.Render("No palette yet."))
		return b.String()
	}

	b.WriteString(studioStyles.heading.Render(Truncate(fmt.Sprintf("Palette: %s", m.current.Prompt), max(10, width))))
	b.WriteString("\n")

	options := DefaultSwatchOptions()
	if n := len(m.current.Colors); width > 0 && n > 0 {
		options.Width = max(7, width/n)
	}
	if m.focus == focusPalette {
		options.Selected = m.colorCursor
	}
	b.WriteString(RenderSwatches(m.current.Colors, options))
	b.WriteString("\n")
	if m.focus == focusPalette {
		b.WriteString(hintStyle.Render("←/→ pick • enter/c copy • 1-5 copy directly"))
	} else {
		b.WriteString(hintStyle.Render("tab to pick and copy colors"))
	}
	return b.String()
}

func (m *StudioModel) historyView(width, height int) string {
	var b strings.Builder
	b.WriteString(studioStyles.heading.Render(fmt.Sprintf("History (%d)", len(m.palettes))))
	b.WriteString("\n")

	if len(m.palettes) == 0 {
		b.WriteString(studioStyles.muted.Render("Generated palettes appear here."))
		return b.String()
	}

	visible := len(m.palettes)
	if height > 0 {
		visible = max(1, min(visible, height-2))
	}
	start := 0
	if m.historyCursor >= visible {
		start = m.historyCursor - visible + 1
	}

	for i := start; i < start+visible && i < len(m.palettes); i++ {
		p := m.palettes[i]
		strip := RenderStrip(p.Colors, 2)
		label := p.Prompt
		if width > 0 {
			label = Truncate(label, max(4, width-lipgloss.Width(strip)-4))
		}

		cursor := "  "
		style := unselectedStyle
		if i == m.historyCursor && m.focus == focusHistory {
			cursor = selectedItemStyle.Render("› ")
			style = selectedItemStyle
		}
		b.WriteString(cursor + strip + " " + style.Render(label) + "\n")
	}

	if m.focus == focusHistory {
		p := m.palettes[m.historyCursor]
		b.WriteString("\n" + studioStyles.muted.Render(p.CreatedAt().Format("Jan 2 15:04")))
		b.WriteString("\n" + hintStyle.Render("enter show • d delete • C clear all"))
	}
	return b.String()
}

func (m *StudioModel) statusView() string {
	if m.toast != nil {
		return m.toast.View()
	}
	return hintStyle.Render("tab focus • ctrl+s settings • f1 help • ctrl+c quit")
}

func (m *StudioModel) settingsView() string {
	var b strings.Builder
	b.WriteString(studioStyles.title.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(itemStyle.Render("Color service API key"))
	b.WriteString("\n")

	if current := m.options.Credentials.Credential(); current != "" {
		b.WriteString(studioStyles.muted.Render("current: " + Mask(current)))
	} else {
		b.WriteString(studioStyles.muted.Render("not set, palettes come from built-in themes"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter save • ctrl+d remove key • esc cancel"))
	return b.String()
}

func (m *StudioModel) confirmView() string {
	options := DefaultYesNoOptions()
	options.Prompt = fmt.Sprintf("Clear all %d saved palettes?", len(m.palettes))
	return renderYesNo(options, m.confirmYes) + "\n\n" +
		hintStyle.Render("←/→ to move, y/n, enter to select, esc to cancel")
}
