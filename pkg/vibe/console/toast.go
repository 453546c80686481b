package console

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const toastDuration = 3 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toast is a transient notice shown in the status bar.
type toast struct {
	id    int
	level toastLevel
	text  string
}

type toastExpiredMsg struct{ id int }

func (t toast) View() string {
	switch t.level {
	case toastSuccess:
		return successStyle.Render("✔ " + t.text)
	case toastError:
		return errorStyle.Render("✖ " + t.text)
	default:
		return itemStyle.Render("ℹ " + t.text)
	}
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
