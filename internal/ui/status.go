// Package ui prints styled status lines for the non-interactive commands.
// Output honors NO_COLOR through fatih/color.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Warning Level = "warning"
	Info    Level = "info"
)

var (
	clrDim     = color.New(color.FgHiBlack)
	clrSubtle  = color.New(color.FgWhite)
	clrAccent  = color.New(color.FgMagenta, color.Bold)
	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)
)

// Status writes a single status message with an icon for its level.
func Status(w io.Writer, level Level, message string) {
	var icon, styled string

	switch level {
	case Success:
		icon = clrSuccess.Sprint("✔")
		styled = clrSuccess.Sprint(message)
	case Error:
		icon = clrError.Sprint("✖")
		styled = clrError.Sprint(message)
	case Warning:
		icon = clrWarning.Sprint("⚠")
		styled = clrWarning.Sprint(message)
	case Info:
		icon = clrInfo.Sprint("ℹ")
		styled = clrSubtle.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styled = clrSubtle.Sprint(message)
	}

	fmt.Fprintf(w, "%s  %s\n", icon, styled)
}

// Section writes a header line.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s %s %s\n",
		clrDim.Sprint("──"),
		clrAccent.Sprint(title),
		clrDim.Sprint(strings.Repeat("─", max(3, 40-len(title)))))
}

// Item writes an indented label and value.
func Item(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", clrDim.Sprint(label+":"), clrSubtle.Sprint(value))
}

// Muted formats secondary text.
func Muted(format string, a ...any) string {
	return clrDim.Sprintf(format, a...)
}
