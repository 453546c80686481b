package console

import "github.com/atotto/clipboard"

// Copier writes text to the system clipboard.
type Copier func(text string) error

// SystemClipboard copies through the platform clipboard tool.
func SystemClipboard(text string) error {
	return clipboard.WriteAll(text)
}
