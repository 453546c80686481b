package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ImGajeed76/vibepalette/internal/ui"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/console"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/urfave/cli/v2"
)

var copyToClipboard console.Copier = console.SystemClipboard

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "generate a palette for a prompt",
		ArgsUsage: "PROMPT...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the palette as JSON"},
			&cli.BoolFlag{Name: "no-save", Usage: "do not add the palette to the history"},
		},
		Action: func(c *cli.Context) error {
			prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if prompt == "" {
				return fmt.Errorf("a prompt is required, e.g. %s generate ocean sunset", c.App.Name)
			}

			app, err := openWorkspace(c)
			if err != nil {
				return err
			}
			defer app.Close()

			p, source, err := app.Resolver.GenerateWithSource(c.Context, prompt)
			if err != nil {
				return err
			}

			if !c.Bool("no-save") {
				if err := app.History.Add(p); err != nil {
					return fmt.Errorf("failed to save palette: %w", err)
				}
			}

			if c.Bool("json") {
				return writeJSON(c.App.Writer, p)
			}
			printPalette(c.App.Writer, p)
			ui.Status(c.App.Writer, ui.Success, fmt.Sprintf("Generated palette %s from %s colors", p.ID, source))
			return nil
		},
	}
}

func newHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "show and manage saved palettes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved palettes, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print the history as JSON"},
				},
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					palettes := app.History.List()
					if c.Bool("json") {
						return writeJSON(c.App.Writer, palettes)
					}
					if len(palettes) == 0 {
						ui.Status(c.App.Writer, ui.Info, "No saved palettes yet")
						return nil
					}
					for _, p := range palettes {
						printPalette(c.App.Writer, p)
					}
					return nil
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "remove one palette",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("a palette id is required")
					}

					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					if _, ok := app.History.Get(id); !ok {
						ui.Status(c.App.Writer, ui.Warning, fmt.Sprintf("No palette with id %s", id))
						return nil
					}
					if err := app.History.Remove(id); err != nil {
						return fmt.Errorf("failed to remove palette: %w", err)
					}
					ui.Status(c.App.Writer, ui.Success, fmt.Sprintf("Removed palette %s", id))
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "remove every saved palette",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation"},
				},
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					if !c.Bool("yes") {
						options := console.DefaultYesNoOptions()
						options.Prompt = fmt.Sprintf("Clear all %d saved palettes?", len(app.History.List()))
						options.DefaultYes = false
						ok, err := console.YesNo(options)
						if errors.Is(err, console.ErrCancelled) || (err == nil && !ok) {
							ui.Status(c.App.Writer, ui.Info, "History kept")
							return nil
						}
						if err != nil {
							return err
						}
					}

					if err := app.History.Clear(); err != nil {
						return fmt.Errorf("failed to clear history: %w", err)
					}
					ui.Status(c.App.Writer, ui.Success, "History cleared")
					return nil
				},
			},
			{
				Name:  "pick",
				Usage: "choose a saved palette and copy one of its colors",
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					palettes := app.History.List()
					if len(palettes) == 0 {
						ui.Status(c.App.Writer, ui.Info, "No saved palettes yet")
						return nil
					}

					items := make([]string, len(palettes))
					for i, p := range palettes {
						items[i] = console.RenderStrip(p.Colors, 2) + " " + p.Prompt
					}
					idx, err := console.ListSelect(items, console.ListSelectOptions{Title: "Pick a palette:"})
					if err != nil {
						return ignoreCancel(err)
					}

					chosen := palettes[idx]
					swatches := make([]string, len(chosen.Colors))
					for i, hex := range chosen.Colors {
						swatches[i] = console.RenderStrip([]string{hex}, 4) + " " + strings.ToUpper(hex)
					}
					idx, err = console.ListSelect(swatches, console.ListSelectOptions{Title: "Copy which color?"})
					if err != nil {
						return ignoreCancel(err)
					}

					return copyColor(c.App.Writer, chosen.Colors[idx])
				},
			},
		},
	}
}

func newKeyCommand() *cli.Command {
	return &cli.Command{
		Name:  "key",
		Usage: "manage the color service API key",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "store the API key in the system keyring",
				ArgsUsage: "[VALUE]",
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					if value := c.Args().First(); value != "" {
						if err := app.Credential.Save(value); err != nil {
							return fmt.Errorf("failed to save key: %w", err)
						}
					} else {
						options := console.DefaultInputOptions()
						options.Prompt = "API key:"
						options.Placeholder = "sk-..."
						options.Mask = true
						options.Required = true
						if _, err := app.Credential.Config.SetFromInput(app.Credential.Key, options); err != nil {
							return ignoreCancel(err)
						}
					}
					ui.Status(c.App.Writer, ui.Success, "API key saved")
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "remove the API key from the keyring",
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					if err := app.Credential.Save(""); err != nil {
						return fmt.Errorf("failed to remove key: %w", err)
					}
					ui.Status(c.App.Writer, ui.Success, "API key removed, using built-in themes")
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "show the masked API key and where it comes from",
				Action: func(c *cli.Context) error {
					app, err := openWorkspace(c)
					if err != nil {
						return err
					}
					defer app.Close()

					value := app.Credential.Credential()
					if value == "" {
						ui.Status(c.App.Writer, ui.Info, "No API key set, palettes come from built-in themes")
						return nil
					}
					source := "keyring"
					if !app.Credential.Config.Exists(app.Credential.Key) {
						source = "$" + app.Credential.EnvVar
					}
					ui.Item(c.App.Writer, "key", console.Mask(value))
					ui.Item(c.App.Writer, "source", source)
					return nil
				},
			},
		},
	}
}

func printPalette(w io.Writer, p palette.Palette) {
	ui.Section(w, p.Prompt)
	fmt.Fprintln(w, "  "+console.RenderStrip(p.Colors, 4))
	hexes := make([]string, len(p.Colors))
	for i, hex := range p.Colors {
		hexes[i] = strings.ToUpper(hex)
	}
	ui.Item(w, "colors", strings.Join(hexes, " "))
	ui.Item(w, "id", p.ID)
	ui.Item(w, "created", p.CreatedAt().Format("2006-01-02 15:04"))
}

func copyColor(w io.Writer, hex string) error {
	if err := copyToClipboard(hex); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	ui.Status(w, ui.Success, fmt.Sprintf("Copied %s to clipboard", hex))
	return nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, console.ErrCancelled) {
		return nil
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
