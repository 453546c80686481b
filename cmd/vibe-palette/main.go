// Command vibe-palette turns a short description into a color palette.
// Without a subcommand it opens the interactive studio.
package main

import (
	"os"

	"github.com/ImGajeed76/vibepalette/internal/ui"
	constants "github.com/ImGajeed76/vibepalette/pkg"
	"github.com/ImGajeed76/vibepalette/pkg/vibe"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/config"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// a missing .env is normal
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		ui.Status(os.Stderr, ui.Error, err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    constants.AppName,
		Usage:   "describe a vibe, get a color palette",
		Version: constants.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "settings file (default: <data dir>/settings.yaml)",
				EnvVars: []string{"VIBE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory holding the palette history",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "append logs to this file",
			},
		},
		Action: func(c *cli.Context) error {
			app, err := openWorkspace(c)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Run(c.Context)
		},
		Commands: []*cli.Command{
			newGenerateCommand(),
			newHistoryCommand(),
			newKeyCommand(),
		},
	}
}

// openWorkspace loads settings from the data dir given by --data-dir, lets
// the global flags override them, and opens the workspace.
func openWorkspace(c *cli.Context) (*vibe.App, error) {
	settings, err := config.LoadSettings(c.String("config"), c.String("data-dir"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-file") {
		settings.LogFile = c.String("log-file")
	}
	return vibe.Open(settings)
}
