// Package vibe assembles the palette tool from its parts: settings, the
// on-disk history, the keyring credential and the palette resolver.
package vibe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	constants "github.com/ImGajeed76/vibepalette/pkg"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/config"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/console"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/history"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/resolver"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/storage"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyEnv is read when the keyring holds no credential.
const APIKeyEnv = "OPENAI_API_KEY"

// App is an opened palette workspace.
type App struct {
	Settings   *config.Settings
	Logger     *slog.Logger
	Store      *storage.FileStore
	History    *history.Store
	Credential config.Credential
	Resolver   *resolver.Resolver

	logFile io.Closer
}

// Open validates settings and builds an App on top of them. Close releases
// the log file.
func Open(settings *config.Settings) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger, logFile, err := NewLogger(settings.LogFile, settings.LogLevel)
	if err != nil {
		return nil, err
	}

	storeOptions := storage.DefaultFileOptions()
	storeOptions.Logger = logger
	store, err := storage.NewFileStore(settings.DataDir, storeOptions)
	if err != nil {
		closeQuietly(logFile)
		return nil, err
	}

	keys, err := config.New(constants.KeyringService)
	if err != nil {
		closeQuietly(logFile)
		return nil, err
	}
	credential := config.Credential{Config: keys, Key: constants.APIKeyName, EnvVar: APIKeyEnv}

	openai := resolver.DefaultOpenAIOptions()
	openai.URL = settings.APIURL
	openai.Model = settings.Model
	openai.Timeout = settings.RequestTimeout

	res, err := resolver.New(resolver.Options{
		Local:       resolver.NewLocalGenerator(settings.FallbackDelay, nil),
		Remote:      resolver.NewOpenAIClient(openai),
		Credentials: credential,
		Logger:      logger,
	})
	if err != nil {
		closeQuietly(logFile)
		return nil, err
	}

	logger.Debug("workspace opened",
		slog.String("data_dir", store.Dir()),
		slog.String("model", settings.Model))

	return &App{
		Settings:   settings,
		Logger:     logger,
		Store:      store,
		History:    history.New(store, logger),
		Credential: credential,
		Resolver:   res,
		logFile:    logFile,
	}, nil
}

// Close flushes and closes the log file, if any.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	return a.logFile.Close()
}

// Run shows the interactive studio until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Store.Listen(ctx); err != nil {
		// history still works, other processes' changes just go unnoticed
		a.Logger.Warn("storage watcher unavailable", slog.String("error", err.Error()))
	}

	m, err := console.NewStudioModel(console.StudioOptions{
		Generator:   a.Resolver,
		History:     a.History,
		Credentials: a.Credential,
		Copy:        console.SystemClipboard,
		Logger:      a.Logger,
		Version:     constants.Version,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("studio: %w", err)
	}
	return nil
}

// NewLogger returns a text logger appending to path at the given level. An
// empty path discards everything, since the studio owns the terminal.
func NewLogger(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("app", constants.AppName)), f, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
