// Package resolver turns a free-text prompt into a palette, asking the color
// service when a credential is configured and falling back to the local theme
// table whenever the service cannot deliver a well-formed palette.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
)

// ErrEmptyPrompt is returned for blank prompts; nothing is generated.
var ErrEmptyPrompt = errors.New("prompt cannot be empty")

// Source names where a palette's colors came from.
type Source string

const (
	SourceService Source = "service"
	SourceLocal   Source = "local"
)

// LocalColors generates colors without external help.
type LocalColors interface {
	Colors(ctx context.Context, prompt string) ([]string, error)
}

// RemoteColors asks an external service for colors.
type RemoteColors interface {
	Colors(ctx context.Context, prompt, credential string) ([]string, error)
}

// CredentialSource yields the service credential, "" when none is set. It is
// consulted on every call so a newly saved key applies immediately.
type CredentialSource interface {
	Credential() string
}

// StaticCredential is a fixed credential.
type StaticCredential string

func (s StaticCredential) Credential() string { return string(s) }

// Resolver produces palettes.
type Resolver struct {
	local       LocalColors
	remote      RemoteColors
	credentials CredentialSource
	logger      *slog.Logger
	now         func() time.Time
}

// Options configures a Resolver. Only Local is required.
type Options struct {
	Local       LocalColors
	Remote      RemoteColors
	Credentials CredentialSource
	Logger      *slog.Logger
	Now         func() time.Time
}

func New(opts Options) (*Resolver, error) {
	if opts.Local == nil {
		return nil, fmt.Errorf("resolver needs a local generator")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Resolver{
		local:       opts.Local,
		remote:      opts.Remote,
		credentials: opts.Credentials,
		logger:      opts.Logger,
		now:         opts.Now,
	}, nil
}

// Generate returns a new palette for prompt. Service failures of any kind
// are logged and answered from the local theme table; an error comes back
// only for a blank prompt or when local generation fails too.
func (r *Resolver) Generate(ctx context.Context, prompt string) (palette.Palette, error) {
	p, _, err := r.GenerateWithSource(ctx, prompt)
	return p, err
}

// GenerateWithSource is Generate that also reports which path produced the
// colors.
func (r *Resolver) GenerateWithSource(ctx context.Context, prompt string) (palette.Palette, Source, error) {
	if strings.TrimSpace(prompt) == "" {
		return palette.Palette{}, "", ErrEmptyPrompt
	}

	if credential := r.credential(); credential != "" && r.remote != nil {
		colors, err := r.remote.Colors(ctx, prompt, credential)
		if err == nil {
			p := palette.New(prompt, colors, r.now())
			r.logger.Info("palette generated",
				slog.String("id", p.ID), slog.String("source", string(SourceService)))
			return p, SourceService, nil
		}
		r.logger.Warn("color service failed, using local themes",
			slog.String("prompt", prompt), slog.String("error", err.Error()))
	}

	colors, err := r.local.Colors(ctx, prompt)
	if err != nil {
		r.logger.Error("palette generation failed",
			slog.String("prompt", prompt), slog.String("error", err.Error()))
		return palette.Palette{}, "", fmt.Errorf("generate palette: %w", err)
	}

	p := palette.New(prompt, colors, r.now())
	r.logger.Info("palette generated",
		slog.String("id", p.ID), slog.String("source", string(SourceLocal)))
	return p, SourceLocal, nil
}

func (r *Resolver) credential() string {
	if r.credentials == nil {
		return ""
	}
	return strings.TrimSpace(r.credentials.Credential())
}
