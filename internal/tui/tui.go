package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	Gateway Gateway
	Logger  *log.Logger
	// Glyphs is unicode or ascii; Theme is auto, light or dark.
	Glyphs string
	Theme  string
	// DumpState logs the JSON view state after every action.
	DumpState bool
}

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts.Gateway, opts.Logger, opts.DumpState)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
