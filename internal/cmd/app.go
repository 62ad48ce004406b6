// Package cmd implements the reis command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"reis/internal/action"
	"reis/internal/config"
	"reis/internal/failure"
	"reis/internal/kvstorage/filesystem"
	"reis/internal/retry"
)

// ErrReported is returned when a failure has already been printed, so
// main only needs to set the exit status.
var ErrReported = errors.New("failure reported")

// App holds application state shared across commands.
type App struct {
	DBPath      string
	ConfigStore config.Store
	Clipboard   action.Copier
	Log         zerolog.Logger
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	JSON        bool   // output in JSON format
	Color       string // auto, always or never
}

// openStore loads the database for one command. The caller must Close it.
func (a *App) openStore() (*filesystem.Store, error) {
	return filesystem.Open(a.DBPath, filesystem.Options{Logger: &a.Log})
}

// prompter asks questions on Out, or on Err in JSON mode so that stdout
// stays machine readable.
func (a *App) prompter() retry.Prompter {
	out := a.Out
	if a.JSON {
		out = a.Err
	}
	return &retry.LinePrompter{In: a.In, Out: out}
}

// fail prints a failure line, logs the underlying error as the diagnostic
// line and returns ErrReported.
func (a *App) fail(err error) error {
	f := failure.Classify(err)
	a.Log.Error().Err(f.Err).Str("kind", f.Kind.String()).Msg("command failed")
	if a.JSON {
		writeJSON(a.Out, resultJSON{Status: "failure", Kind: f.Kind.String(), Message: f.Message})
	} else {
		fmt.Fprintln(a.Out, a.FailColor(f.Message))
	}
	return ErrReported
}

// SuccessColor returns the string wrapped in green ANSI codes if colour is enabled.
func (a *App) SuccessColor(s string) string {
	return a.colorize(s, "\033[32m")
}

// WarnColor returns the string wrapped in orange ANSI codes if colour is enabled.
func (a *App) WarnColor(s string) string {
	return a.colorize(s, "\033[38;5;214m")
}

// FailColor returns the string wrapped in red ANSI codes if colour is enabled.
func (a *App) FailColor(s string) string {
	return a.colorize(s, "\033[31m")
}

func (a *App) colorize(s, code string) string {
	if a.useColor() {
		return code + s + "\033[0m"
	}
	return s
}

func (a *App) useColor() bool {
	switch a.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return true
	}
	return false
}
