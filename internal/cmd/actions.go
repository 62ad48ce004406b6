package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reis/internal/action"
	"reis/internal/retry"
)

// actionCmdSpec describes the cobra command for one action kind.
type actionCmdSpec struct {
	kind    action.Kind
	args    string
	short   string
	example string
}

var (
	setSpec = actionCmdSpec{
		kind:  action.KindSet,
		args:  "<key> <value>",
		short: "Create a new entry",
		example: `  reis set name alice
  reis s name alice
  reis s offset -5     # keys and values may start with a dash`,
	}
	getSpec = actionCmdSpec{
		kind:  action.KindGet,
		args:  "<key>",
		short: "Print the value of an entry",
		example: `  reis get name
  reis g name -c    # also copy the value to the clipboard`,
	}
	putSpec = actionCmdSpec{
		kind:  action.KindPut,
		args:  "<key> <value>",
		short: "Update an existing entry",
		example: `  reis put name bob
  reis p name bob`,
	}
	delSpec = actionCmdSpec{
		kind:  action.KindDel,
		args:  "<key>",
		short: "Delete an entry",
		example: `  reis del name
  reis d name`,
	}
	getAllSpec = actionCmdSpec{
		kind:  action.KindGetAll,
		short: "Print every entry",
		example: `  reis getall
  reis ga`,
	}
	clearSpec = actionCmdSpec{
		kind:  action.KindClear,
		short: "Delete every entry",
		example: `  reis clr        # asks for confirmation
  reis c -f       # no confirmation`,
	}
)

// newActionCmd creates the command for one action. The long spelling is
// the command name and the short spelling its alias; the name actually
// typed is handed to action.FromTokens.
//
// cobra's flag parsing is off for action commands: the key and value are
// positional even when they start with a dash, and unknown flags or extra
// arguments are dropped instead of rejected. Global flags are picked out
// by applyGlobalFlags.
func newActionCmd(provider *AppProvider, spec actionCmdSpec) *cobra.Command {
	short, long := spec.kind.Names()
	use := long
	if spec.args != "" {
		use += " " + spec.args
	}

	cmd := &cobra.Command{
		Use:                use,
		Aliases:            []string{short},
		Short:              spec.short,
		Example:            spec.example,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := applyGlobalFlags(provider.Flags, args)
			if err != nil {
				return err
			}
			if wantsHelp(spec.kind, tokens) {
				return cmd.Help()
			}

			app, err := provider.Get()
			if err != nil {
				return err
			}
			return runAction(app, cmd.CalledAs(), tokens)
		},
	}

	// Registered for the help text only.
	for _, fs := range action.FlagSpecs {
		if fs.Flag == action.Help {
			continue
		}
		cmd.Flags().BoolP(fs.Name, fs.Shorthand, false, fs.Usage)
	}
	return cmd
}

// applyGlobalFlags sets the root's persistent flags found in tokens on
// flags and returns the remaining tokens. A "--" token is dropped and
// ends the scan, so later tokens are never taken as global flags.
func applyGlobalFlags(flags *pflag.FlagSet, tokens []string) ([]string, error) {
	if flags == nil {
		return tokens, nil
	}
	rest := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			return append(rest, tokens[i+1:]...), nil
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		f := flags.Lookup(name)
		if !strings.HasPrefix(tok, "--") || f == nil {
			rest = append(rest, tok)
			continue
		}
		if !hasValue {
			if f.NoOptDefVal != "" {
				value = f.NoOptDefVal
			} else if i+1 < len(tokens) {
				i++
				value = tokens[i]
			} else {
				return nil, fmt.Errorf("flag needs an argument: --%s", name)
			}
		}
		if err := flags.Set(name, value); err != nil {
			return nil, fmt.Errorf("invalid argument %q for --%s: %w", value, name, err)
		}
	}
	return rest, nil
}

// wantsHelp reports whether -h or --help was given in a flag position, or
// as the only token.
func wantsHelp(kind action.Kind, tokens []string) bool {
	isHelp := func(tok string) bool {
		f, ok := action.ParseFlag(tok)
		return ok && f == action.Help
	}
	if len(tokens) == 1 && isHelp(tokens[0]) {
		return true
	}
	n := min(kind.Arity(), len(tokens))
	return action.ParseFlags(tokens[n:]).Has(action.Help)
}

// runAction builds and runs one action, resolving confirmations, and
// prints exactly one outcome line.
func runAction(app *App, name string, tokens []string) error {
	a, err := action.FromTokens(name, tokens)
	if err != nil {
		return app.fail(err)
	}

	store, err := app.openStore()
	if err != nil {
		return app.fail(err)
	}

	exec := &action.Executor{Store: store, Clipboard: app.Clipboard, Logger: &app.Log}
	res, err := retry.Run(exec, a, app.prompter())
	closeErr := store.Close()
	if err != nil {
		return app.fail(err)
	}
	if closeErr != nil {
		return app.fail(closeErr)
	}

	app.report(res)
	return nil
}

// newCountCmd creates the count command.
func newCountCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			store, err := app.openStore()
			if err != nil {
				return app.fail(err)
			}
			n := store.Count()
			if err := store.Close(); err != nil {
				return app.fail(err)
			}

			if app.JSON {
				writeJSON(app.Out, resultJSON{Status: "success", Operation: "count", Count: &n})
				return nil
			}
			fmt.Fprintln(app.Out, n)
			return nil
		},
	}
}
