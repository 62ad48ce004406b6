package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"reis/internal/config"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage reis configuration settings.

Settings live in a YAML file (REIS_CONFIG, or reis/config.yaml in the
user config directory). Flags and REIS_* environment variables
override the file.

Known keys:
  database.path   database file (default reis.db)
  log.level       diagnostic log level (default warn)
  output.color    auto, always or never (default auto)

Subcommands:
  get       Get a configuration value
  set       Set a configuration value
  list      List all configuration values
  unset     Remove a configuration value
  validate  Validate configuration`,
	}

	cmd.AddCommand(newConfigGetCmd(provider))
	cmd.AddCommand(newConfigSetCmd(provider))
	cmd.AddCommand(newConfigListCmd(provider))
	cmd.AddCommand(newConfigUnsetCmd(provider))
	cmd.AddCommand(newConfigValidateCmd(provider))

	return cmd
}

// configStore returns the config store of the current app.
func configStore(provider *AppProvider) (*App, config.Store, error) {
	app, err := provider.Get()
	if err != nil {
		return nil, nil, err
	}
	if app.ConfigStore == nil {
		return nil, nil, errors.New("no config store available")
	}
	return app, app.ConfigStore, nil
}

// newConfigGetCmd creates the "config get" subcommand.
func newConfigGetCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get the value of a configuration key.

Prints the bare value if the key is set, or "key (not set)" if missing.

Examples:
  reis config get database.path
  reis config get log.level`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := configStore(provider)
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := store.Get(key)

			if app.JSON {
				writeJSON(app.Out, map[string]interface{}{
					"key":   key,
					"value": value,
					"set":   ok,
				})
				return nil
			}

			if ok {
				fmt.Fprintln(app.Out, value)
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}
}

// newConfigSetCmd creates the "config set" subcommand.
func newConfigSetCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration key to a value and save it to the config file.

Only known keys are accepted.

Examples:
  reis config set database.path ~/notes.db
  reis config set output.color never`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := configStore(provider)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := config.ValidateValue(key, value); err != nil {
				return err
			}
			if err := store.Set(key, value); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}

			if app.JSON {
				writeJSON(app.Out, map[string]string{"key": key, "value": value})
				return nil
			}

			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// newConfigListCmd creates the "config list" subcommand.
func newConfigListCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration key-value pairs, defaults included.

Entries are sorted alphabetically by key.

Examples:
  reis config list
  reis config list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := configStore(provider)
			if err != nil {
				return err
			}

			all := store.All()
			if app.JSON {
				writeJSON(app.Out, all)
				return nil
			}

			if len(all) == 0 {
				fmt.Fprintln(app.Out, "No configuration set")
				return nil
			}

			fmt.Fprintln(app.Out, "Configuration:")
			for _, k := range sortedKeys(all) {
				fmt.Fprintf(app.Out, "  %s = %s\n", k, all[k])
			}
			return nil
		},
	}
}

// newConfigUnsetCmd creates the "config unset" subcommand.
func newConfigUnsetCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Long: `Remove a configuration key from the config file.

The key is removed regardless of whether it was set. Known keys fall
back to their defaults on the next run.

Examples:
  reis config unset database.path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := configStore(provider)
			if err != nil {
				return err
			}

			key := args[0]
			if err := store.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				writeJSON(app.Out, map[string]string{"key": key})
				return nil
			}

			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}
}

// newConfigValidateCmd creates the "config validate" subcommand.
func newConfigValidateCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Check that every known key in the config file has a valid value.

Examples:
  reis config validate
  reis config validate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := configStore(provider)
			if err != nil {
				return err
			}

			all := store.All()
			issues := make([]string, 0)
			for _, key := range sortedKeys(all) {
				if !config.IsKnownKey(key) {
					continue
				}
				if err := config.ValidateValue(key, all[key]); err != nil {
					issues = append(issues, err.Error())
				}
			}

			if app.JSON {
				writeJSON(app.Out, map[string]interface{}{
					"valid":  len(issues) == 0,
					"issues": issues,
				})
				return nil
			}

			if len(issues) == 0 {
				fmt.Fprintln(app.Out, "Configuration is valid.")
				return nil
			}

			fmt.Fprintln(app.Out, "Configuration errors:")
			for _, msg := range issues {
				fmt.Fprintf(app.Out, "  %s\n", msg)
			}
			return fmt.Errorf("configuration has %d error(s)", len(issues))
		},
	}
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
