package cmd

import (
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reis/internal/clipboard"
	"reis/internal/config"
	"reis/internal/config/yamlstore"
	"reis/internal/logging"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	Flags      *pflag.FlagSet
	JSONOutput bool
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		In:  app.In,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	config.LoadDotEnv()

	paths, err := config.ResolvePaths()
	if err != nil {
		return nil, err
	}
	cfgStore, err := yamlstore.New(paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	config.ApplyDefaults(cfgStore)

	settings, err := config.Resolve(cfgStore, p.Flags)
	if err != nil {
		return nil, err
	}

	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	log, err := logging.New(errOut, settings.LogLevel)
	if err != nil {
		return nil, err
	}

	return &App{
		DBPath:      settings.DatabasePath,
		ConfigStore: cfgStore,
		Clipboard:   clipboard.System{},
		Log:         logging.Component(log, "reis"),
		In:          in,
		Out:         out,
		Err:         errOut,
		JSON:        p.JSONOutput,
		Color:       settings.Color,
	}, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	return rootCmd.Execute()
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reis",
		Short: "A tiny key-value store for your terminal",
		Long: `Reis keeps key-value pairs in a single text file (reis.db by default).

Every command loads the file, runs one action and writes the file back.
Actions that would overwrite a value or wipe the database ask for
confirmation first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	flags.String("db", "", "Path to the database file (default: reis.db, env REIS_DATABASE_PATH)")
	flags.String("log-level", "", "Diagnostic log level: debug, info, warn, error (env REIS_LOG_LEVEL)")
	flags.String("color", "", "Colour output: auto, always, never (env REIS_OUTPUT_COLOR)")
	provider.Flags = flags

	for _, kind := range []actionCmdSpec{setSpec, getSpec, putSpec, delSpec, getAllSpec, clearSpec} {
		rootCmd.AddCommand(newActionCmd(provider, kind))
	}
	rootCmd.AddCommand(newCountCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))

	return rootCmd
}
