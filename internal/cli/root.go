package cli

import (
	"fmt"
	"os"
	"strings"

	"itens-cli/internal/config"
	"itens-cli/internal/format"
	"itens-cli/internal/gateway"
	"itens-cli/internal/logging"
	"itens-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	LogFile    string
	LogLevel   string
	PrettyJSON bool
	Format     string
	DumpState  bool

	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "itens",
		Short:        "Browse and edit priced items of an /itens REST service",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI against the default service
  itens

  # Point at another service
  itens --api http://catalog.internal:3000

  # Scriptable commands
  itens items list --search chair --sort price --order desc
  itens items create --name "Oak chair" --price 49.90

  # Local development backend
  itens serve --seed 120
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.closeLog != nil {
			return app.closeLog()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("ITENS_API_URL", ""), "Base URL of the /itens service (default from config, else http://localhost:3000)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("ITENS_LOG_FILE", ""), "Append logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("ITENS_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ITENS_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.Flags().BoolVar(&app.DumpState, "dump-state", false, "Log the full view state after every TUI action (debug level)")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// init resolves configuration: flags and env win over the config file, which
// wins over built-in defaults.
func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.APIURL == "" {
		app.APIURL = cfg.API.BaseURL
	}
	if app.LogFile == "" {
		app.LogFile = cfg.Log.File
	}
	if app.LogLevel == "" {
		app.LogLevel = cfg.Log.Level
	}
	if app.DumpState && app.LogLevel != "debug" {
		app.LogLevel = "debug"
	}
	app.cfg = cfg

	logger, closeLog, err := logging.OpenFile(app.LogFile, app.LogLevel)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open log file: %w", err))
	}
	app.logger = logger
	app.closeLog = closeLog
	return nil
}

func (app *App) client() (*gateway.Client, error) {
	return gateway.New(app.APIURL, gateway.WithLogger(app.logger))
}

func runTUI(cmd *cobra.Command, app *App) error {
	c, err := app.client()
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger.Info("starting tui", "api", c.BaseURL())
	return tui.Run(cmd.Context(), tui.Options{
		Gateway:   c,
		Logger:    app.logger,
		Glyphs:    app.cfg.TUI.Glyphs,
		Theme:     app.cfg.TUI.Theme,
		DumpState: app.DumpState,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
