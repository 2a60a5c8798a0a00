package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/dappier-go"
	"github.com/quocvuong92/dappier-go/internal/config"
	"github.com/quocvuong92/dappier-go/internal/display"
)

// errNoResult is returned when a call produced no result. The library has
// already logged the cause.
var errNoResult = errors.New("no result")

// App holds the application state
type App struct {
	cfg     *config.Config
	verbose bool
	baseURL string // hidden flag, points the clients at a test server
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd(NewApp())
	if err := rootCmd.Execute(); err != nil {
		if err != errNoResult {
			display.ShowErrorTo(rootCmd.ErrOrStderr(), err.Error())
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dappier",
		Short: "A CLI client for the Dappier real-time search and recommendations API",
		Long: `dappier is a command-line client for the Dappier API.

It answers questions with real-time AI search and finds related articles
with AI recommendations.

The API key is read from --api-key, DAPPIER_API_KEY, the key stored by
'dappier login', or the config file, in that order.

Examples:
  dappier search "Latest news on Go 1.24"
  dappier search --stock "How is AAPL trading today?"
  dappier search "weather in Paris" "weather in Tokyo"
  dappier recommend --data-model-id dm_01j0pb465keqmatq9k83dthx34 "sustainable living"
  dappier -i                             # Interactive mode
  dappier -ir                            # Interactive with markdown rendering`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.Interactive {
				return cmd.Help()
			}
			if err := app.validate(); err != nil {
				return err
			}
			return app.runInteractive(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.cfg.APIKey, "api-key", "", "Dappier API key (default: DAPPIER_API_KEY or stored key)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging of API requests")
	rootCmd.PersistentFlags().StringVar(&app.baseURL, "base-url", "", "Override the API base URL")
	_ = rootCmd.PersistentFlags().MarkHidden("base-url")

	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive mode")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown with colors and formatting")

	rootCmd.AddCommand(NewSearchCmd(app))
	rootCmd.AddCommand(NewRecommendCmd(app))
	rootCmd.AddCommand(NewLoginCmd())
	rootCmd.AddCommand(NewLogoutCmd())
	rootCmd.AddCommand(NewStatusCmd(app))
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// validate resolves the configuration and prepares output
func (app *App) validate() error {
	if err := app.cfg.Validate(); err != nil {
		return err
	}
	if app.verbose {
		app.cfg.Debug = true
	}
	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			return err
		}
	}
	return nil
}

// clientOptions maps the resolved configuration onto library options
func (app *App) clientOptions(logOutput io.Writer) []dappier.Option {
	opts := []dappier.Option{
		dappier.WithLogOutput(logOutput),
		dappier.WithLogLevel(app.cfg.LogLevel),
		dappier.WithLogFormat(app.cfg.LogFormat),
		dappier.WithDebug(app.cfg.Debug),
	}
	if app.baseURL != "" {
		opts = append(opts, dappier.WithBaseURL(app.baseURL))
	}
	return opts
}

func (app *App) newClient(cmd *cobra.Command) (*dappier.Client, error) {
	client, err := dappier.New(app.cfg.APIKey, app.clientOptions(cmd.ErrOrStderr())...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (app *App) newAsyncClient(cmd *cobra.Command) (*dappier.AsyncClient, error) {
	client, err := dappier.NewAsync(app.cfg.APIKey, app.clientOptions(cmd.ErrOrStderr())...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
