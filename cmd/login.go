package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/dappier-go/internal/auth"
	"github.com/quocvuong92/dappier-go/internal/config"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store a Dappier API key",
		Long: `Store a Dappier API key for future use.

The key is read from standard input and saved to
~/.local/share/dappier/api-key with owner-only permissions.
DAPPIER_API_KEY and --api-key still take precedence over the stored key.

Examples:
  dappier login
  echo "$KEY" | dappier login`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Long: `Remove the API key stored by 'dappier login'.

Examples:
  dappier logout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.OutOrStdout())
		},
	}
}

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which API key and config file are in use",
		Long: `Show where the API key comes from, masked, and which config file is loaded.

Examples:
  dappier status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runStatus(cmd.OutOrStdout())
		},
	}
}

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", path)
			return nil
		},
	})
	return cmd
}

func runLogin(in io.Reader, out io.Writer) error {
	if auth.HasStoredKey() {
		fmt.Fprintln(out, "An API key is already stored; it will be replaced.")
	}

	fmt.Fprint(out, "Enter your Dappier API key: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read API key: %w", err)
	}
	fmt.Fprintln(out)

	key := strings.TrimSpace(line)
	if err := auth.SaveAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	path, _ := auth.GetKeyPath()
	fmt.Fprintf(out, "Saved API key %s to %s\n", auth.MaskKey(key), path)
	return nil
}

func runLogout(out io.Writer) error {
	if !auth.HasStoredKey() {
		fmt.Fprintln(out, "No stored API key.")
		return nil
	}

	if err := auth.DeleteAPIKey(); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	fmt.Fprintln(out, "Stored API key removed.")
	return nil
}

func (app *App) runStatus(out io.Writer) error {
	err := app.cfg.Validate()
	if err != nil && !errors.Is(err, config.ErrAPIKeyNotFound) {
		return err
	}

	fmt.Fprintln(out, "Dappier Status:")
	fmt.Fprintln(out)

	if app.cfg.APIKey != "" {
		fmt.Fprintf(out, "  API key:     %s (from %s)\n", app.cfg.MaskedAPIKey(), app.cfg.APIKeySource)
	} else {
		fmt.Fprintf(out, "  API key:     not set\n")
		fmt.Fprintf(out, "  Run 'dappier login' or set %s\n", config.EnvAPIKey)
	}
	if path, err := auth.GetKeyPath(); err == nil && auth.HasStoredKey() {
		fmt.Fprintf(out, "  Stored key:  %s\n", path)
	}

	if path := config.FindConfigFile(); path != "" {
		fmt.Fprintf(out, "  Config file: %s\n", path)
	} else {
		fmt.Fprintf(out, "  Config file: none (run 'dappier config init')\n")
	}
	fmt.Fprintf(out, "  AI model:    %s\n", app.cfg.AIModelID)
	if app.cfg.DataModelID != "" {
		fmt.Fprintf(out, "  Data model:  %s\n", app.cfg.DataModelID)
	}

	return nil
}
