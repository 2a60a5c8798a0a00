package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/dappier-go"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/display"
)

type searchOptions struct {
	modelID string
	stock   bool
}

// NewSearchCmd creates the search command
func NewSearchCmd(app *App) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query> [query...]",
		Short: "Ask the real-time AI search model",
		Long: `Ask one or more questions with Dappier real-time search.

Each argument is a separate query. Several queries run concurrently and the
answers are printed in argument order.

Examples:
  dappier search "What happened in tech today?"
  dappier search --stock "AAPL earnings"
  dappier search --model-id am_01j06ytn18ejftedz6dyhz2b15 "weather in Paris"
  dappier search --json "latest AI news"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSearch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.modelID, "model-id", "m", "", "AI model ID (default: config ai_model_id or the real-time model)")
	cmd.Flags().BoolVar(&opts.stock, "stock", false, "Use the stock market model")
	cmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown with colors and formatting")
	cmd.Flags().BoolVar(&app.cfg.JSON, "json", false, "Print raw JSON responses")
	cmd.MarkFlagsMutuallyExclusive("model-id", "stock")

	return cmd
}

// searchModelID picks the model: --stock, then --model-id, then config
func (app *App) searchModelID(opts *searchOptions) string {
	switch {
	case opts.stock:
		return dappier.StockMarketModelID
	case opts.modelID != "":
		return opts.modelID
	default:
		return app.cfg.AIModelID
	}
}

func (app *App) runSearch(cmd *cobra.Command, opts *searchOptions, args []string) error {
	if err := app.validate(); err != nil {
		return err
	}

	client, err := app.newAsyncClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.DefaultCommandTimeout)
	defer cancel()

	modelID := app.searchModelID(opts)
	calls := make([]*dappier.Call[dappier.RealTimeDataResponse], len(args))
	for i, query := range args {
		calls[i] = client.SearchRealTimeData(ctx, query, modelID)
	}

	sp := display.NewSpinnerTo(cmd.ErrOrStderr(), "Searching...")
	sp.Start()
	for _, call := range calls {
		<-call.Done()
	}
	sp.Stop()

	out := cmd.OutOrStdout()
	failed := 0
	for i, call := range calls {
		resp := call.Await(ctx)
		if resp == nil {
			failed++
			continue
		}
		if app.cfg.JSON {
			if err := display.ShowJSON(out, resp); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		display.ShowRealTimeResult(out, args[i], resp, len(args) > 1, app.cfg.Render)
	}

	switch {
	case failed == 0:
		return nil
	case len(args) == 1:
		return errNoResult
	default:
		return fmt.Errorf("%d of %d searches failed: %s", failed, len(args), failedQueries(args, calls))
	}
}

func failedQueries(args []string, calls []*dappier.Call[dappier.RealTimeDataResponse]) string {
	var failed []string
	for i, call := range calls {
		if call.Err() != nil {
			failed = append(failed, fmt.Sprintf("%q", args[i]))
		}
	}
	return strings.Join(failed, ", ")
}
