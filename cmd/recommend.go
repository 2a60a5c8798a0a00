package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/dappier-go"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/display"
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Find related articles with AI recommendations",
		Long: `Find articles related to a query in a Dappier data model.

All arguments are joined into a single query. Defaults for every flag can be
set under 'recommendations' in the config file.

Examples:
  dappier recommend --data-model-id dm_01j0pb465keqmatq9k83dthx34 "sustainable living"
  dappier recommend --algorithm trending --top-k 5 "electric cars"
  dappier recommend --ref techcrunch.com --num-articles-ref 2 "AI startups"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runRecommend(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&app.cfg.DataModelID, "data-model-id", "d", "", "Data model ID (default: config recommendations.data_model_id)")
	cmd.Flags().IntVarP(&app.cfg.SimilarityTopK, "top-k", "k", 0, "Number of similar articles to consider (default 9)")
	cmd.Flags().StringVar(&app.cfg.Ref, "ref", "", "Site domain to prefer, e.g. techcrunch.com")
	cmd.Flags().IntVar(&app.cfg.NumArticlesRef, "num-articles-ref", 0, "Minimum number of articles from --ref")
	cmd.Flags().StringVarP(&app.cfg.SearchAlgorithm, "algorithm", "a", "", "Search algorithm: "+strings.Join(constants.SearchAlgorithms, ", ")+" (default most_recent)")
	cmd.Flags().BoolVar(&app.cfg.JSON, "json", false, "Print the raw JSON response")

	return cmd
}

// recommendationOptions maps the resolved configuration onto request options
func (app *App) recommendationOptions() []dappier.RecommendationOption {
	opts := []dappier.RecommendationOption{
		dappier.WithSimilarityTopK(app.cfg.SimilarityTopK),
		dappier.WithNumArticlesRef(app.cfg.NumArticlesRef),
		dappier.WithSearchAlgorithm(dappier.SearchAlgorithm(app.cfg.SearchAlgorithm)),
	}
	if app.cfg.Ref != "" {
		opts = append(opts, dappier.WithRef(app.cfg.Ref))
	}
	return opts
}

func (app *App) runRecommend(cmd *cobra.Command, query string) error {
	if err := app.validate(); err != nil {
		return err
	}
	if err := app.cfg.RequireDataModelID(); err != nil {
		return err
	}

	client, err := app.newClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.DefaultCommandTimeout)
	defer cancel()

	sp := display.NewSpinnerTo(cmd.ErrOrStderr(), "Fetching recommendations...")
	sp.Start()
	resp := client.GetAIRecommendations(ctx, query, app.cfg.DataModelID, app.recommendationOptions()...)
	sp.Stop()

	if resp == nil {
		return errNoResult
	}
	if app.cfg.JSON {
		return display.ShowJSON(cmd.OutOrStdout(), resp)
	}
	display.ShowRecommendations(cmd.OutOrStdout(), resp)
	return nil
}
