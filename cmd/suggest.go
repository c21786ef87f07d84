package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/targeting"
)

var (
	suggestProfilePath string
	suggestCodes       []string
	suggestPoint       string
	suggestRadiusKM    float64
	suggestBudget      float64
	suggestGoal        string
	suggestTopN        int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank local advertising channels for a business and campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(suggestProfilePath)
		if err != nil {
			return err
		}

		desc, err := parseTarget(suggestCodes, suggestPoint)
		if err != nil {
			return err
		}

		radius := suggestRadiusKM
		if radius <= 0 {
			radius = cfg.Targeting.DefaultRadiusKM
		}

		insights, err := env.Engine.GetAudienceInsights(cmd.Context(), profile, desc, radius)
		if err != nil && !eris.Is(err, targeting.ErrInsightsUnavailable) {
			return err
		}

		topN := suggestTopN
		if topN < 1 {
			topN = cfg.Suggest.DefaultTopN
		}

		campaign := model.CampaignSpec{TotalBudget: suggestBudget, Goal: suggestGoal}
		matches := env.Suggester.SuggestChannels(cmd.Context(), *profile, campaign, insights, topN)
		return printJSON(matches)
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestProfilePath, "profile", "", "path to business profile JSON (required)")
	suggestCmd.Flags().StringSliceVar(&suggestCodes, "codes", nil, "target location codes")
	suggestCmd.Flags().StringVar(&suggestPoint, "point", "", "target center as lat,lon")
	suggestCmd.Flags().Float64Var(&suggestRadiusKM, "radius", 0, "zone radius in km (default from config)")
	suggestCmd.Flags().Float64Var(&suggestBudget, "budget", 0, "total campaign budget (0 = unspecified)")
	suggestCmd.Flags().StringVar(&suggestGoal, "goal", "", "campaign goal (informational)")
	suggestCmd.Flags().IntVar(&suggestTopN, "top", 0, "number of suggestions (default from config)")
	_ = suggestCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(suggestCmd)
}
