package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/adscout/internal/targeting"
)

var (
	insightsProfilePath string
	insightsCodes       []string
	insightsPoint       string
	insightsRadiusKM    float64
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Compute audience insights for a business and target area",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(insightsProfilePath)
		if err != nil {
			return err
		}

		desc, err := parseTarget(insightsCodes, insightsPoint)
		if err != nil {
			return err
		}

		radius := insightsRadiusKM
		if radius <= 0 {
			radius = cfg.Targeting.DefaultRadiusKM
		}

		insights, err := env.Engine.GetAudienceInsights(cmd.Context(), profile, desc, radius)
		if err != nil && !eris.Is(err, targeting.ErrInsightsUnavailable) {
			return err
		}
		// Unavailable insights still print: the warnings explain the outcome.
		return printJSON(insights)
	},
}

func init() {
	insightsCmd.Flags().StringVar(&insightsProfilePath, "profile", "", "path to business profile JSON (required)")
	insightsCmd.Flags().StringSliceVar(&insightsCodes, "codes", nil, "target location codes")
	insightsCmd.Flags().StringVar(&insightsPoint, "point", "", "target center as lat,lon")
	insightsCmd.Flags().Float64Var(&insightsRadiusKM, "radius", 0, "zone radius in km (default from config)")
	_ = insightsCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(insightsCmd)
}
