package main

import (
	"encoding/json"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
)

var (
	seedLocationsPath string
	seedChannelsPath  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load directory fixtures into the Postgres directory store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Directory.DatabaseURL == "" {
			return eris.New("seed: directory.database_url is not configured")
		}
		pool, err := pgxpool.New(ctx, cfg.Directory.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "seed: connect directory database")
		}
		defer pool.Close()

		var locations []model.LocationRecord
		if err := readFixture(seedLocationsPath, &locations); err != nil {
			return err
		}
		var channels []model.ChannelRecord
		if err := readFixture(seedChannelsPath, &channels); err != nil {
			return err
		}

		nLoc, err := directory.SaveLocationsPG(ctx, pool, locations)
		if err != nil {
			return err
		}
		nChan, err := directory.SaveChannelsPG(ctx, pool, channels)
		if err != nil {
			return err
		}

		zap.L().Info("seed complete",
			zap.Int64("locations", nLoc),
			zap.Int64("channels", nChan),
		)
		return nil
	},
}

func readFixture(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "seed: read fixture %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "seed: unmarshal fixture %s", path)
	}
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&seedLocationsPath, "locations", "data/locations.json", "locations fixture to load")
	seedCmd.Flags().StringVar(&seedChannelsPath, "channels", "data/channels.json", "channels fixture to load")
	rootCmd.AddCommand(seedCmd)
}
