package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/cli/config"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var scoringCfg config.Scoring

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a scoring configuration file",
		Flags:   scoringCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if !scoringCfg.IsConfigured() {
				return goerr.New("no scoring config specified, set --scoring-config or MAKAZI_SCORING_CONFIG")
			}

			cfg, err := scoringCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "scoring config validation failed")
			}

			logger.Info("Scoring config validation passed")
			if cfg.Weights != nil {
				logger.Info("Weight overrides",
					"semantic", cfg.Weights.Semantic,
					"location", cfg.Weights.Location,
					"type", cfg.Weights.Type,
					"preferences", cfg.Weights.Preferences,
					"price", cfg.Weights.Price,
					"amenities", cfg.Weights.Amenities,
				)
			}
			if cfg.Cutoff != nil {
				logger.Info("Cutoff override", "cutoff", *cfg.Cutoff)
			}

			return nil
		},
	}
}
