package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/cli/config"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the application config file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logging.Default().Info("Configuration validation passed",
				"risk_scale_max", settings.RiskScaleMax,
				"area_count", len(settings.Areas),
				"briefing_item_count", len(settings.Briefing.Items),
			)
			for _, area := range settings.Areas {
				logging.Default().Info("Area validated", "name", area.Name, "sort_order", area.SortOrder)
			}
			return nil
		},
	}
}
