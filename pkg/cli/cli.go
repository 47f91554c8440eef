package cli

import (
	"context"
	"os"

	"github.com/secmon-lab/safetydocs/pkg/cli/config"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "safetydocs",
		Usage:   "Hazard assessments, participant rosters and safety briefings for events",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure(secretsFromEnv()...)
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting safetydocs", "logger", loggerCfg, "version", version)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdMigrate(),
			cmdReport(),
			cmdToken(),
			cmdValidate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// secretsFromEnv collects secrets given by environment so the logger can
// redact them wherever they show up.
func secretsFromEnv() []string {
	var secrets []string
	for _, key := range []string{"SAFETYDOCS_JWT_SECRET", "SAFETYDOCS_SLACK_BOT_TOKEN", "SAFETYDOCS_SENTRY_DSN"} {
		if v := os.Getenv(key); v != "" {
			secrets = append(secrets, v)
		}
	}
	return secrets
}
