package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/cli/config"
	httpctrl "github.com/secmon-lab/safetydocs/pkg/controller/http"
	"github.com/secmon-lab/safetydocs/pkg/usecase"
	"github.com/secmon-lab/safetydocs/pkg/utils/async"
	"github.com/secmon-lab/safetydocs/pkg/utils/logging"
	"github.com/secmon-lab/safetydocs/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var authCfg config.Auth
	var slackCfg config.Slack
	var storageCfg config.Storage
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SAFETYDOCS_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Serve configuration",
				"addr", addr,
				"app", appCfg,
				"repository", repoCfg,
				"auth", authCfg,
				"slack", slackCfg,
				"storage", storageCfg,
				"sentry", sentryCfg,
			)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			settings, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			authn, err := authCfg.Configure(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			m := metrics.New()
			ucOpts := []usecase.Option{
				usecase.WithSettings(settings),
				usecase.WithAuth(authn),
				usecase.WithMetrics(m),
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logger.Info("Slack notification enabled")
			}

			gcs, err := storageCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if gcs != nil {
				defer func() {
					if err := gcs.Close(); err != nil {
						logger.Error("failed to close report archive", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithArchive(gcs))
				logger.Info("Report archive enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			if authCfg.IsNoAuthMode() {
				if _, err := uc.User.Bootstrap(ctx, authCfg.NoAuthUID(), ""); err != nil {
					return goerr.Wrap(err, "failed to prepare no-auth user")
				}
				logger.Warn("Running in no-auth mode (development only)", "user_id", authCfg.NoAuthUID())
			}

			created, err := uc.Area.Seed(ctx, settings.Areas)
			if err != nil {
				return goerr.Wrap(err, "failed to seed areas")
			}
			if created > 0 {
				logger.Info("Seeded areas", "created", created)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithMetrics(m)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				if err := async.Wait(shutdownCtx); err != nil {
					logger.Warn("Background tasks did not finish", "error", err)
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
