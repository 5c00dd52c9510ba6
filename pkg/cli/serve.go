package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/cli/config"
	httpctrl "github.com/makazi-lab/makazi/pkg/controller/http"
	"github.com/makazi-lab/makazi/pkg/repository/memory"
	"github.com/makazi-lab/makazi/pkg/service/worker"
	"github.com/makazi-lab/makazi/pkg/usecase"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var maintenanceIntervalMin int
	var sessionMaxIdleMin int
	var geminiCfg config.Gemini
	var knowledgeCfg config.Knowledge
	var catalogCfg config.Catalog
	var scoringCfg config.Scoring
	var agentCfg config.Agent
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8000",
			Sources:     cli.EnvVars("MAKAZI_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "maintenance-interval-min",
			Usage:       "Minutes between background maintenance cycles",
			Value:       10,
			Sources:     cli.EnvVars("MAKAZI_MAINTENANCE_INTERVAL_MIN"),
			Destination: &maintenanceIntervalMin,
		},
		&cli.IntFlag{
			Name:        "session-max-idle-min",
			Usage:       "Minutes a conversation may stay idle before the maintenance worker prunes it",
			Value:       60,
			Sources:     cli.EnvVars("MAKAZI_SESSION_MAX_IDLE_MIN"),
			Destination: &sessionMaxIdleMin,
		},
	}

	// Add shared config flags
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, knowledgeCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)
	flags = append(flags, agentCfg.Flags()...)
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
				"gemini", slog.GroupValue(geminiCfg.LogAttrs()...),
				"knowledge", slog.GroupValue(knowledgeCfg.LogAttrs()...),
				"catalog", slog.GroupValue(catalogCfg.LogAttrs()...),
				"scoring", slog.GroupValue(scoringCfg.LogAttrs()...),
				"agent", slog.GroupValue(agentCfg.LogAttrs()...),
				"sentry", slog.GroupValue(sentryCfg.LogAttrs()...),
			)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Sentry")
			}
			defer flush()

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient == nil {
				logger.Warn("Gemini project not configured, answers will be degraded and extraction falls back to keywords")
			}

			store, err := knowledgeCfg.Configure(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize knowledge store")
			}

			scorer, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize scorer")
			}

			ucOpts := append(agentCfg.Options(),
				usecase.WithLLMClient(llmClient),
				usecase.WithScorer(scorer),
			)
			uc := usecase.New(repo, store, catalogCfg.Configure(), ucOpts...)

			// Start background maintenance (corpus refresh + session pruning)
			maintenance := worker.NewMaintenanceWorker(repo, store,
				time.Duration(maintenanceIntervalMin)*time.Minute,
				time.Duration(sessionMaxIdleMin)*time.Minute,
			)
			if err := maintenance.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start maintenance worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				maintenance.Stop()

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
