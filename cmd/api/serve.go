package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	analyticsHttp "guild-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsRepoPg "guild-analytics-service/internal/analytics/adapters/postgres"
	analyticsUsecase "guild-analytics-service/internal/analytics/core/usecase"
	"guild-analytics-service/internal/config"
	ingestHttp "guild-analytics-service/internal/ingest/adapters/http/fiber"
	ingestRepoPg "guild-analytics-service/internal/ingest/adapters/postgres"
	ingestUsecase "guild-analytics-service/internal/ingest/core/usecase"

	_ "guild-analytics-service/docs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the analytics engine",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.Postgres.DSN = "<redacted>"
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the postgres tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		db, err := analyticsRepoPg.Open(cmd.Context(), cfg.Postgres.DSN, cfg.Pool())
		if err != nil {
			return err
		}
		defer db.Close()
		return ingestRepoPg.Migrate(cmd.Context(), db)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	// Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	engineCfg, err := cfg.EngineSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB connection
	db, err := analyticsRepoPg.Open(ctx, cfg.Postgres.DSN, cfg.Pool())
	if err != nil {
		return err
	}
	defer db.Close()

	var writer ingestRepoPg.DB = db
	if cfg.Postgres.MigrateOnStart {
		if err := ingestRepoPg.Migrate(ctx, writer); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	// Page source + engine
	source := analyticsRepoPg.NewPageSource(analyticsRepoPg.NewSQLDB(db))
	engine := analyticsUsecase.NewEngine(source, source, log, engineCfg)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	analyticsHttp.NewAnalyticsHandler(engine).Register(app)

	storeUC := ingestUsecase.NewStoreRecordUseCase(ingestRepoPg.NewRecordRepository(writer), engine, log)
	ingestHttp.NewRecordHandler(storeUC).Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		log.WithField("addr", cfg.HTTP.Addr).Info("server started")
		if err := app.Listen(cfg.HTTP.Addr); err != nil {
			return fmt.Errorf("fiber stopped: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Warn("fiber shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server exited with error")
		return err
	}
	log.WithFields(logrus.Fields{"reason": context.Cause(ctx)}).Info("server exiting")
	return nil
}
