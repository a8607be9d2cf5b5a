package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/arcbothq/arcbot/internal/bot"
	"github.com/arcbothq/arcbot/internal/command"
	"github.com/arcbothq/arcbot/internal/config"
	"github.com/arcbothq/arcbot/internal/delivery"
	"github.com/arcbothq/arcbot/internal/handlers"
	"github.com/arcbothq/arcbot/internal/healthcheck"
	gatewaychecker "github.com/arcbothq/arcbot/internal/healthcheck/checkers/gateway"
	resourcechecker "github.com/arcbothq/arcbot/internal/healthcheck/checkers/resources"
	"github.com/arcbothq/arcbot/internal/logger"
	"github.com/arcbothq/arcbot/internal/qq"
	"github.com/arcbothq/arcbot/internal/qq/gateway"
	"github.com/arcbothq/arcbot/internal/resource"
	"github.com/arcbothq/arcbot/internal/server"
	"github.com/arcbothq/arcbot/internal/upload"
	"github.com/arcbothq/arcbot/internal/version"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot: gateway session, resource index and admin server",
		Run: func(_ *cobra.Command, _ []string) {
			runServe(cfgPath)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultConfigPath, "path to the config file")
	return cmd
}

func runServe(cfgPath string) {
	fx.New(
		fx.Provide(
			func() (config.Config, error) { return provideConfig(cfgPath) },
			provideLogger,
			provideIndex,
			provideUploader,
			provideClient,
			provideFactory,
			provideRouter,
			bot.NewService,
			provideGateway,
			provideCheckers,
			handlers.NewStatusHandler,
			handlers.NewReloadHandler,
			handlers.NewResourcesHandler,
			provideServer,
		),
		fx.Invoke(
			registerCommands,
			startIndex,
			startReloadCron,
			startGateway,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig(path string) (config.Config, error) {
	// .env is optional; credentials may also come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideIndex(cfg config.Config, log *slog.Logger) *resource.Index {
	return resource.New(cfg.Resources.Dir, log)
}

func provideUploader(cfg config.Config, log *slog.Logger) *upload.Uploader {
	return upload.New(cfg.Upload, log)
}

func provideClient(cfg config.Config, log *slog.Logger) *qq.Client {
	return qq.NewClient(cfg.QQ, log)
}

func provideFactory(client *qq.Client, uploader *upload.Uploader, log *slog.Logger) *delivery.Factory {
	return delivery.NewFactory(client, uploader, log)
}

func provideRouter(log *slog.Logger) *command.Router {
	return command.NewRouter(log)
}

func provideCheckers(gw *gateway.Gateway, index *resource.Index, log *slog.Logger) []healthcheck.Checker {
	return []healthcheck.Checker{
		gatewaychecker.NewChecker(log, gw),
		resourcechecker.NewChecker(log, index),
	}
}

func provideGateway(client *qq.Client, log *slog.Logger) *gateway.Gateway {
	return gateway.New(client, gateway.DefaultIntents(), log)
}

func provideServer(cfg config.Config, log *slog.Logger, status *handlers.StatusHandler, reload *handlers.ReloadHandler, resources *handlers.ResourcesHandler) *server.Server {
	return server.NewServer(cfg.Server.Addr, log, status, reload, resources)
}

func registerCommands(router *command.Router, index *resource.Index, log *slog.Logger) error {
	return bot.Register(router,
		bot.NewMapCommand(index, log),
		bot.NewWeaponCommand(index, log),
		bot.NewArcInfoCommand(index, log),
		bot.NewHelpCommand(router, log),
	)
}

func startIndex(lc fx.Lifecycle, index *resource.Index, log *slog.Logger) {
	lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
		if !index.Reload() {
			log.Warn("some resource categories failed to load", slog.String("dir", index.Dir()))
		}
		return nil
	}})
}

func startReloadCron(lc fx.Lifecycle, cfg config.Config, index *resource.Index, log *slog.Logger) error {
	spec := cfg.Resources.ReloadCron
	if spec == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if !index.Reload() {
			log.Warn("scheduled reload left stale categories")
		}
	}); err != nil {
		return fmt.Errorf("reload cron %q: %w", spec, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { c.Start(); return nil },
		OnStop:  func(context.Context) error { c.Stop(); return nil },
	})
	return nil
}

func startGateway(lc fx.Lifecycle, gw *gateway.Gateway, svc *bot.Service, shutdowner fx.Shutdowner, log *slog.Logger) {
	svc.Attach(gw)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := gw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("gateway stopped", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting ArcBot %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Stop(ctx)
		},
	})
}
