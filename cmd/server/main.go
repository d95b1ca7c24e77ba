package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mindcarehq/peerchat-server/internal/app"
	"github.com/mindcarehq/peerchat-server/internal/config"
	"github.com/mindcarehq/peerchat-server/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:          "peerchat-server",
		Short:        "Realtime peer-support chat server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return err
			}
			cfg.UpdateFrom(config.Config{Addr: addr, LogLevel: logLevel})
			logger = log.New(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(cfg, logger)

			logger.Info().
				Str("addr", cfg.Addr).
				Str("config", path).
				Str("default_room", cfg.DefaultRoom).
				Msg("starting peerchat server")
			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("server exited with error")
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}
