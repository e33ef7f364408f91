package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bryanchriswhite/rifthold/internal/api"
	"github.com/bryanchriswhite/rifthold/internal/config"
	"github.com/bryanchriswhite/rifthold/internal/hotkey"
	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/service"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Rifthold engine",
	Long: `Start the Rifthold engine: the native window provider, the refresh
coordinator, and the HTTP/websocket API the overlay UI connects to.`,
	Example: `  # Start on the default port (8080)
  rifthold serve

  # Start on a custom port with debug logging
  rifthold serve --port 9090 --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}
	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, logPretty)

	log := logger.WithComponent("serve")
	log.Info().
		Str("config", configMgr.Path()).
		Msg("configuration loaded")

	provider, err := window.NewProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize window provider: %w", err)
	}
	if !window.ScreenRecordingPermitted(provider) {
		log.Warn().Msg("screen recording permission missing: titles fall back to app names and thumbnails are unavailable")
	}

	hub := api.NewHub()
	svc := service.New(provider, hub)
	svc.WarmUp()

	hotkeys := hotkey.NewManager(hotkey.NopBinder{})
	if err := hotkeys.Bind(cfg.Shortcut, func() {
		hub.OverviewShow()
		svc.StartAsyncRefresh()
	}); err != nil {
		return fmt.Errorf("failed to bind shortcut %q: %w", cfg.Shortcut, err)
	}

	server := api.NewServer(svc, configMgr, hotkeys, hub)
	go func() {
		if err := server.Start(cfg.ServerPort); err != nil {
			log.Fatal().
				Err(err).
				Msg("server error")
		}
	}()

	log.Info().
		Int("port", cfg.ServerPort).
		Str("shortcut", cfg.Shortcut).
		Msg("rifthold running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	return nil
}
