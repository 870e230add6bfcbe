package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/host"
	"github.com/remoteplay/tui/internal/logging"
	"github.com/remoteplay/tui/internal/session"
)

// CreateHostCmd creates the host command.
func CreateHostCmd(configFile *string) *cobra.Command {
	var (
		listen   string
		scenario string
		pin      string
	)

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Run a simulated remote-play host",
		Long: `Serves scripted remote-play sessions on /session so the streaming ` +
			`screen can be exercised without a console. Scenarios: happy, pin, quit, create_error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(*configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Simulator.Listen = listen
			}
			if cmd.Flags().Changed("scenario") {
				cfg.Simulator.Scenario = scenario
			}
			if cmd.Flags().Changed("pin") {
				cfg.Simulator.LoginPin = pin
			}

			logging.Configure(logging.Config{Level: cfg.Log.Level, Output: os.Stderr, Console: true, Service: "remoteplay-host"})
			logger := logging.WithComponent("host")

			profile := session.VideoProfile{Width: cfg.Video.Width, Height: cfg.Video.Height}
			srv, err := host.NewServer(cfg.Simulator, profile, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Session scenario to play")
	cmd.Flags().StringVar(&pin, "pin", "", "Login PIN the host accepts")

	return cmd
}
