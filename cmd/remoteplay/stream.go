package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/remoteplay/tui/internal/app"
	"github.com/remoteplay/tui/internal/config"
	"github.com/remoteplay/tui/internal/logging"
	"github.com/remoteplay/tui/internal/session"
)

// CreateStreamCmd creates the stream command.
func CreateStreamCmd(configFile *string) *cobra.Command {
	var (
		hostURL string
		token   string
		logFile string
		tvMode  bool
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Open the streaming screen",
		Long: `Connects to a remote-play host and runs the streaming screen. ` +
			`Logs go to a file because the screen owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(*configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("url") {
				cfg.Host.URL = hostURL
			}
			if cmd.Flags().Changed("token") {
				cfg.Host.Token = token
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Log.File = logFile
			}
			if cmd.Flags().Changed("tv") {
				cfg.Preferences.TVMode = tvMode
			}

			f, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logging.Configure(logging.Config{Level: cfg.Log.Level, Output: f})
			logger := logging.WithComponent("stream")
			logger.Info().Str("host", cfg.Host.URL).Str("config", *configFile).Msg("starting stream screen")

			profile := session.VideoProfile{Width: cfg.Video.Width, Height: cfg.Video.Height}
			client := session.NewClient(cfg.Host.URL, cfg.Host.Token, profile, logging.WithComponent("session"))
			defer client.Close()

			m := app.New(client, cfg, logging.WithComponent("app"))
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithReportFocus(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run screen: %w", err)
			}
			logger.Info().Msg("stream screen closed")
			return nil
		},
	}

	cmd.Flags().StringVar(&hostURL, "url", "", "WebSocket URL of the remote-play host")
	cmd.Flags().StringVar(&token, "token", "", "Auth token (if the host requires it)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Log file path")
	cmd.Flags().BoolVar(&tvMode, "tv", false, "TV mode: no on-screen controls or overlay")

	return cmd
}
