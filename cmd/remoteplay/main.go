package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "remoteplay",
		Short:         "Terminal remote-play streaming screen",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "remoteplay.yaml", "Path to configuration file")

	stream := CreateStreamCmd(&configFile)
	root.AddCommand(stream, CreateHostCmd(&configFile))
	// Running the bare binary opens the stream screen.
	root.RunE = stream.RunE
	root.Flags().AddFlagSet(stream.Flags())
	return root
}
