package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// logLevel overrides LOG_LEVEL when set.
var logLevel string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Eventhub server - event planning backend",
		Long: `Eventhub server exposes the event planning HTTP API and the realtime
attendee channel.

The server supports:
- Registration and login with bearer tokens
- Creating, listing and deleting events
- Attending and leaving events
- Live attendee counts over a websocket`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")

	serve := newServeCommand()
	// Run the serve command by default if no subcommand is specified
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
