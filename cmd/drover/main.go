package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drover",
		Short: "Delegated event routing for server-driven documents",
		Long: `Drover routes bubbling document events to handlers through a single
listener per root: one registration covers every matching descendant,
present or future.

The CLI hosts a live demo: a server-side document per session, clicks
delegated over a websocket, dispatch results streamed back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
