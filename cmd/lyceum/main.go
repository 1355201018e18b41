package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lyceum-io/lyceum/internal/interfaces/cli/migrate"
	"github.com/lyceum-io/lyceum/internal/interfaces/cli/server"
	"github.com/lyceum-io/lyceum/internal/interfaces/cli/usercmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lyceum",
		Short: "Lyceum - session-aware authentication service",
		Long:  `Lyceum provides token-based authentication with server-side session tracking, per-device visibility and revocation.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		usercmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
