package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=v1.2.3".
var version = "0.0.0-dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := semver.NewVersion(version)
			if err != nil {
				return fmt.Errorf("invalid build version %q: %w", version, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pdf2xlsx %s\n", v)
			return nil
		},
	}
}
