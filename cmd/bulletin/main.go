// Command bulletin periodically downloads Météo-France coastal marine
// bulletins (BMS, and optionally BMR) and stores them on disk.
//
// Usage:
//
//	bulletin /etc/bulletin/mf.toml
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "bulletin <config.toml>",
		Short:         "Fetch Météo-France marine bulletins on a schedule",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}
}
