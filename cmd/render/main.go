// Command render prints the pretty rendition of a captured raw bulletin, the
// same text the service writes in pretty mode.
//
// Usage:
//
//	render bms data/bms/BMS_zone4_2024_04_26_15_10.json
//	render bmr data/bmr/BMR_zone4_2024_04_26_15_10.xml
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:           "render <bms|bmr> <file>",
		Short:         "Render a raw BMS or BMR capture as plain text",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(fs, cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func render(fs afero.Fs, out io.Writer, kindArg, path string) error {
	kind, err := domain.ParseReportKind(kindArg)
	if err != nil {
		return err
	}

	body, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read capture: %w", err)
	}

	r, err := domain.Render(domain.Report{Kind: kind, Body: body}, true)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	_, err = out.Write(r.Content)
	return err
}
