package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/emuctl/emu"
)

var fields []string

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <resource> <irn>",
	Short: "Retrieve a single record",
	Long: `Retrieve one record by IRN from a resource.

Examples:
  emuctl get ecatalogue 2
  emuctl get ecatalogue 2 -f data.irn -f data.SummaryData,data.DarGenus`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "field to return (repeatable or comma-separated)")
}

func runGet(cmd *cobra.Command, args []string) error {
	resource, irn := args[0], args[1]

	token, err := sessionToken(cmd.Context())
	if err != nil {
		return err
	}

	record, err := client.GetRecord(cmd.Context(), token, resource, irn, fields...)
	switch {
	case errors.Is(err, emu.ErrNotFound):
		return fmt.Errorf("record %s not found in %s: %w", irn, resource, err)
	case errors.Is(err, emu.ErrUnauthorized):
		return fmt.Errorf("token rejected, re-authenticate and try again: %w", err)
	case err != nil:
		return fmt.Errorf("failed to retrieve record: %w", err)
	}

	logger.Debug().Str("resource", resource).Str("irn", irn).Strs("fields", fields).Msg("Record retrieved")
	return render(cmd.OutOrStdout(), record, outputFormat)
}
