package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a new bearer token",
	Long: `Authenticate with the configured credentials and print the bearer token.

The token can be reused for later calls with --token or EMU_API_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to EMu",
	Long:  `Authenticate against the configured tenant and report whether a token was issued.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(testCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	token, err := client.Authenticate(cmd.Context())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to EMu at %s...\n", cfg.EMu.Credentials().Endpoint())

	if _, err := client.Authenticate(cmd.Context()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "- Tenant: %s\n", cfg.EMu.Tenant)
	fmt.Fprintf(out, "- User: %s\n", cfg.EMu.Username)
	fmt.Fprintf(out, "- Timeout: %s\n", cfg.EMu.Timeout)

	if len(cfg.Search.Presets) > 0 {
		fmt.Fprintf(out, "- Search presets: %d\n", len(cfg.Search.Presets))
	}
	return nil
}
