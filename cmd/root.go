package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/emuctl/config"
	"github.com/s0up4200/emuctl/emu"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  emu.API

	appVersion = "dev"
	buildTime  = "unknown"

	// Command flags
	outputFormat string
	tokenFlag    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "emuctl",
	Short: "Query an Axiell EMu collections database over its REST API",
	Long: `emuctl authenticates against the EMu REST API and retrieves or searches
records in any resource (ecatalogue, eparties, ...) of a tenant.

Connection details come from config.yaml or the EMU_API_BASE_URL, EMU_API_PORT,
EMU_API_TENANT, EMU_API_USER and EMU_API_PASSWORD environment variables.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for the version and update commands.
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format (json/yaml)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", os.Getenv("EMU_API_TOKEN"), "use an existing bearer token instead of authenticating")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", outputFormat)
	}

	// Load configuration. A supplied token means no login, except for
	// commands that always authenticate.
	var loadOpts []config.LoadOption
	if tokenFlag != "" && cmd != tokenCmd && cmd != testCmd {
		loadOpts = append(loadOpts, config.WithoutLogin())
	}

	var err error
	cfg, err = config.Load(cfgFile, loadOpts...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	client = emu.NewClient(cfg.EMu.Credentials(), logger,
		emu.WithTimeout(cfg.EMu.Timeout),
		emu.WithUserAgent("emuctl/"+appVersion),
	)

	logger.Debug().Str("endpoint", cfg.EMu.Credentials().String()).Msg("EMu client configured")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// sessionToken returns the --token value, or authenticates for a new one
func sessionToken(ctx context.Context) (emu.Token, error) {
	if tokenFlag != "" {
		return emu.Token(tokenFlag), nil
	}

	token, err := client.Authenticate(ctx)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}
	return token, nil
}
