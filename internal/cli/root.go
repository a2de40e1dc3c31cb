package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/logger"
	"github.com/ksyq12/tenantrouter/internal/output"
)

var (
	configPath string
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tenantrouter",
	Short: "Tenant reverse-proxy route manager",
	Long: `tenantrouter provisions nginx virtual hosts that route tenant domains
to backend ports on this host.

It allocates backend ports, generates and links site configs, and validates
and reloads nginx.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return errors.Usage("unknown command: " + args[0])
		}
		return errors.Usage("no command given")
	},
}

// Execute runs the root command and exits with status 1 on failure
func Execute() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree for args and reports any error.
func run(args []string) error {
	rootCmd.SetArgs(args)
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		reportError(cmd, err)
	}
	return err
}

// reportError prints err and, for usage errors, the usage of cmd.
func reportError(cmd *cobra.Command, err error) {
	output.Error("%v", err)
	if errors.Is(err, errors.ErrUsage) && cmd != nil {
		cmd.SetOut(cmd.ErrOrStderr())
		_ = cmd.Usage()
	}
}

// usageArgs turns argument validation failures into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return errors.Usage(err.Error())
		}
		return nil
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default /etc/tenantrouter/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Usage(err.Error())
	})
}
