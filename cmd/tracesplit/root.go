// cmd/tracesplit/root.go
package tracesplit

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/tracesplit/internal/config"
)

var (
	// cfg is resolved before every command runs.
	cfg config.Config

	// debugLog is the file standard logging is redirected to under --debug.
	debugLog io.Closer
)

// rootCmd is the base Cobra command for the tracesplit application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "tracesplit",
	Short: "Classify and split latency trace files by task",
	Long: `tracesplit walks a directory of latency trace CSV files, works out which
task each file belongs to from the component names in its rows, and writes
per-task copies next to the inputs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(settings(cmd))
		if err != nil {
			return err
		}
		if !cfg.Debug {
			return nil
		}
		f, err := tea.LogToFile(cfg.LogFile, "tracesplit")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		debugLog = f
		pp.Fprintln(cmd.OutOrStdout(), cfg)
		log.Printf("config: %+v", cfg)
		return nil
	},
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Finalizers run after every execution, including failed ones.
	cobra.OnFinalize(closeDebugLog)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML, JSON or TOML)")
	flags.String("mapping", "general", "task mapping used to classify files")
	flags.String("submapping", "perception", "mapping used to split the composite task")
	flags.String("composite", "perception", "task label whose files are split into sub-tasks (empty disables)")
	flags.Bool("debug", false, "print the resolved config and write logs to the log file")
	flags.String("log-file", "debug.log", "log file used with --debug")
}

// closeDebugLog closes the --debug log file and restores standard logging.
func closeDebugLog() {
	if debugLog == nil {
		return
	}
	debugLog.Close()
	debugLog = nil
	log.SetOutput(os.Stderr)
	log.SetPrefix("")
}

// settings returns a fresh viper bound to every flag of cmd, including the
// inherited persistent ones. Flag names map to config keys with dashes
// replaced by underscores.
func settings(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return v
}

// rootDir returns the positional root argument, or the configured root.
func rootDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Root
}
