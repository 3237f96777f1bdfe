// cmd/tracesplit/summarize.go
package tracesplit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/tracesplit/internal/summary"
)

var summarizeJSON bool

// summarizeCmd implements 'summarize', which reports latency statistics of
// the task files written by 'preprocess'.
var summarizeCmd = &cobra.Command{
	Use:   "summarize [root]",
	Short: "Print latency statistics of split task files",
	Long: `The 'summarize' command finds the <task>.csv files under the root directory
and prints the row count, mean, standard deviation, p50 and p95 of a numeric
column for each of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, sub, err := cfg.Resolve()
		if err != nil {
			return err
		}

		labels := append(tasks.Labels(), sub.Labels()...)
		res, err := summary.Summarize(rootDir(args), cfg.Column, labels)
		if err != nil {
			return err
		}
		if summarizeJSON {
			return summary.WriteJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprint(cmd.OutOrStdout(), summary.Render(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().String("column", "latency", "numeric column to summarize")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "print the result as JSON")
}
