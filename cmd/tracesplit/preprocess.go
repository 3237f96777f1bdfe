// cmd/tracesplit/preprocess.go
package tracesplit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/tracesplit/internal/splitter"
)

// preprocessCmd implements 'preprocess', which classifies every file under the
// root directory and writes one copy per matched task.
var preprocessCmd = &cobra.Command{
	Use:   "preprocess [root]",
	Short: "Split trace files under a directory into per-task files",
	Long: `The 'preprocess' command walks the root directory (the argument, or the
configured root) and, for every file, writes the whole table to <task>.csv
for the first mapping entry whose component appears in its rows. Files of the
composite task are also split into one file per sub-task.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, sub, err := cfg.Resolve()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := &splitter.Splitter{
			Tasks:              tasks,
			SubTasks:           sub,
			Composite:          cfg.Composite,
			SkipExisting:       cfg.SkipExisting,
			WriteEmptySubTasks: cfg.WriteEmptySubTasks,
			DryRun:             cfg.DryRun,
			Out:                out,
		}
		root := rootDir(args)
		fmt.Fprintf(out, "Splitting %s with mapping %q...\n", root, tasks.Name)
		report, err := s.Run(root)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		report.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	flags := preprocessCmd.Flags()
	flags.Bool("skip-existing", true, "skip files whose name is already a task label")
	flags.Bool("write-empty-subtasks", false, "write header-only files for sub-tasks without rows")
	flags.Bool("dry-run", false, "report the outputs without writing them")
}
