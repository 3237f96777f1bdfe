// cmd/tracesplit/list.go
package tracesplit

import (
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group for displaying information.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing information",
	Long:  `The 'list' command groups subcommands that display task mappings and the available commands of tracesplit.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
