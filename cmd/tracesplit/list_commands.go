// cmd/tracesplit/list_commands.go
package tracesplit

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// listAllCommands recursively traverses the command tree starting from root
// and prints each command path and short description in a padded, two-column layout.
func listAllCommands(w io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")

	maxPathLength := 0
	for _, data := range commandData {
		if len(data.path) > maxPathLength {
			maxPathLength = len(data.path)
		}
	}

	fmt.Fprintln(w, "Commands and Subcommands:")
	for _, data := range commandData {
		fmt.Fprintf(w, "  %s%s%s\n", data.path, strings.Repeat(" ", maxPathLength-len(data.path)+2), data.description)
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs. Cobra's generated help and completion commands are
// left out.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	var allData []commandInfo

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData = append(allData, commandInfo{
		path:        indent + fullPath,
		description: cmd.Short,
	})

	for _, subCmd := range cmd.Commands() {
		if !subCmd.IsAvailableCommand() || subCmd.Name() == "completion" {
			continue
		}
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}

	return allData
}
