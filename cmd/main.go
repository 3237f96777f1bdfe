// cmd/main.go
package main

import cmd "github.com/mwiater/tracesplit/cmd/tracesplit"

// main starts the tracesplit CLI by delegating to the cobra root command
// defined in the tracesplit package.
func main() {
	cmd.Execute()
}
