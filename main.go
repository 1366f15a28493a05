// ./main.go
package main

import (
	"github.com/depscope/depscope-cli/cmd"
)

// main is the entry point for the depscope CLI.
func main() {
	cmd.Execute()
}
