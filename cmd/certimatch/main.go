package main

import (
	"fmt"
	"os"

	"github.com/rcliao/certimatch/internal/cli"
)

func main() {
	// --cli is kept as an alias for the interactive shell
	if len(os.Args) > 1 && os.Args[1] == "--cli" {
		os.Args[1] = "repl"
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
