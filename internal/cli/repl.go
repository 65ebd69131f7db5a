package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/mcp"
)

func replCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive command shell (method {json params})",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewMCPServer(a.services)
			runREPL(server, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
}

func runREPL(server *mcp.MCPServer, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "CertiMatch CLI started")
	fmt.Fprintln(out, "Type 'help' for available commands or 'quit' to exit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "certimatch> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if input == "quit" || input == "exit" {
			fmt.Fprintln(out, "Goodbye!")
			break
		}

		if input == "help" {
			printHelp(out)
			continue
		}

		handleCommand(server, input, out)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out, "  help                               - Show this help")
	fmt.Fprintln(out, "  quit/exit                          - Exit the application")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Methods (JSON params):")
	for _, m := range mcp.Methods() {
		fmt.Fprintf(out, "  %-34s - %s\n", m.Method, m.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Example usage:")
	fmt.Fprintln(out, `  certimatch.project.create {"name":"RT100","market":"EU"}`)
	fmt.Fprintln(out, `  certimatch.file.upload {"name":"RT100_트랙터_BOM.xlsx","size":52000}`)
	fmt.Fprintln(out, `  certimatch.diagnosis.run {}`)
	fmt.Fprintln(out, `  certimatch.chat {"text":"FAIL 항목 어떻게 고쳐?"}`)
}

func handleCommand(server *mcp.MCPServer, input string, out io.Writer) {
	parts := strings.SplitN(input, " ", 2)
	method := parts[0]
	var params json.RawMessage

	if len(parts) > 1 {
		paramStr := parts[1]
		if err := json.Unmarshal([]byte(paramStr), &params); err != nil {
			fmt.Fprintf(out, "Error: Invalid JSON parameters: %v\n", err)
			return
		}
	}

	result, err := server.HandleCommand(method, params)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	text, err := mcp.FormatResult(result)
	if err != nil {
		fmt.Fprintf(out, "Error formatting result: %v\n", err)
		return
	}
	fmt.Fprintln(out, text)
}
