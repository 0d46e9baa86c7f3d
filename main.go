package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/cwlogs-mcp/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cwlogs-mcp",
		Short: "Read-only CloudWatch Logs tools over MCP",
	}

	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewToolsCmd())
	rootCmd.AddCommand(cmd.NewCallCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
