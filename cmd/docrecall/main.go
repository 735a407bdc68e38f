package main

import (
	"fmt"
	"os"

	"github.com/docrecall/docrecall/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "docrecall",
		Short: "DocRecall CLI - Local document intelligence",
		Long: `DocRecall CLI uploads documents and asks questions over them.

Environment variables:
  DOCRECALL_API_URL   API base URL (default: http://localhost:4000)`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	rootCmd.PersistentFlags().Bool("output", false, "Output raw JSON")

	rootCmd.AddCommand(client.UploadCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.RecentCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
