package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type searchResponse struct {
	Documents []rankedDocument `json:"documents"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search indexed documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), days)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Only consider documents uploaded in the last N days (0 = all)")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, days int) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	body, err := api.Post("/api/search", queryPayload{Query: query, RecencyDays: days})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if wantsJSON(cmd) {
		fmt.Println(string(body))
		return nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(resp.Documents) == 0 {
		fmt.Println("No matching documents found.")
		return nil
	}

	fmt.Printf("Found %d documents:\n\n", len(resp.Documents))
	for i, doc := range resp.Documents {
		fmt.Printf("%d. %s (relevance %.2f)\n", i+1, doc.Filename, doc.Relevance)
		if doc.Summary != "" {
			fmt.Printf("   %s\n", doc.Summary)
		}
		if len(doc.Highlights) > 0 {
			fmt.Printf("   > %s\n", strings.TrimSpace(doc.Highlights[0]))
		}
		fmt.Printf("   ID: %s\n", doc.ID)
	}

	return nil
}
