package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type queryPayload struct {
	Query       string `json:"query"`
	RecencyDays int    `json:"recencyDays,omitempty"`
}

type rankedDocument struct {
	ID         string   `json:"id"`
	Filename   string   `json:"filename"`
	Uploader   string   `json:"uploader_name"`
	Summary    string   `json:"summary"`
	Relevance  float64  `json:"relevance"`
	Highlights []string `json:"highlights"`
}

type askResponse struct {
	Response  string           `json:"response"`
	Documents []rankedDocument `json:"documents"`
	Steps     []string         `json:"steps"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var days int
	var showSteps bool

	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Ask a question over the indexed documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), days, showSteps)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Only consider documents uploaded in the last N days (0 = all)")
	cmd.Flags().BoolVar(&showSteps, "steps", false, "Show the reasoning trace")

	return cmd
}

func runAsk(cmd *cobra.Command, query string, days int, showSteps bool) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	body, err := api.Post("/api/agent", queryPayload{Query: query, RecencyDays: days})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if wantsJSON(cmd) {
		fmt.Println(string(body))
		return nil
	}

	var resp askResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Println(resp.Response)

	if showSteps && len(resp.Steps) > 0 {
		fmt.Println("\nReasoning trace:")
		for i, step := range resp.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}

	return nil
}
