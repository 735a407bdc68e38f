package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type recentDocument struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	Uploader   string    `json:"uploader_name"`
	Summary    string    `json:"summary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type recentResponse struct {
	Documents []recentDocument `json:"documents"`
}

// RecentCmd creates the recent command.
func RecentCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(cmd, days)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Only list documents uploaded in the last N days (0 = all)")

	return cmd
}

func runRecent(cmd *cobra.Command, days int) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	path := "/api/documents"
	if days > 0 {
		path = fmt.Sprintf("/api/documents?days=%d", days)
	}

	body, err := api.Get(path)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if wantsJSON(cmd) {
		fmt.Println(string(body))
		return nil
	}

	var resp recentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(resp.Documents) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Printf("Found %d documents:\n\n", len(resp.Documents))
	for i, doc := range resp.Documents {
		fmt.Printf("%d. %s (%s, %d bytes)\n", i+1, doc.Filename, doc.FileType, doc.FileSize)
		fmt.Printf("   Uploaded by %s on %s\n", doc.Uploader, doc.UploadedAt.Format("2006-01-02 15:04"))
		if doc.Summary != "" {
			fmt.Printf("   %s\n", doc.Summary)
		}
		fmt.Printf("   ID: %s\n", doc.ID)
	}

	return nil
}
