package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type uploadFilePayload struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

type uploadPayload struct {
	UploaderName string              `json:"uploaderName"`
	Files        []uploadFilePayload `json:"files"`
}

type uploadResponse struct {
	Uploaded int `json:"uploaded"`
	Failures []struct {
		Filename string `json:"filename"`
		Reason   string `json:"reason"`
	} `json:"failures"`
}

// UploadCmd creates the upload command.
func UploadCmd() *cobra.Command {
	var uploader string

	cmd := &cobra.Command{
		Use:   "upload <files...>",
		Short: "Upload documents for indexing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, uploader, args)
		},
	}

	cmd.Flags().StringVarP(&uploader, "uploader", "u", "", "Name recorded as the uploader (required)")
	_ = cmd.MarkFlagRequired("uploader")

	return cmd
}

func runUpload(cmd *cobra.Command, uploader string, paths []string) error {
	api, err := NewAPIClient(cmd)
	if err != nil {
		return err
	}

	payload := uploadPayload{UploaderName: uploader}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		payload.Files = append(payload.Files, uploadFilePayload{
			Name:    filepath.Base(path),
			Type:    contentType,
			Size:    int64(len(data)),
			Content: base64.StdEncoding.EncodeToString(data),
		})
	}

	body, err := api.Post("/api/documents", payload)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if wantsJSON(cmd) {
		fmt.Println(string(body))
		return nil
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("Uploaded %d of %d files.\n", resp.Uploaded, len(paths))
	for _, failure := range resp.Failures {
		fmt.Printf("  failed: %s (%s)\n", failure.Filename, failure.Reason)
	}
	if len(resp.Failures) > 0 {
		return fmt.Errorf("%d files failed to upload", len(resp.Failures))
	}
	return nil
}
