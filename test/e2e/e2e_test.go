//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Health(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	status, body, err := env.Get("/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestE2E_DocumentLifecycle(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	content := "The migration to the new billing system finished in March. " +
		"Invoices are now generated nightly. Support tickets dropped by half after the rollout."

	t.Run("upload", func(t *testing.T) {
		status, body, err := env.UploadText("casey", "billing-notes.txt", content)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.JSONEq(t, `{"uploaded":1}`, string(body))
	})

	t.Run("listed as recent", func(t *testing.T) {
		status, body, err := env.Get("/api/documents?days=7")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		var resp struct {
			Documents []struct {
				ID       string `json:"id"`
				Filename string `json:"filename"`
				Uploader string `json:"uploader_name"`
				Summary  string `json:"summary"`
			} `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		require.Len(t, resp.Documents, 1)
		assert.Equal(t, "billing-notes.txt", resp.Documents[0].Filename)
		assert.Equal(t, "casey", resp.Documents[0].Uploader)
		assert.Contains(t, resp.Documents[0].Summary, "billing system")
	})

	t.Run("ask cites the document", func(t *testing.T) {
		status, body, err := env.Post("/api/agent", map[string]interface{}{
			"query": "billing system migration",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		var resp struct {
			Response  string   `json:"response"`
			Steps     []string `json:"steps"`
			Documents []struct {
				Filename  string  `json:"filename"`
				Relevance float64 `json:"relevance"`
			} `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Contains(t, resp.Response, "billing-notes.txt")
		assert.Len(t, resp.Steps, 5)
		require.Len(t, resp.Documents, 1)
		assert.Greater(t, resp.Documents[0].Relevance, 0.0)
	})

	t.Run("search returns ranked documents", func(t *testing.T) {
		status, body, err := env.Post("/api/search", map[string]interface{}{
			"query": "support tickets rollout",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		var resp struct {
			Documents []struct {
				Filename   string   `json:"filename"`
				Highlights []string `json:"highlights"`
			} `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		require.Len(t, resp.Documents, 1)
		assert.NotEmpty(t, resp.Documents[0].Highlights)
	})

	t.Run("snapshot survives restart", func(t *testing.T) {
		env = env.Restart()

		status, body, err := env.Get("/api/documents")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		var resp struct {
			Documents []json.RawMessage `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Len(t, resp.Documents, 1)
	})

	t.Run("raw bytes stored on disk", func(t *testing.T) {
		entries, err := os.ReadDir(env.DataDir + "/uploads")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Name(), "billing-notes.txt")
	})
}

func TestE2E_ValidationErrors(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("upload without uploader", func(t *testing.T) {
		status, body, err := env.Post("/api/documents", map[string]interface{}{
			"files": []map[string]interface{}{{"name": "a.txt", "content": "aGk="}},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(body), "Missing uploader name or files")
	})

	t.Run("agent without query", func(t *testing.T) {
		status, body, err := env.Post("/api/agent", map[string]interface{}{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, string(body), "Query is required")
	})
}

func TestE2E_EmptyStore(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	status, body, err := env.Post("/api/agent", map[string]interface{}{
		"query": "anything at all",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Response  string            `json:"response"`
		Documents []json.RawMessage `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp.Response, "could not find information")
	assert.Empty(t, resp.Documents)
}
