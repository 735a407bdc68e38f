//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/docrecall/docrecall/internal/api/handlers"
	"github.com/docrecall/docrecall/internal/embedding"
	"github.com/docrecall/docrecall/internal/repository"
	"github.com/docrecall/docrecall/internal/server"
	"github.com/docrecall/docrecall/internal/service"
	"github.com/docrecall/docrecall/internal/storage"
)

// E2ETestEnv holds the resources for one end-to-end server instance.
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	DataDir      string
	SnapshotPath string
	ServerURL    string
	ServerCloser func()
	HTTPClient   *http.Client
}

// SetupE2EEnv starts a full server against a fresh temp data directory.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	dataDir := t.TempDir()
	return setupE2EEnvAt(t, dataDir)
}

// Restart shuts the server down and brings a new one up over the same
// data directory, to exercise snapshot persistence.
func (e *E2ETestEnv) Restart() *E2ETestEnv {
	e.ServerCloser()
	return setupE2EEnvAt(e.T, e.DataDir)
}

func setupE2EEnvAt(t *testing.T, dataDir string) *E2ETestEnv {
	ctx := context.Background()

	snapshotPath := filepath.Join(dataDir, "docrecall-db.json")
	store, err := repository.OpenDocumentStore(snapshotPath)
	if err != nil {
		t.Fatalf("failed to open document store: %v", err)
	}

	uploads, err := storage.NewLocalStore(filepath.Join(dataDir, "uploads"))
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, store, uploads, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		DataDir:      dataDir,
		SnapshotPath: snapshotPath,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
}

// Get performs a GET request and returns the raw response body.
func (e *E2ETestEnv) Get(path string) (int, []byte, error) {
	resp, err := e.HTTPClient.Get(e.ServerURL + path)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

// Post performs a POST request with a JSON body.
func (e *E2ETestEnv) Post(path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	resp, err := e.HTTPClient.Post(e.ServerURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

// UploadText uploads a single text file through the API.
func (e *E2ETestEnv) UploadText(uploader, filename, content string) (int, []byte, error) {
	return e.Post("/api/documents", map[string]interface{}{
		"uploaderName": uploader,
		"files": []map[string]interface{}{
			{
				"name":    filename,
				"type":    "text/plain",
				"size":    len(content),
				"content": base64.StdEncoding.EncodeToString([]byte(content)),
			},
		},
	})
}

func startServer(t *testing.T, store *repository.DocumentStore, uploads *storage.LocalStore, port int) (string, func()) {
	embedder := embedding.NewHashEmbedder()
	ingestSvc := service.NewIngestService(store, uploads, embedder)
	answerSvc := service.NewAnswerService(store, embedder)

	router := server.NewRouter(server.RouterConfig{
		DocumentsHandler: handlers.NewDocumentsHandler(store, ingestSvc),
		AgentHandler:     handlers.NewAgentHandler(answerSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
