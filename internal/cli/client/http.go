package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	envAPIURL = "DOCRECALL_API_URL"

	defaultAPIURL = "http://localhost:4000"
)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient resolves the base URL with the cascade flag > env > default.
func NewAPIClient(cmd *cobra.Command) (*APIClient, error) {
	_ = godotenv.Load()

	var flags *pflag.FlagSet
	if cmd != nil {
		flags = cmd.Flags()
	}
	baseURL := resolveString(flags, "api-url", envAPIURL, defaultAPIURL)

	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// resolveString picks the first non-empty value among flag, environment
// variable, and fallback.
func resolveString(flags *pflag.FlagSet, flagName, envName, fallback string) string {
	if flags != nil {
		if v, err := flags.GetString(flagName); err == nil && v != "" {
			return v
		}
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}

// wantsJSON reports whether the user asked for raw JSON output.
func wantsJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	v, err := cmd.Flags().GetBool("output")
	return err == nil && v
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// Get performs a GET request, retrying transient failures with
// exponential backoff. GET is safe to retry; POST is not.
func (c *APIClient) Get(path string) ([]byte, error) {
	var body []byte

	operation := func() error {
		resp, err := c.httpClient.Get(c.baseURL + path)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error (%d)", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(apiErrorFromBody(resp.StatusCode, data))
		}

		body = data
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// Post performs a POST request with a JSON body. No retries.
func (c *APIClient) Post(path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}

	return body, nil
}

func apiErrorFromBody(status int, body []byte) error {
	var parsed struct {
		Error string `json:"error"`
	}
	message := string(body)
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		message = parsed.Error
	}
	return &APIError{StatusCode: status, Message: message}
}
