package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envToken  = "BIZHUB_TOKEN"
	envAPIURL = "BIZHUB_API_URL"

	defaultAPIURL = "http://localhost:8080"
)

// ErrNotLoggedIn is returned when no token is available from flags, env or config
var ErrNotLoggedIn = errors.New("not logged in (run 'bizhub login' or set " + envToken + ")")

type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIClientWithCmd creates an APIClient with config cascade: flag → env → global config → default.
// If cmd is nil, skips flag checking. A token is required.
func NewAPIClientWithCmd(cmd *cobra.Command) (*APIClient, error) {
	c, err := newAnonymousClient(cmd)
	if err != nil {
		return nil, err
	}

	var flagToken string
	if cmd != nil {
		flagToken, _ = cmd.Flags().GetString("token")
	}
	_, token, _ := GetCredentialSource(flagToken, "")
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	c.token = token
	return c, nil
}

// newAnonymousClient resolves only the base URL, for calls made before login
func newAnonymousClient(cmd *cobra.Command) (*APIClient, error) {
	_ = godotenv.Load()

	var flagURL string
	if cmd != nil {
		flagURL, _ = cmd.Flags().GetString("api-url")
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	var cfgURL string
	if cfg != nil {
		cfgURL = cfg.APIURL
	}

	return NewAPIClientWithConfig("", firstNonEmpty(flagURL, os.Getenv(envAPIURL), cfgURL, defaultAPIURL)), nil
}

// NewAPIClientWithConfig creates an APIClient with explicit config
func NewAPIClientWithConfig(token, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BaseURL returns the API base URL the client talks to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// FieldError is one entry of a validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents an error from the API.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, fe := range e.Errors {
			parts = append(parts, fe.Message)
		}
		msg += ": " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, msg)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Get performs a GET request and decodes the response into out.
func (c *APIClient) Get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

// Post performs a POST request with JSON body.
func (c *APIClient) Post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

// Put performs a PUT request with JSON body.
func (c *APIClient) Put(path string, body, out any) error {
	return c.do(http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (c *APIClient) Delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// Location performs a GET that is expected to redirect and returns the target URL
// without following it.
func (c *APIClient) Location(path string) (string, error) {
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	noFollow := *c.httpClient
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", parseAPIError(resp)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("expected redirect, got status %d", resp.StatusCode)
	}
	return location, nil
}

func (c *APIClient) newRequest(method, path string, body any) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *APIClient) do(method, path string, body, out any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)

	var payload struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		Errors:     payload.Errors,
	}
}

// UploadFile uploads a file to the given presigned URL.
func (c *APIClient) UploadFile(uploadURL, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	return c.UploadReader(uploadURL, file, stat.Size(), contentType)
}

// UploadReader uploads data from an io.Reader to the given presigned URL.
func (c *APIClient) UploadReader(uploadURL string, reader io.Reader, size int64, contentType string) error {
	req, err := http.NewRequest(http.MethodPut, uploadURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// DownloadFile downloads a file from the given URL to the specified path.
func (c *APIClient) DownloadFile(url, outputPath string) error {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
