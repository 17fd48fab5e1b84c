//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smarterworkco/GPT-UI/internal/api/handlers"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/smarterworkco/GPT-UI/internal/server"
	"github.com/smarterworkco/GPT-UI/internal/service"
	"github.com/smarterworkco/GPT-UI/internal/storage"
	"github.com/smarterworkco/GPT-UI/internal/testutil"
)

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	RustFSC      *testutil.RustFSContainer
	Pool         *pgxpool.Pool
	Repo         *repository.PostgresRepository
	ServerURL    string
	ServerCloser func()
	S3Client     *storage.S3Client
	BinaryDir    string
	ConfigDir    string
	HTTPClient   *http.Client
}

// SetupE2EEnv creates a full E2E test environment with containers and server
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	s3C := testutil.NewRustFSContainer(ctx, t)

	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        s3C.Endpoint(),
		Region:          "us-east-1",
		AccessKeyID:     testutil.RustFSAccessKey,
		SecretAccessKey: testutil.RustFSSecretKey,
		Bucket:          "bizhub-e2e",
		UsePathStyle:    true,
	})
	if err != nil {
		t.Fatalf("failed to create S3 client: %v", err)
	}
	if err := s3Client.EnsureBucket(ctx); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	repo := repository.NewPostgresRepository(pool)
	serverURL, serverCloser := startServer(t, pool, repo, s3Client, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		RustFSC:      s3C,
		Pool:         pool,
		Repo:         repo,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		S3Client:     s3Client,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.RustFSC != nil {
		e.RustFSC.Terminate(e.Ctx)
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// Register creates an account and returns its token
func (e *E2ETestEnv) Register(username string) string {
	var res struct {
		Token string `json:"token"`
	}
	status, err := e.Do(http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}, "", &res)
	if err != nil || status != http.StatusCreated {
		e.T.Fatalf("failed to register %s: status %d: %v", username, status, err)
	}
	return res.Token
}

// BuildBinaries builds the bizhub client binary
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "bizhub-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir
	e.ConfigDir = filepath.Join(tmpDir, "config")

	cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, "bizhub"), "./cmd/bizhub")
	cmd.Dir = "../.."
	if out, err := cmd.CombinedOutput(); err != nil {
		e.T.Fatalf("failed to build bizhub: %v\n%s", err, out)
	}
}

// RunBizhub runs the bizhub CLI with its config isolated to the test
func (e *E2ETestEnv) RunBizhub(workDir string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "bizhub"), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"BIZHUB_API_URL="+e.ServerURL,
		"BIZHUB_TOKEN=",
		"XDG_CONFIG_HOME="+e.ConfigDir,
		"HOME="+e.ConfigDir,
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// Do performs a JSON request and decodes a successful response into out
func (e *E2ETestEnv) Do(method, path string, body any, token string, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, e.ServerURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

// Location performs an authenticated GET and returns the redirect target
func (e *E2ETestEnv) Location(path, token string) (string, int, error) {
	req, err := http.NewRequest(http.MethodGet, e.ServerURL+path, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	return resp.Header.Get("Location"), resp.StatusCode, nil
}

// UploadFile uploads a file to the presigned URL
func (e *E2ETestEnv) UploadFile(uploadURL string, content []byte, contentType string) error {
	req, err := http.NewRequest(http.MethodPut, uploadURL, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// DownloadFile downloads a file from the presigned URL
func (e *E2ETestEnv) DownloadFile(downloadURL string) ([]byte, error) {
	resp, err := e.HTTPClient.Get(downloadURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type cannedCompleter struct{}

func (cannedCompleter) Complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	return "noted: " + history[len(history)-1].Content, nil
}

func (cannedCompleter) Provider() string { return "canned" }

// startServer starts the HTTP server with all handlers
func startServer(t *testing.T, pool *pgxpool.Pool, repo *repository.PostgresRepository, s3Client *storage.S3Client, port int) (string, func()) {
	auth := service.NewAuthService(repo, service.NewTokenIssuer("e2e-secret", time.Hour))
	chat := service.NewChatService(repo, cannedCompleter{}, nil)
	files := service.NewDocumentFileService(repo, s3Client, nil)

	router := server.NewRouter(server.RouterConfig{
		TokenValidator:   auth,
		BusinessResolver: repo,
		AIRateLimiter:    middleware.NewRateLimiter(60, 10),
		HealthHandler:    handlers.NewHealthHandler(pool),
		AuthHandler:      handlers.NewAuthHandler(auth),
		AccountHandler:   handlers.NewAccountHandler(repo, repo),
		DocumentHandler:  handlers.NewDocumentHandler(repo, files),
		FeedbackHandler:  handlers.NewFeedbackHandler(repo),
		ChatHandler:      handlers.NewChatHandler(repo, chat),
		AnalyticsHandler: handlers.NewAnalyticsHandler(repo),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
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
