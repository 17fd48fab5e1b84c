package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smarterworkco/GPT-UI/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:17-alpine"
	postgresCreds = "bizhub"

	rustFSImage = "rustfs/rustfs:latest"
	// RustFSAccessKey and RustFSSecretKey are the credentials of every RustFS test container
	RustFSAccessKey = "rustfsadmin"
	RustFSSecretKey = "rustfsadmin"
)

// bizhubTables lists every table, children first
var bizhubTables = []string{
	"chat_messages",
	"chat_sessions",
	"feedback_requests",
	"documents",
	"businesses",
	"users",
}

// PostgresContainer is a throwaway Postgres holding the bizhub database
type PostgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	container, host, port := start(ctx, t, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresCreds,
			"POSTGRES_PASSWORD": postgresCreds,
			"POSTGRES_DB":       postgresCreds,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(60 * time.Second),
	}, "5432")

	return &PostgresContainer{Container: container, Host: host, Port: port}
}

// ConnectionString returns a DSN usable by both pgx and the migrator
func (pc *PostgresContainer) ConnectionString() string {
	return fmt.Sprintf("postgres://%[1]s:%[1]s@%s:%s/%[1]s?sslmode=disable", postgresCreds, pc.Host, pc.Port)
}

func (pc *PostgresContainer) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(pc.Container)
}

// RustFSContainer is a throwaway S3-compatible store for document files
type RustFSContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

func NewRustFSContainer(ctx context.Context, t *testing.T) *RustFSContainer {
	container, host, port := start(ctx, t, testcontainers.ContainerRequest{
		Image:        rustFSImage,
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"RUSTFS_ACCESS_KEY": RustFSAccessKey,
			"RUSTFS_SECRET_KEY": RustFSSecretKey,
		},
		WaitingFor: wait.ForListeningPort("9000/tcp").WithStartupTimeout(30 * time.Second),
	}, "9000")

	return &RustFSContainer{Container: container, Host: host, Port: port}
}

// Endpoint returns the path-style S3 endpoint of the container
func (rc *RustFSContainer) Endpoint() string {
	return fmt.Sprintf("http://%s:%s", rc.Host, rc.Port)
}

func (rc *RustFSContainer) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(rc.Container)
}

func start(ctx context.Context, t *testing.T, req testcontainers.ContainerRequest, port string) (testcontainers.Container, string, string) {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start %s: %v", req.Image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get %s host: %v", req.Image, err)
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("failed to get %s port: %v", req.Image, err)
	}

	return container, host, mapped.Port()
}

// NewTestPool migrates the container's database with the same migrator the
// server uses, then returns a pool connected to it.
func NewTestPool(ctx context.Context, t *testing.T, pc *PostgresContainer, migrationsDir string) *pgxpool.Pool {
	t.Helper()

	dir, err := filepath.Abs(migrationsDir)
	if err != nil {
		t.Fatalf("failed to resolve migrations dir: %v", err)
	}

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 5; attempt++ {
		pool, err = database.Connect(ctx, pc.ConnectionString(), database.PoolOptions{MaxConns: 8})
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if _, err := database.Migrate(pc.ConnectionString(), "file://"+filepath.ToSlash(dir), nil); err != nil {
		pool.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return pool
}

// TruncateAll empties every bizhub table and restarts the id sequences
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(bizhubTables, ", ")+" RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("failed to truncate bizhub tables: %w", err)
	}
	return nil
}
