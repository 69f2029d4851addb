package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MinIO root credentials used by the test container.
const (
	MinioAccessKey = "minioadmin"
	MinioSecretKey = "minioadmin"
)

// MinioContainer manages a MinIO test container.
type MinioContainer struct {
	container testcontainers.Container
	endpoint  string
}

// SetupMinio starts a MinIO server for a test and registers cleanup.
func SetupMinio(t *testing.T) *MinioContainer {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:RELEASE.2024-08-17T01-24-54Z",
		ExposedPorts: []string{"9000/tcp"},
		Cmd:          []string{"server", "/data"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     MinioAccessKey,
			"MINIO_ROOT_PASSWORD": MinioSecretKey,
		},
		WaitingFor: wait.ForHTTP("/minio/health/live").
			WithPort("9000/tcp").
			WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start MinIO container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MinIO container: %v", err)
		}
	})

	port, err := nat.NewPort("tcp", "9000")
	if err != nil {
		t.Fatalf("Failed to build MinIO port: %v", err)
	}
	endpoint, err := container.PortEndpoint(ctx, port, "")
	if err != nil {
		t.Fatalf("Failed to get MinIO endpoint: %v", err)
	}

	return &MinioContainer{container: container, endpoint: endpoint}
}

// Endpoint returns host:port of the MinIO server.
func (c *MinioContainer) Endpoint() string {
	return c.endpoint
}

