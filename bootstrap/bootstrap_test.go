package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnifact/pdf-table-extractor/bootstrap"
	"github.com/magnifact/pdf-table-extractor/config"
	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/internal/testutil"
	"github.com/magnifact/pdf-table-extractor/storage/local"
	"github.com/magnifact/pdf-table-extractor/storage/minio"
	s3store "github.com/magnifact/pdf-table-extractor/storage/s3"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  slog.Level
		check  func(t *testing.T, out string)
	}{
		{
			name:   "json",
			format: "json",
			level:  slog.LevelInfo,
			check: func(t *testing.T, out string) {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &entry))
				assert.Equal(t, "visible", entry["msg"])
				assert.NotContains(t, out, "hidden")
			},
		},
		{
			name:   "text",
			format: "text",
			level:  slog.LevelDebug,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "msg=hidden")
				assert.Contains(t, out, "msg=visible")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.LogFormat = tt.format
			cfg.LogLevel = tt.level

			var buf bytes.Buffer
			logger := bootstrap.NewLogger(cfg, &buf)
			logger.Debug("hidden")
			logger.Info("visible")

			tt.check(t, strings.TrimSpace(buf.String()))
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "guess"

	app, err := bootstrap.New(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Equal(t, ferrors.CodeInvalidConfig, ferrors.CodeOf(err))
}

func TestNew_Backends(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		options []bootstrap.Option
		check   func(t *testing.T, app *bootstrap.App)
	}{
		{
			name: "s3",
			mutate: func(cfg *config.Config) {
				cfg.S3.Region = "eu-west-1"
				cfg.S3.Endpoint = "http://localhost:4566"
			},
			options: []bootstrap.Option{bootstrap.WithAWSConfig(aws.Config{Region: "us-east-1"})},
			check: func(t *testing.T, app *bootstrap.App) {
				assert.IsType(t, &s3store.Client{}, app.Store)
			},
		},
		{
			name: "minio with static credentials",
			mutate: func(cfg *config.Config) {
				cfg.Backend = domain.StorageBackendMinio
				cfg.Minio.Endpoint = "localhost:9000"
				cfg.Minio.AccessKey = "minioadmin"
				cfg.Minio.SecretKey = "minioadmin"
			},
			check: func(t *testing.T, app *bootstrap.App) {
				assert.IsType(t, &minio.Store{}, app.Store)
			},
		},
		{
			name: "local",
			mutate: func(cfg *config.Config) {
				cfg.Backend = domain.StorageBackendLocal
				cfg.LocalRoot = t.TempDir()
			},
			check: func(t *testing.T, app *bootstrap.App) {
				assert.IsType(t, &local.Store{}, app.Store)
			},
		},
		{
			name:    "store override",
			options: []bootstrap.Option{bootstrap.WithStore(local.NewInMemory())},
			check: func(t *testing.T, app *bootstrap.App) {
				assert.IsType(t, &local.Store{}, app.Store)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Strategy = domain.TableStrategyAuto
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			options := append([]bootstrap.Option{bootstrap.WithLogOutput(&bytes.Buffer{})}, tt.options...)
			app, err := bootstrap.New(context.Background(), cfg, options...)
			require.NoError(t, err)

			assert.Same(t, cfg, app.Config)
			assert.Equal(t, domain.TableStrategyAuto, app.Extractor.Options().Strategy)
			assert.NotNil(t, app.Converter)
			assert.NotNil(t, app.Handler)
			tt.check(t, app)
		})
	}
}

func TestNew_LocalEndToEnd(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "magnifact-pdf", "input-pdf-files", "q1.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, testutil.RuledTablePDF(t, [][]string{{"Month", "Total"}, {"Jan", "10"}}), 0o644))

	cfg := config.Default()
	cfg.Backend = domain.StorageBackendLocal
	cfg.LocalRoot = root

	var logs bytes.Buffer
	app, err := bootstrap.New(context.Background(), cfg, bootstrap.WithLogOutput(&logs))
	require.NoError(t, err)

	event := events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: "magnifact-pdf"},
			Object: events.S3Object{Key: "input-pdf-files/q1.pdf"},
		},
	}}}
	resp, err := app.Handler.Handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out, err := os.ReadFile(filepath.Join(root, "magnifact-pdf", "output-files", "q1.xlsx"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))
	assert.Contains(t, logs.String(), "converted PDF")
}
