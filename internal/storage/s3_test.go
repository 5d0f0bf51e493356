package storage

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestNewS3ServiceRequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.EqualError(t, err, "EXPORT_BUCKET is required")
}

func TestExportKey(t *testing.T) {
	assert.Equal(t, "exports/abc/imd.csv", ExportKey("abc", "imd.csv"))
}

func TestValidateContentType(t *testing.T) {
	s := &s3Service{}
	assert.NoError(t, s.validateContentType("text/csv"))
	assert.Error(t, s.validateContentType("audio/wav"))
}

func TestGenerateDownloadURLPresignsAgainstEndpoint(t *testing.T) {
	svc, err := NewS3Service(S3Config{
		Bucket:    "imd-exports",
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		URLExpiry: 10 * time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, svc.URLExpiry())

	url, err := svc.GenerateDownloadURL(context.Background(), ExportKey("abc", "imd.csv"), "imd.csv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/imd-exports/exports/abc/imd.csv?"), url)
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "response-content-disposition=")
}

func TestUploadExportRejectsUnknownContentType(t *testing.T) {
	svc, err := NewS3Service(S3Config{Bucket: "imd-exports", Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)

	err = svc.UploadExport(context.Background(), "k", []byte("x"), "application/json", "x.json")
	assert.ErrorContains(t, err, "invalid content type")
}

// TestUploadExport_Integration uploads a CSV to a MinIO container and reads it
// back through the pre-signed URL.
func TestUploadExport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, container.Terminate(ctx))
	}()

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	bucket := "imd-test-" + uuid.New().String()[:8]
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))

	svc, err := NewS3Service(S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	data := []byte("n,m,Sign of n,Sign of m,IMD Frequency (MHz),Overlap\n1,0,1,1,100.0,\n")
	key := ExportKey(uuid.New().String(), "imd_frequencies_with_gnss_overlap.csv")

	require.NoError(t, svc.UploadExport(ctx, key, data, "text/csv", "imd_frequencies_with_gnss_overlap.csv"))

	info, err := mc.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", info.ContentType)
	assert.Equal(t, int64(len(data)), info.Size)

	url, err := svc.GenerateDownloadURL(ctx, key, "imd_frequencies_with_gnss_overlap.csv")
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, data, body)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "imd_frequencies_with_gnss_overlap.csv")
}
