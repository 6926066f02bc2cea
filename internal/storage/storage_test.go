package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects    []ObjectInfo
	downloaded map[string]string
	listErr    error
}

func (f *fakeStore) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return f.objects, f.listErr
}

func (f *fakeStore) DownloadObject(ctx context.Context, key, destPath string) error {
	if f.downloaded == nil {
		f.downloaded = make(map[string]string)
	}
	f.downloaded[key] = destPath
	return nil
}

func (f *fakeStore) UploadFile(ctx context.Context, key, path, contentType string) error {
	return nil
}

func TestSyncTables(t *testing.T) {
	store := &fakeStore{objects: []ObjectInfo{
		{Key: "datasets/Sales.csv"},
		{Key: "datasets/inventory.xlsx"},
		{Key: "datasets/inventory.csv"},
		{Key: "datasets/notes.txt"},
	}}
	dir := t.TempDir()

	written, err := SyncTables(context.Background(), store, "datasets/", dir, []string{"sales", "inventory"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "sales.csv"), filepath.Join(dir, "inventory.csv")}, written)
	assert.Equal(t, map[string]string{
		"datasets/Sales.csv":     filepath.Join(dir, "sales.csv"),
		"datasets/inventory.csv": filepath.Join(dir, "inventory.csv"),
	}, store.downloaded)
}

func TestSyncTablesMissingTable(t *testing.T) {
	store := &fakeStore{objects: []ObjectInfo{{Key: "datasets/sales.csv"}}}

	written, err := SyncTables(context.Background(), store, "datasets/", t.TempDir(), []string{"sales", "pricing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing")
	assert.Len(t, written, 1)
}

func TestSyncTablesListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("access denied")}

	_, err := SyncTables(context.Background(), store, "", t.TempDir(), []string{"sales"})
	assert.Error(t, err)
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in         string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{in: "https://s3.example.com/", useSSL: false, wantHost: "s3.example.com", wantSecure: true},
		{in: "http://localhost:9000", useSSL: true, wantHost: "localhost:9000", wantSecure: false},
		{in: "minio:9000", useSSL: false, wantHost: "minio:9000", wantSecure: false},
		{in: "//bucket.host", useSSL: true, wantHost: "bucket.host", wantSecure: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			host, secure := normalizeEndpoint(tt.in, tt.useSSL)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestNewS3ClientValidates(t *testing.T) {
	_, err := NewS3Client(config.StorageConfig{})
	assert.Error(t, err)

	_, err = NewS3Client(config.StorageConfig{Endpoint: "localhost:9000", Bucket: "b"})
	assert.Error(t, err)

	client, err := NewS3Client(config.StorageConfig{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "marketmind",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
