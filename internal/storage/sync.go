package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

var tableExtensions = []string{".csv", ".xlsx"}

// SyncTables downloads <prefix><table>.csv (or .xlsx) for every table into dir.
// All tables must be present remotely. It returns the local paths written.
func SyncTables(ctx context.Context, store ObjectStorage, prefix, dir string, tables []string) ([]string, error) {
	objects, err := store.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]string, len(objects))
	for _, obj := range objects {
		keys[strings.ToLower(path.Base(obj.Key))] = obj.Key
	}

	var written []string
	for _, table := range tables {
		key, ext, ok := findTable(keys, table)
		if !ok {
			return written, fmt.Errorf("table %s not found under %q", table, prefix)
		}

		dest := filepath.Join(dir, table+ext)
		if err := store.DownloadObject(ctx, key, dest); err != nil {
			return written, err
		}
		log.Info().Str("table", table).Str("key", key).Str("path", dest).Msg("Dataset synced")
		written = append(written, dest)
	}
	return written, nil
}

func findTable(keys map[string]string, table string) (string, string, bool) {
	for _, ext := range tableExtensions {
		if key, ok := keys[strings.ToLower(table)+ext]; ok {
			return key, ext, true
		}
	}
	return "", "", false
}
