package boltdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/storage"
)

// createTestStorage создает временное BoltDB хранилище с управляемыми часами
func createTestStorage(t *testing.T) (*Storage, *time.Time, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "peer_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	cleanup := func() {
		require.NoError(t, store.Close())
		require.NoError(t, os.RemoveAll(tmpDir))
	}

	return store, &now, cleanup
}

func testManifest(size int64) *models.Manifest {
	return &models.Manifest{
		Version:   models.ManifestVersion,
		Folders:   []string{"docs"},
		Files:     []models.FileEntry{{Path: "docs/a.txt", Size: size, Modified: 42}},
		TotalSize: size,
	}
}

func TestSaveAndLoadManifest(t *testing.T) {
	ctx := context.Background()
	store, now, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.LoadManifest(ctx, "/data/photos")
	assert.ErrorIs(t, err, storage.ErrCacheMiss)

	require.NoError(t, store.SaveManifest(ctx, "/data/photos", testManifest(10)))

	record, err := store.LoadManifest(ctx, "/data/photos")
	require.NoError(t, err)
	assert.Equal(t, "/data/photos", record.FolderName)
	assert.Equal(t, testManifest(10), record.Manifest)
	assert.True(t, now.Equal(record.Timestamp))

	// повторное сохранение заменяет запись
	require.NoError(t, store.SaveManifest(ctx, "/data/photos", testManifest(20)))
	record, err = store.LoadManifest(ctx, "/data/photos")
	require.NoError(t, err)
	assert.Equal(t, int64(20), record.Manifest.TotalSize)
}

func TestLoadManifest_Expired(t *testing.T) {
	ctx := context.Background()
	store, now, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.SaveManifest(ctx, "/data/old", testManifest(1)))

	*now = now.Add(storage.ManifestTTL - time.Minute)
	_, err := store.LoadManifest(ctx, "/data/old")
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)
	_, err = store.LoadManifest(ctx, "/data/old")
	assert.ErrorIs(t, err, storage.ErrCacheMiss)

	list, err := store.ListManifests(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveManifest_KeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	store, now, cleanup := createTestStorage(t)
	defer cleanup()

	for i := 0; i < storage.MaxCachedManifests+2; i++ {
		*now = now.Add(time.Minute)
		require.NoError(t, store.SaveManifest(ctx, fmt.Sprintf("/data/%d", i), testManifest(int64(i))))
	}

	list, err := store.ListManifests(ctx)
	require.NoError(t, err)
	require.Len(t, list, storage.MaxCachedManifests)

	// самые свежие первыми, две самые старые вытеснены
	assert.Equal(t, "/data/6", list[0].FolderName)
	assert.Equal(t, "/data/2", list[len(list)-1].FolderName)

	_, err = store.LoadManifest(ctx, "/data/0")
	assert.ErrorIs(t, err, storage.ErrCacheMiss)
	_, err = store.LoadManifest(ctx, "/data/1")
	assert.ErrorIs(t, err, storage.ErrCacheMiss)
}

func TestSaveManifest_PrunesExpired(t *testing.T) {
	ctx := context.Background()
	store, now, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.SaveManifest(ctx, "/data/old", testManifest(1)))
	*now = now.Add(storage.ManifestTTL + time.Hour)
	require.NoError(t, store.SaveManifest(ctx, "/data/new", testManifest(2)))

	count := 0
	err := store.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketManifests).ForEach(func(k, v []byte) error {
			count++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count, "expired record must be removed from the bucket")
}

func TestClearManifests(t *testing.T) {
	ctx := context.Background()
	store, _, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.SaveManifest(ctx, "/data/a", testManifest(1)))
	require.NoError(t, store.SaveManifest(ctx, "/data/b", testManifest(2)))

	require.NoError(t, store.ClearManifests(ctx))

	list, err := store.ListManifests(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// после очистки кеш снова пригоден для записи
	require.NoError(t, store.SaveManifest(ctx, "/data/a", testManifest(1)))
}

func TestManifests_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, _, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketManifests)
	})
	require.NoError(t, err)

	err = store.SaveManifest(ctx, "/data/a", testManifest(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifests bucket not found")

	_, err = store.LoadManifest(ctx, "/data/a")
	require.Error(t, err)

	_, err = store.ListManifests(ctx)
	require.Error(t, err)
}

func TestLoadManifest_Corrupted(t *testing.T) {
	ctx := context.Background()
	store, _, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketManifests).Put([]byte("/data/bad"), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = store.LoadManifest(ctx, "/data/bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrCacheMiss)
}
