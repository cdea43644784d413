package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/foldersync/internal/models"
	"github.com/iudanet/foldersync/internal/peer/storage"
)

var _ storage.ManifestCache = (*Storage)(nil)

// SaveManifest stores a manifest under the folder key, then drops expired records
// and keeps only the storage.MaxCachedManifests most recent ones.
func (s *Storage) SaveManifest(ctx context.Context, folder string, manifest *models.Manifest) error {
	record := storage.CachedManifest{
		FolderName: folder,
		Manifest:   manifest,
		Timestamp:  s.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketManifests)
		if bucket == nil {
			return fmt.Errorf("manifests bucket not found")
		}

		if err := bucket.Put([]byte(folder), data); err != nil {
			return fmt.Errorf("failed to save manifest: %w", err)
		}

		return s.prune(bucket)
	})
}

// LoadManifest returns the cached manifest of folder or storage.ErrCacheMiss when absent or expired.
func (s *Storage) LoadManifest(ctx context.Context, folder string) (*storage.CachedManifest, error) {
	var record storage.CachedManifest

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketManifests)
		if bucket == nil {
			return fmt.Errorf("manifests bucket not found")
		}

		data := bucket.Get([]byte(folder))
		if data == nil {
			return storage.ErrCacheMiss
		}

		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal manifest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.expired(record) {
		return nil, storage.ErrCacheMiss
	}

	return &record, nil
}

// ListManifests returns fresh records sorted newest first.
func (s *Storage) ListManifests(ctx context.Context) ([]storage.CachedManifest, error) {
	var records []storage.CachedManifest

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketManifests)
		if bucket == nil {
			return fmt.Errorf("manifests bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record storage.CachedManifest
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal manifest %s: %w", k, err)
			}
			if !s.expired(record) {
				records = append(records, record)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// ClearManifests removes every cached manifest.
func (s *Storage) ClearManifests(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketManifests); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to drop manifests bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketManifests); err != nil {
			return fmt.Errorf("failed to create manifests bucket: %w", err)
		}
		return nil
	})
}

func (s *Storage) expired(record storage.CachedManifest) bool {
	return s.now().Sub(record.Timestamp) > storage.ManifestTTL
}

// prune удаляет просроченные записи и оставляет MaxCachedManifests самых свежих
func (s *Storage) prune(bucket *bbolt.Bucket) error {
	type entry struct {
		key       string
		timestamp int64
	}

	var (
		fresh []entry
		stale [][]byte
	)

	err := bucket.ForEach(func(k, v []byte) error {
		var record storage.CachedManifest
		if err := json.Unmarshal(v, &record); err != nil || s.expired(record) {
			stale = append(stale, append([]byte{}, k...))
			return nil
		}
		fresh = append(fresh, entry{key: string(k), timestamp: record.Timestamp.UnixNano()})
		return nil
	})
	if err != nil {
		return err
	}

	sort.Slice(fresh, func(i, j int) bool { return fresh[i].timestamp > fresh[j].timestamp })
	for i := storage.MaxCachedManifests; i < len(fresh); i++ {
		stale = append(stale, []byte(fresh[i].key))
	}

	for _, k := range stale {
		if err := bucket.Delete(k); err != nil {
			return fmt.Errorf("failed to prune manifest: %w", err)
		}
	}

	return nil
}
