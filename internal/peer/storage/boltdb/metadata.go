package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/foldersync/internal/peer/storage"
)

const (
	keyUsername = "username"
)

var _ storage.MetadataStorage = (*Storage)(nil)

// SaveUsername saves the name shown to the other peer
func (s *Storage) SaveUsername(ctx context.Context, username string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyUsername), []byte(username)); err != nil {
			return fmt.Errorf("failed to save username: %w", err)
		}

		return nil
	})
}

// GetUsername retrieves the saved username
// Returns storage.ErrUsernameNotSet if nothing was saved yet
func (s *Storage) GetUsername(ctx context.Context) (string, error) {
	var username string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		value := bucket.Get([]byte(keyUsername))
		if value == nil {
			return storage.ErrUsernameNotSet
		}

		// bbolt отдает срез, живущий только внутри транзакции
		username = string(value)
		return nil
	})

	if err != nil {
		return "", err
	}

	return username, nil
}
