// Package storage defines the peer's local persistence: the manifest cache and peer metadata.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/foldersync/internal/models"
)

//go:generate moq -out manifest_cache_mock.go . ManifestCache
//go:generate moq -out metadata_mock.go . MetadataStorage

const (
	// ManifestTTL время жизни записи кеша манифестов
	ManifestTTL = 7 * 24 * time.Hour
	// MaxCachedManifests сколько последних манифестов хранится
	MaxCachedManifests = 5
)

// Common peer storage errors
var (
	// ErrCacheMiss indicates that no fresh manifest is cached for the folder
	ErrCacheMiss = errors.New("manifest not cached")

	// ErrUsernameNotSet indicates that no username was saved yet
	ErrUsernameNotSet = errors.New("username not set")
)

// CachedManifest is one manifest cache record.
type CachedManifest struct {
	Timestamp  time.Time        `json:"timestamp"`
	Manifest   *models.Manifest `json:"manifest"`
	FolderName string           `json:"folderName"` // абсолютный путь индексированной папки
}

// ManifestCache stores manifests of previously indexed folders.
type ManifestCache interface {
	// SaveManifest stores a manifest and prunes expired and surplus records
	SaveManifest(ctx context.Context, folder string, manifest *models.Manifest) error

	// LoadManifest returns a fresh cached manifest or ErrCacheMiss
	LoadManifest(ctx context.Context, folder string) (*CachedManifest, error)

	// ListManifests returns fresh records, newest first
	ListManifests(ctx context.Context) ([]CachedManifest, error)

	// ClearManifests removes every record
	ClearManifests(ctx context.Context) error
}

// MetadataStorage stores peer settings.
type MetadataStorage interface {
	// SaveUsername stores the name shown to the other peer
	SaveUsername(ctx context.Context, username string) error

	// GetUsername returns the saved name or ErrUsernameNotSet
	GetUsername(ctx context.Context) (string, error)
}
