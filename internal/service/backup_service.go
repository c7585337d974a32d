// internal/service/backup_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/princevibe/books-backend/internal/repository"
	"github.com/princevibe/books-backend/internal/storage"
	"github.com/princevibe/books-backend/internal/store"
)

// backupPrefix is where snapshot backups live in the bucket.
const backupPrefix = "backups/"

// BackupService uploads a full snapshot of a store as one JSON object.
type BackupService struct {
	books   repository.Books
	storage storage.ObjectStorage
}

func NewBackupService(books repository.Books, objectStorage storage.ObjectStorage) *BackupService {
	return &BackupService{books: books, storage: objectStorage}
}

// Backup reads every collection, serializes the snapshot, and uploads it
// under a timestamped key. It returns the object key.
func (s *BackupService) Backup(ctx context.Context, now time.Time) (string, error) {
	snap := &store.Snapshot{}
	var err error

	if snap.Inventory, err = s.books.Inventory(ctx); err != nil {
		return "", fmt.Errorf("backup read inventory: %w", err)
	}
	if snap.Purchases, err = s.books.Purchases(ctx); err != nil {
		return "", fmt.Errorf("backup read purchases: %w", err)
	}
	if snap.Sales, err = s.books.Sales(ctx); err != nil {
		return "", fmt.Errorf("backup read sales: %w", err)
	}
	if snap.Expenses, err = s.books.Expenses(ctx); err != nil {
		return "", fmt.Errorf("backup read expenses: %w", err)
	}
	if snap.Partners, err = s.books.Partners(ctx); err != nil {
		return "", fmt.Errorf("backup read partners: %w", err)
	}
	if snap.Settings, err = s.books.Settings(ctx); err != nil {
		return "", fmt.Errorf("backup read settings: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("backup encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%ssnapshot-%s.json", backupPrefix, now.UTC().Format("20060102T150405Z"))
	if err := s.storage.UploadObject(ctx, key, data); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("snapshot backup uploaded")
	return key, nil
}

// List returns every stored snapshot backup.
func (s *BackupService) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.storage.ListObjects(ctx, backupPrefix)
}

// Restore downloads a snapshot backup and replaces the store contents with
// it. The whole dataset is swapped; there is no merge.
func (s *BackupService) Restore(ctx context.Context, key string) error {
	tmpDir, err := os.MkdirTemp("", "books-restore-*")
	if err != nil {
		return fmt.Errorf("restore temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	destPath := filepath.Join(tmpDir, "snapshot.json")
	if err := s.storage.DownloadObject(ctx, key, destPath); err != nil {
		return err
	}

	data, err := os.ReadFile(destPath)
	if err != nil {
		return fmt.Errorf("restore read snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("restore decode snapshot %s: %w", key, err)
	}

	if err := s.books.Replace(ctx, &snap); err != nil {
		return err
	}

	log.Info().Str("key", key).Msg("snapshot backup restored")
	return nil
}
