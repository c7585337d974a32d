package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/princevibe/books-backend/internal/repository/localstore"
	"github.com/princevibe/books-backend/internal/storage"
	"github.com/princevibe/books-backend/internal/store"
)

type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) ListObjects(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return infos, nil
}

func (f *fakeObjectStorage) DownloadObject(ctx context.Context, key string, destPath string) error {
	data, ok := f.objects[key]
	if !ok {
		return fmt.Errorf("object %s not found", key)
	}
	return os.WriteFile(destPath, data, 0o644)
}

func (f *fakeObjectStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	f.objects[key] = data
	return nil
}

func newSeededStore(t *testing.T) *localstore.Store {
	t.Helper()
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.New error: %v", err)
	}
	if err := local.Replace(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	return local
}

func TestBackup_UploadsTimestampedSnapshot(t *testing.T) {
	ctx := context.Background()
	objStore := newFakeObjectStorage()
	svc := NewBackupService(newSeededStore(t), objStore)

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	key, err := svc.Backup(ctx, now)
	if err != nil {
		t.Fatalf("Backup error: %v", err)
	}
	if key != "backups/snapshot-20250315T120000Z.json" {
		t.Fatalf("unexpected backup key %q", key)
	}

	data, ok := objStore.objects[key]
	if !ok {
		t.Fatalf("backup object %s was not uploaded", key)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("backup object is not valid JSON: %v", err)
	}
	if len(snap.Sales) != 2 {
		t.Errorf("backed-up sales expected 2, got %d", len(snap.Sales))
	}
	if snap.Settings.CurrencyCode != "PKR" {
		t.Errorf("backed-up currency expected PKR, got %q", snap.Settings.CurrencyCode)
	}
}

func TestListAndRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	objStore := newFakeObjectStorage()

	key, err := NewBackupService(newSeededStore(t), objStore).Backup(ctx, time.Now())
	if err != nil {
		t.Fatalf("Backup error: %v", err)
	}

	backups, err := NewBackupService(nil, objStore).List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Key != key || backups[0].Size == 0 {
		t.Errorf("unexpected backup listing %+v", backups[0])
	}

	target, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.New error: %v", err)
	}
	if err := NewBackupService(target, objStore).Restore(ctx, key); err != nil {
		t.Fatalf("Restore error: %v", err)
	}

	sales, err := target.Sales(ctx)
	if err != nil {
		t.Fatalf("Sales error: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("restored sales expected 2, got %d", len(sales))
	}
	if !sales[0].SellingPrice.Equal(dec("7000")) {
		t.Errorf("restored selling price expected 7000, got %s", sales[0].SellingPrice)
	}
	settings, err := target.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if !settings.ReinvestmentPercentage.Equal(dec("70")) {
		t.Errorf("restored reinvestment expected 70, got %s", settings.ReinvestmentPercentage)
	}
}

func TestRestore_UnknownKeyFails(t *testing.T) {
	svc := NewBackupService(newSeededStore(t), newFakeObjectStorage())
	if err := svc.Restore(context.Background(), "backups/missing.json"); err == nil {
		t.Fatal("expected error for missing backup key")
	}
}
