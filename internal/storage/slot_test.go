package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/warthog-wallet/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveLoadOverwrite(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Load(); !errors.Is(err, model.ErrNoStoredWallet) {
		t.Fatalf("expected ErrNoStoredWallet on empty store, got %v", err)
	}

	if err := s.Save("first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("second"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "second" {
		t.Fatalf("Load = %q, want second", got)
	}

	if err := s.Save("  "); err == nil {
		t.Fatal("expected error for empty blob")
	}
}

func TestStoreClear(t *testing.T) {
	s := openTestStore(t)
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
	if err := s.Save("blob"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, model.ErrNoStoredWallet) {
		t.Fatalf("expected ErrNoStoredWallet after clear, got %v", err)
	}
}

func TestStoreResolve(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Resolve(""); !errors.Is(err, model.ErrNoStoredWallet) {
		t.Fatalf("expected ErrNoStoredWallet, got %v", err)
	}
	if err := s.Save("stored"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Resolve("uploaded"); got != "uploaded" {
		t.Fatalf("Resolve(uploaded) = %q", got)
	}
	if got, _ := s.Resolve(" "); got != "stored" {
		t.Fatalf("Resolve(blank) = %q", got)
	}
}

func TestStorePersistsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "wallet")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Save("blob"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	got, err := s.Load()
	if err != nil || got != "blob" {
		t.Fatalf("Load after reopen = %q, %v", got, err)
	}
}
