package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// slotKey is the only key the store ever writes
var slotKey = []byte("warthogWallet")

// Store is a single-slot store for the encrypted wallet blob
type Store struct {
	db *leveldb.DB
}

// Open opens or creates the store at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a store that lives only in memory
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(lvstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save overwrites the slot with blob
func (s *Store) Save(blob string) error {
	if strings.TrimSpace(blob) == "" {
		return errors.New("refusing to store an empty wallet")
	}
	if err := s.db.Put(slotKey, []byte(blob), nil); err != nil {
		return fmt.Errorf("failed to write wallet: %w", err)
	}
	return nil
}

// Load returns the stored blob or model.ErrNoStoredWallet
func (s *Store) Load() (string, error) {
	data, err := s.db.Get(slotKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", model.ErrNoStoredWallet
		}
		return "", fmt.Errorf("failed to read wallet: %w", err)
	}
	return string(data), nil
}

// Resolve returns uploaded when it is set, otherwise the stored blob
func (s *Store) Resolve(uploaded string) (string, error) {
	if strings.TrimSpace(uploaded) != "" {
		return uploaded, nil
	}
	return s.Load()
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *Store) Clear() error {
	if err := s.db.Delete(slotKey, nil); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
