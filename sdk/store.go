package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Store is the committed account state behind a Runtime.
type Store interface {
	// Get returns the account at addr, or nil when the slot is empty.
	Get(ctx context.Context, addr Address) (*Account, error)
	// Apply persists every change or none of them. A nil account deletes the slot.
	Apply(ctx context.Context, changes map[Address]*Account) error
}

// MemStore keeps accounts in a map and can dump them to a json snapshot.
type MemStore struct {
	mu sync.RWMutex
	db map[Address]*Account
}

func NewMemStore() *MemStore {
	return &MemStore{db: make(map[Address]*Account)}
}

func (m *MemStore) Get(_ context.Context, addr Address) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acct, ok := m.db[addr]
	if !ok {
		return nil, nil
	}
	return acct.Clone(), nil
}

func (m *MemStore) Apply(_ context.Context, changes map[Address]*Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for addr, acct := range changes {
		if acct == nil {
			delete(m.db, addr)
			continue
		}
		m.db[addr] = acct.Clone()
	}
	return nil
}

// Len returns the number of stored accounts.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// SaveToFile writes the full map to a json file keyed by base58 address.
func (m *MemStore) SaveToFile(filename string) error {
	m.mu.RLock()
	snapshot := make(map[string]*Account, len(m.db))
	for addr, acct := range m.db {
		snapshot[addr.String()] = acct
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadFromFile replaces the map with a snapshot; a missing file leaves it empty.
func (m *MemStore) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var snapshot map[string]*Account
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", filename, err)
	}
	db := make(map[Address]*Account, len(snapshot))
	for key, acct := range snapshot {
		addr, err := AddressFromString(key)
		if err != nil {
			return fmt.Errorf("decode snapshot key %q: %w", key, err)
		}
		db[addr] = acct
	}
	m.mu.Lock()
	m.db = db
	m.mu.Unlock()
	return nil
}
