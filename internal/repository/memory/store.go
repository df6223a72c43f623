// Package memory holds the reference implementations of the account and key
// stores. They back the dev profile and tests; production uses postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"prekeyd/internal/model"
)

var (
	_ model.AccountStore = (*AccountStore)(nil)
	_ model.KeyStore     = (*KeyStore)(nil)
)

// AccountStore is an in-memory account store safe for concurrent use.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]model.Account),
	}
}

// Put registers or replaces an account. It exists for seeding; the retrieval
// path never writes.
func (s *AccountStore) Put(account model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Number] = account
}

func (s *AccountStore) GetByNumber(ctx context.Context, number string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[number]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return account, nil
}

// KeyStore is an in-memory key store safe for concurrent use.
type KeyStore struct {
	mu   sync.RWMutex
	keys map[string]map[int64][]model.PreKey
}

func NewKeyStore() *KeyStore {
	return &KeyStore{
		keys: make(map[string]map[int64][]model.PreKey),
	}
}

// Put provisions a key for a device. It exists for seeding; the retrieval
// path never writes.
func (s *KeyStore) Put(key model.PreKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	devices, ok := s.keys[key.Number]
	if !ok {
		devices = make(map[int64][]model.PreKey)
		s.keys[key.Number] = devices
	}
	devices[key.DeviceID] = append(devices[key.DeviceID], key)
}

func (s *KeyStore) GetByNumberAndDevice(ctx context.Context, number string, deviceID int64) (model.PreKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	devices, ok := s.keys[number]
	if !ok {
		return model.PreKey{}, model.ErrNotFound
	}
	keys := devices[deviceID]
	if len(keys) == 0 {
		return model.PreKey{}, model.ErrNotFound
	}
	return currentKey(keys), nil
}

func (s *KeyStore) GetByNumber(ctx context.Context, number string) ([]model.PreKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	devices, ok := s.keys[number]
	if !ok || len(devices) == 0 {
		return nil, model.ErrNotFound
	}

	deviceIDs := make([]int64, 0, len(devices))
	for id := range devices {
		deviceIDs = append(deviceIDs, id)
	}
	sort.Slice(deviceIDs, func(i, j int) bool { return deviceIDs[i] < deviceIDs[j] })

	result := make([]model.PreKey, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		if keys := devices[id]; len(keys) > 0 {
			result = append(result, currentKey(keys))
		}
	}
	if len(result) == 0 {
		return nil, model.ErrNotFound
	}
	return result, nil
}

// currentKey mirrors the postgres lookups: the lowest key id is current.
func currentKey(keys []model.PreKey) model.PreKey {
	current := keys[0]
	for _, key := range keys[1:] {
		if key.KeyID < current.KeyID {
			current = key
		}
	}
	return current
}
