package bootstrap

import (
	"encoding/json"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// CachedSession is the identity material persisted between page loads so a
// returning visitor can re-establish a session without a fresh redirect.
type CachedSession struct {
	CompanyID string `json:"company_id"`
	Timestamp string `json:"timestamp"`
	HMAC      string `json:"hmac"`
	Token     string `json:"token"`
}

// SessionStore is the durable key/value capability backing the session
// cache. Get returns (nil, nil) when nothing is cached. Clear wipes the
// cache wholesale; it is called on every authentication error.
type SessionStore interface {
	Get() (*CachedSession, error)
	Set(cached *CachedSession) error
	Clear() error
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu     sync.RWMutex
	cached *CachedSession
}

var _ SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (ms *MemoryStore) Get() (*CachedSession, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if ms.cached == nil {
		return nil, nil
	}
	copied := *ms.cached
	return &copied, nil
}

func (ms *MemoryStore) Set(cached *CachedSession) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	copied := *cached
	ms.cached = &copied
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.cached = nil
	return nil
}

var (
	bucketSessionCache = []byte("session_cache")
	keySession         = []byte("session")
)

// BoltStore persists the session cache in a bbolt bucket, surviving process
// restarts the way browser local storage survives page reloads.
type BoltStore struct {
	db *bolt.DB
}

var _ SessionStore = (*BoltStore)(nil)

func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessionCache)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("[NewBoltStore] failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (bs *BoltStore) Get() (*CachedSession, error) {
	var cached *CachedSession
	err := bs.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketSessionCache).Get(keySession)
		if raw == nil {
			return nil
		}
		cached = &CachedSession{}
		return json.Unmarshal(raw, cached)
	})
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func (bs *BoltStore) Set(cached *CachedSession) error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		raw, err := json.Marshal(cached)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketSessionCache).Put(keySession, raw)
	})
}

func (bs *BoltStore) Clear() error {
	return bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSessionCache).Delete(keySession)
	})
}
