package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"
)

// Bucket names
var (
	bucketDetails = []byte("details")
	bucketVideos  = []byte("videos")
)

// entry wraps a cached value with the time it was stored
type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Value    json.RawMessage `json:"value"`
}

// ResponseCache implements domain.ResponseCache using BoltDB.
type ResponseCache struct {
	db  *bolt.DB
	now func() time.Time

	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewResponseCache opens the cache for one catalog endpoint and language.
// Responses are partitioned by a hash of both so that switching locale
// never serves stale translations. An empty baseCacheDir gives a
// memory-only cache.
func NewResponseCache(baseCacheDir, baseURL, language string) (*ResponseCache, error) {
	if baseCacheDir == "" {
		return &ResponseCache{cache: make(map[string][]byte), now: time.Now}, nil
	}

	dir := filepath.Join(baseCacheDir, hashPartition(baseURL, language))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDetails, bucketVideos} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &ResponseCache{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

func hashPartition(baseURL, language string) string {
	normalized := strings.TrimRight(strings.ToLower(baseURL), "/") + "|" + language
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *ResponseCache) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *ResponseCache) get(bucket []byte, key string, maxAge time.Duration, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	data, ok := s.cache[cacheKey]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return false
		}
		s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if data == nil {
			return false
		}

		// Promote to memory cache
		s.mu.Lock()
		s.cache[cacheKey] = data
		s.mu.Unlock()
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return false
	}
	if maxAge > 0 && s.now().Sub(e.StoredAt) > maxAge {
		return false
	}
	return json.Unmarshal(e.Value, dest) == nil
}

func (s *ResponseCache) set(bucket []byte, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry{StoredAt: s.now(), Value: raw})
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Details ===

func (s *ResponseCache) GetDetails(id int, maxAge time.Duration) (domain.Title, bool) {
	var t domain.Title
	ok := s.get(bucketDetails, strconv.Itoa(id), maxAge, &t)
	return t, ok
}

func (s *ResponseCache) SaveDetails(title domain.Title) error {
	return s.set(bucketDetails, strconv.Itoa(title.ID), title)
}

// === Videos ===

func (s *ResponseCache) GetVideos(id int, maxAge time.Duration) ([]domain.Video, bool) {
	var videos []domain.Video
	ok := s.get(bucketVideos, strconv.Itoa(id), maxAge, &videos)
	return videos, ok
}

func (s *ResponseCache) SaveVideos(id int, videos []domain.Video) error {
	return s.set(bucketVideos, strconv.Itoa(id), videos)
}

// InvalidateAll wipes every cached response
func (s *ResponseCache) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Recreate buckets rather than deleting keys under a live cursor
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketDetails, bucketVideos} {
			if err := tx.DeleteBucket(bucket); err != nil && err != bolterrors.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
