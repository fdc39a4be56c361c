package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type cacheEntry struct {
	Content    []byte
	Expiration time.Time
}

type memoryCache struct {
	sync.RWMutex
	items map[string]cacheEntry
}

var cache = &memoryCache{
	items: make(map[string]cacheEntry),
}

// CacheStore is an optional remote backend behind the response cache. The
// redis service satisfies it.
type CacheStore interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
}

const storeKeyPrefix = "respcache:"

var (
	cacheStore   CacheStore
	cacheStoreMu sync.RWMutex
	storeKeys    = make(map[string]struct{})
)

// UseCacheStore routes cached responses through a remote backend in addition
// to the in-memory map; lookups fall back to the backend on an in-memory
// miss. Passing nil detaches the backend again.
func UseCacheStore(s CacheStore) {
	cacheStoreMu.Lock()
	cacheStore = s
	storeKeys = make(map[string]struct{})
	cacheStoreMu.Unlock()
}

func storeLookup(key string) ([]byte, bool) {
	cacheStoreMu.RLock()
	s := cacheStore
	cacheStoreMu.RUnlock()
	if s == nil {
		return nil, false
	}

	var content []byte
	if err := s.Get(storeKeyPrefix+key, &content); err != nil {
		return nil, false
	}
	return content, true
}

func storeWrite(key string, content []byte, expiration time.Duration) {
	cacheStoreMu.Lock()
	s := cacheStore
	if s != nil {
		storeKeys[key] = struct{}{}
	}
	cacheStoreMu.Unlock()
	if s == nil {
		return
	}
	// A failed remote write is not fatal, the in-memory entry still serves.
	_ = s.Set(storeKeyPrefix+key, content, expiration)
}

func storePurge() {
	cacheStoreMu.Lock()
	s := cacheStore
	keys := storeKeys
	storeKeys = make(map[string]struct{})
	cacheStoreMu.Unlock()
	if s == nil {
		return
	}
	for key := range keys {
		_ = s.Delete(storeKeyPrefix + key)
	}
}

// CacheConfig configures the response cache middleware
type CacheConfig struct {
	Expiration time.Duration
	Methods    []string
	KeyFunc    func(*gin.Context) string
}

// DefaultCacheConfig caches GET responses for five minutes
var DefaultCacheConfig = CacheConfig{
	Expiration: 5 * time.Minute,
	Methods:    []string{http.MethodGet},
	KeyFunc:    defaultKeyFunc,
}

// defaultKeyFunc hashes the path plus the sorted query string
func defaultKeyFunc(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	var queryKeys []string
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var queryString string
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			queryString += key + "=" + value + "&"
		}
	}

	hasher := md5.New()
	hasher.Write([]byte(path + "?" + queryString))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Cache creates the in-memory response cache middleware
func Cache(config ...CacheConfig) gin.HandlerFunc {
	var cfg CacheConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultCacheConfig
	}

	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultCacheConfig.Methods
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		methodAllowed := false
		for _, method := range cfg.Methods {
			if c.Request.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)

		cache.RLock()
		entry, found := cache.items[key]
		cache.RUnlock()

		if found && entry.Expiration.After(time.Now()) {
			c.Data(http.StatusOK, "application/json; charset=utf-8", entry.Content)
			c.Abort()
			return
		}

		if content, ok := storeLookup(key); ok {
			cache.Lock()
			cache.items[key] = cacheEntry{
				Content:    content,
				Expiration: time.Now().Add(cfg.Expiration),
			}
			cache.Unlock()

			c.Data(http.StatusOK, "application/json; charset=utf-8", content)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cache.Lock()
			cache.items[key] = cacheEntry{
				Content:    writer.body.Bytes(),
				Expiration: time.Now().Add(cfg.Expiration),
			}
			cache.Unlock()

			storeWrite(key, writer.body.Bytes(), cfg.Expiration)
		}
	}
}

// CacheByParams caches on the path plus the named query parameters
func CacheByParams(expiration time.Duration, params ...string) gin.HandlerFunc {
	return Cache(CacheConfig{
		Expiration: expiration,
		Methods:    []string{http.MethodGet},
		KeyFunc: func(c *gin.Context) string {
			keyParts := []string{c.Request.URL.Path}
			for _, param := range params {
				if value := c.Query(param); value != "" {
					keyParts = append(keyParts, param+"="+value)
				}
			}

			hasher := md5.New()
			hasher.Write([]byte(strings.Join(keyParts, "&")))
			return hex.EncodeToString(hasher.Sum(nil))
		},
	})
}

// PurgeCache drops all cached responses, remote entries included. Mutating
// handlers call this so subsequent reads see fresh data.
func PurgeCache() {
	cache.Lock()
	cache.items = make(map[string]cacheEntry)
	cache.Unlock()

	storePurge()
}

// responseWriter duplicates the response into a buffer for caching
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func init() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cleanExpiredCache()
		}
	}()
}

func cleanExpiredCache() {
	now := time.Now()

	cache.Lock()
	defer cache.Unlock()

	for key, entry := range cache.items {
		if entry.Expiration.Before(now) {
			delete(cache.items, key)
		}
	}
}
