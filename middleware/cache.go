package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheEntry represents a cached response body.
type CacheEntry struct {
	Body        []byte
	ContentType string
	ExpiresAt   time.Time
}

// ResponseCache memoizes GET responses. Used on the reference-data
// endpoints, whose output is static per process.
type ResponseCache struct {
	cache map[string]*CacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewResponseCache creates a new response cache
func NewResponseCache(ttl time.Duration) *ResponseCache {
	rc := &ResponseCache{
		cache: make(map[string]*CacheEntry),
		ttl:   ttl,
	}

	// Clean up expired entries every 5 minutes
	go rc.cleanup()

	return rc
}

// cachedWriter tees the response body so it can be stored.
type cachedWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *cachedWriter) Write(data []byte) (int, error) {
	w.body = append(w.body, data...)
	return w.ResponseWriter.Write(data)
}

// Cache returns a middleware that serves and stores GET responses.
func (rc *ResponseCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := rc.generateKey(c)

		rc.mu.RLock()
		entry, exists := rc.cache[key]
		rc.mu.RUnlock()

		if exists && time.Now().Before(entry.ExpiresAt) {
			c.Data(http.StatusOK, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		writer := &cachedWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if c.Writer.Status() == http.StatusOK && len(writer.body) > 0 {
			rc.mu.Lock()
			rc.cache[key] = &CacheEntry{
				Body:        writer.body,
				ContentType: c.Writer.Header().Get("Content-Type"),
				ExpiresAt:   time.Now().Add(rc.ttl),
			}
			rc.mu.Unlock()
		}
	}
}

// generateKey hashes method, path and query into a cache key.
func (rc *ResponseCache) generateKey(c *gin.Context) string {
	sum := md5.Sum([]byte(c.Request.Method + c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return hex.EncodeToString(sum[:])
}

// cleanup removes expired entries periodically.
func (rc *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for {
		<-ticker.C
		rc.mu.Lock()
		now := time.Now()
		for key, entry := range rc.cache {
			if now.After(entry.ExpiresAt) {
				delete(rc.cache, key)
			}
		}
		rc.mu.Unlock()
	}
}
