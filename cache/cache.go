// Package cache stores rendered pages for a fixed time.
package cache

import (
	"bytes"
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"blogger/monitoring"
)

// Entry is a stored response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache is safe for concurrent use. Entries expire after the TTL the
// cache was built with.
type PageCache interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Clear(ctx context.Context) error
}

// KeyFunc derives the cache key of a request.
type KeyFunc func(r *http.Request) string

type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (rw *recorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(p []byte) (int, error) {
	rw.buf.Write(p)
	return rw.ResponseWriter.Write(p)
}

// Middleware serves GET requests from c when possible and stores successful
// responses. name labels the cache in metrics.
func Middleware(c PageCache, name string, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			k := key(r)
			entry, ok, err := c.Get(r.Context(), k)
			if err != nil {
				logrus.WithError(err).WithField("key", k).Warn("page cache read failed")
			}
			if ok {
				monitoring.CacheRequests.WithLabelValues(name, "hit").Inc()
				if entry.ContentType != "" {
					w.Header().Set("Content-Type", entry.ContentType)
				}
				w.WriteHeader(entry.Status)
				w.Write(entry.Body)
				return
			}
			monitoring.CacheRequests.WithLabelValues(name, "miss").Inc()

			rw := &recorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			if rw.status != http.StatusOK {
				return
			}

			stored := &Entry{
				Status:      rw.status,
				ContentType: rw.Header().Get("Content-Type"),
				Body:        rw.buf.Bytes(),
			}
			if err := c.Set(r.Context(), k, stored); err != nil {
				logrus.WithError(err).WithField("key", k).Warn("page cache write failed")
			}
		})
	}
}
