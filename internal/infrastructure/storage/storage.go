// Package storage keeps profile photos in object storage.
package storage

import (
	"context"
	"io"
	"strings"
)

// Storage saves binary objects under caller chosen keys and returns the URL
// the object is served from.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reverses Put's URL back to the object key.
	KeyFromURL(url string) (string, bool)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

func trimBase(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
