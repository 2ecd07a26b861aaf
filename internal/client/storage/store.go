// Package storage is the client's persistent key-value store. It holds small
// string blobs keyed by name: the serialized session, the cached news set,
// and the last-news-fetch timestamp.
//
// Callers must treat storage failures as "value absent": log them and carry
// on. Nothing in this package is load-bearing for correctness of the remote
// state, only for what survives a restart.
package storage

import "context"

// Store is the key-value contract. Get returns (nil, nil) when the key is
// absent; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Well-known keys. The session manager and the news accessor write disjoint
// keys; no cross-component coordination is needed.
const (
	KeySession         = "session"
	KeyCachedNews      = "cached_news"
	KeyLastFetchedNews = "last_fetched_news"
)
