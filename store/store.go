// Package store defines the key-value contract the cache adapter talks to.
//
// A Store is an opaque remote (or local) key-value service. Drivers under
// driver/ implement it on top of concrete client libraries.
package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get and Delete when the key is absent.
var ErrNotFound = errors.New("not found")

// Store is the set of operations the adapter needs from a key-value service.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// FlushAll removes every item the store holds.
	FlushAll(ctx context.Context) error
	Close() error
}

// Config carries the connection settings a Driver may honor.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxConns     int
}

// Driver builds a Store for the given server addresses.
// It must not block on network I/O longer than cfg.DialTimeout.
type Driver func(servers []string, cfg Config) (Store, error)
