// Package memory provides an in-process store.Store backed by a bounded LRU.
//
// It speaks no network protocol; server addresses handed to the driver are
// ignored. Useful for tests and for running the adapter without a server.
package memory

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/yeqown/mcache/store"
)

// DefaultSize is the entry capacity used by Driver.
const DefaultSize = 4096

var _ store.Store = (*Store)(nil)

// Store is the in-memory store. Values are copied on the way in and out.
type Store struct {
	items *lru.Cache[string, []byte]
}

// NewStore creates a Store holding at most size entries.
func NewStore(size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}

	items, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrap(err, "create lru")
	}

	return &Store{items: items}, nil
}

// Driver is a store.Driver returning a fresh Store of DefaultSize entries.
func Driver(_ []string, _ store.Config) (store.Store, error) {
	return NewStore(DefaultSize)
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := s.items.Get(key)
	if !ok {
		return nil, store.ErrNotFound
	}

	return clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.items.Add(key, clone(value))
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.items.Remove(key) {
		return store.ErrNotFound
	}

	return nil
}

func (s *Store) FlushAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.items.Purge()
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return s.items.Len()
}

func (s *Store) Close() error {
	s.items.Purge()
	return nil
}

func clone(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
