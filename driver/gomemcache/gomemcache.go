// Package gomemcache provides a store.Store backed by github.com/bradfitz/gomemcache.
//
// The underlying client takes no context. A context that is already done
// short-circuits the call; otherwise the client's own Timeout bounds it.
package gomemcache

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"github.com/yeqown/mcache/store"
)

var _ store.Store = (*Store)(nil)

// client is the subset of *memcache.Client used here, narrowed for tests.
type client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
	FlushAll() error
}

var _ client = (*memcache.Client)(nil)

// Store adapts a *memcache.Client to store.Store.
type Store struct {
	client client
}

// New is a store.Driver.
func New(servers []string, cfg store.Config) (store.Store, error) {
	if len(servers) == 0 {
		return nil, errors.New("no servers")
	}

	c := memcache.New(servers...)
	timeout := cfg.ReadTimeout
	if cfg.WriteTimeout > timeout {
		timeout = cfg.WriteTimeout
	}
	if cfg.DialTimeout > timeout {
		timeout = cfg.DialTimeout
	}
	if timeout > 0 {
		c.Timeout = timeout
	}
	if cfg.MaxConns > 0 {
		c.MaxIdleConns = cfg.MaxConns
	}

	return &Store{client: c}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.client.Get(key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, store.ErrNotFound
		}

		return nil, err
	}

	if item.Value == nil {
		return []byte{}, nil
	}

	return item.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.client.Set(&memcache.Item{Key: key, Value: value})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.client.Delete(key)
	if err != nil && errors.Is(err, memcache.ErrCacheMiss) {
		return store.ErrNotFound
	}

	return err
}

func (s *Store) FlushAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.client.FlushAll()
}

// Close is a no-op, idle connections are dropped with the client.
func (s *Store) Close() error {
	return nil
}
