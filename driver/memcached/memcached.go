// Package memcached provides a store.Store backed by github.com/yeqown/memcached.
package memcached

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/yeqown/memcached"

	"github.com/yeqown/mcache/store"
)

var _ store.Store = (*Store)(nil)

// Store adapts a memcached.Client to store.Store.
type Store struct {
	client memcached.Client
}

// New is a store.Driver. Servers are joined into the comma separated
// address list the client resolves on its own.
func New(servers []string, cfg store.Config) (store.Store, error) {
	opts := []memcached.ClientOption{
		memcached.WithDialTimeout(cfg.DialTimeout),
		memcached.WithReadTimeout(cfg.ReadTimeout),
		memcached.WithWriteTimeout(cfg.WriteTimeout),
	}
	if cfg.MaxConns > 0 {
		opts = append(opts, memcached.WithMaxConns(cfg.MaxConns))
	}

	client, err := memcached.New(strings.Join(servers, ","), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create memcached client")
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	item, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, memcached.ErrNotFound) {
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
	// no flags, no expiry: items live until evicted or flushed.
	return s.client.Set(ctx, key, value, 0, 0)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.client.Delete(ctx, key)
	if err != nil && errors.Is(err, memcached.ErrNotFound) {
		return store.ErrNotFound
	}

	return err
}

func (s *Store) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx)
}

func (s *Store) Close() error {
	return s.client.Close()
}
