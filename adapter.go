package mcache

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yeqown/mcache/store"
)

// Cache is the interface a document client uses for optional
// read-through/write-through caching.
type Cache interface {
	Get(ctx context.Context, key any) *Future[[]byte]
	Set(ctx context.Context, key any, value []byte) *Future[struct{}]
	Invalidate(ctx context.Context) *Future[struct{}]
}

var (
	_ Cache = (*Adapter)(nil)
)

// Adapter is a Cache backed by a memcached compatible store.
// It is safe for concurrent use.
type Adapter struct {
	endpoint string
	options  *options
	logger   *zap.Logger
	metrics  *metrics

	// mu guards store, closed and tracked.
	mu     sync.Mutex
	store  store.Store
	closed bool
	// tracked holds the keys set since the last invalidation,
	// only maintained with ScopeTracked.
	tracked map[string]struct{}
}

// New creates an Adapter for endpoint, a "host:port" address or a comma
// separated list of them. No connection is made here: the store is created
// by the first operation, and every failure surfaces through its Future.
func New(endpoint string, opts ...Option) *Adapter {
	o := newOptions()
	for _, opt := range opts {
		opt(o)
	}

	a := &Adapter{
		endpoint: endpoint,
		options:  o,
		logger:   o.logger.With(zap.String("endpoint", endpoint)),
	}
	a.metrics = newMetrics(o.metrics, a.logger)
	if o.scope == ScopeTracked {
		a.tracked = make(map[string]struct{})
	}

	return a
}

// Get fetches the value stored under key. A miss settles with a nil value
// and a nil error.
func (a *Adapter) Get(ctx context.Context, key any) *Future[[]byte] {
	k, kerr := encodeKey(key, a.options.keyPrefix, a.options.keyHasher)

	return goFuture(func() ([]byte, error) {
		v, err := a.get(ctx, k, kerr)
		switch {
		case err != nil:
			a.failed(opGet, err)
		case v == nil:
			a.metrics.observe(opGet, resultMiss)
		default:
			a.metrics.observe(opGet, resultHit)
		}

		return v, err
	})
}

// Set stores value under key. The Future settles once the store
// acknowledged the write. key and value are copied before Set returns, the
// caller may reuse both buffers right away.
func (a *Adapter) Set(ctx context.Context, key any, value []byte) *Future[struct{}] {
	k, kerr := encodeKey(key, a.options.keyPrefix, a.options.keyHasher)
	if value != nil {
		value = append(make([]byte, 0, len(value)), value...)
	}

	return goFuture(func() (struct{}, error) {
		err := a.set(ctx, k, kerr, value)
		if err != nil {
			a.failed(opSet, err)
		} else {
			a.metrics.observe(opSet, resultOK)
		}

		return struct{}{}, err
	})
}

// Invalidate removes the entries addressed by this adapter, see InvalidateScope.
func (a *Adapter) Invalidate(ctx context.Context) *Future[struct{}] {
	return goFuture(func() (struct{}, error) {
		err := a.invalidate(ctx)
		if err != nil {
			a.failed(opInvalidate, err)
		} else {
			a.metrics.observe(opInvalidate, resultOK)
		}

		return struct{}{}, err
	})
}

// Close releases the store if one was created. Operations issued after
// Close fail with ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if a.store == nil {
		return nil
	}

	st := a.store
	a.store = nil
	if err := st.Close(); err != nil {
		return errors.Wrap(err, "close store")
	}

	return nil
}

func (a *Adapter) get(ctx context.Context, k string, kerr error) ([]byte, error) {
	if kerr != nil {
		return nil, kerr
	}

	st, err := a.getStore()
	if err != nil {
		return nil, err
	}

	v, err := st.Get(ctx, k)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "get")
	}

	return v, nil
}

func (a *Adapter) set(ctx context.Context, k string, kerr error, value []byte) error {
	if kerr != nil {
		return kerr
	}
	if len(value) > a.options.maxValueSize {
		return errors.Wrapf(ErrInvalidValue, "value size %d exceeds %d", len(value), a.options.maxValueSize)
	}

	st, err := a.getStore()
	if err != nil {
		return err
	}

	if err = st.Set(ctx, k, value); err != nil {
		return errors.Wrap(err, "set")
	}

	a.track(k)
	return nil
}

func (a *Adapter) invalidate(ctx context.Context) error {
	st, err := a.getStore()
	if err != nil {
		return err
	}

	if a.options.scope == ScopeTracked {
		return a.deleteTracked(ctx, st)
	}

	if err = st.FlushAll(ctx); err != nil {
		return errors.Wrap(err, "flush all")
	}

	return nil
}

// deleteTracked deletes every tracked key. A key leaves the tracked set
// before its delete is sent, so a Set landing meanwhile tracks it again.
// Keys that failed to delete are tracked again for the next Invalidate.
func (a *Adapter) deleteTracked(ctx context.Context, st store.Store) error {
	a.mu.Lock()
	keys := make([]string, 0, len(a.tracked))
	for k := range a.tracked {
		keys = append(keys, k)
	}
	a.mu.Unlock()

	var result *multierror.Error
	for _, k := range keys {
		a.mu.Lock()
		delete(a.tracked, k)
		a.mu.Unlock()

		err := st.Delete(ctx, k)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			result = multierror.Append(result, errors.Wrapf(err, "delete %s", k))
			a.track(k)
		}
	}

	return result.ErrorOrNil()
}

func (a *Adapter) track(key string) {
	if a.options.scope != ScopeTracked {
		return
	}

	a.mu.Lock()
	a.tracked[key] = struct{}{}
	a.mu.Unlock()
}

// getStore returns the store, creating it on first use. A failed creation
// is not cached, the next operation tries again.
func (a *Adapter) getStore() (store.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}
	if a.store != nil {
		return a.store, nil
	}

	servers, err := parseEndpoint(a.endpoint)
	if err != nil {
		return nil, err
	}

	st, err := a.options.driver(servers, a.options.storeConfig())
	if err != nil {
		return nil, errors.Wrap(err, "create store")
	}

	a.logger.Debug("store created", zap.Strings("servers", servers))
	a.store = st
	return st, nil
}

func (a *Adapter) failed(op string, err error) {
	a.metrics.observe(op, resultError)
	a.logger.Debug("operation failed", zap.String("op", op), zap.Error(err))
}
