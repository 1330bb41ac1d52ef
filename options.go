package mcache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yeqown/mcache/driver/memcached"
	"github.com/yeqown/mcache/hash"
	"github.com/yeqown/mcache/store"
)

const (
	// maxKeyLength is the longest key memcached accepts.
	maxKeyLength = 250

	// defaultMaxValueSize matches memcached's default item size limit (-I 1m).
	defaultMaxValueSize = 1 << 20
)

// InvalidateScope decides what Invalidate removes.
type InvalidateScope int

const (
	// ScopeAll flushes every item of the store, including items written by
	// other clients of the same server.
	ScopeAll InvalidateScope = iota
	// ScopeTracked deletes only the keys this Adapter has set since the
	// last invalidation.
	ScopeTracked
)

func (s InvalidateScope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeTracked:
		return "tracked"
	}

	return "unknown"
}

type Option func(*options)

type options struct {
	driver store.Driver

	// dialTimeout is the timeout for dialing a connection to the memcached server
	// instance. Default is 5 seconds.
	dialTimeout time.Duration

	// readTimeout is the timeout for reading from the connection.
	// Default is 5 seconds.
	readTimeout time.Duration

	// writeTimeout is the timeout for writing to the connection.
	// Default is 5 seconds.
	writeTimeout time.Duration

	// maxConns bounds the connections the driver keeps per server, 0 leaves
	// the driver's default.
	maxConns int

	keyPrefix string
	// keyHasher digests keys longer than maxKeyLength, nil rejects them.
	keyHasher    hash.HashFunc
	maxValueSize int

	scope InvalidateScope

	logger  *zap.Logger
	metrics prometheus.Registerer
}

func newOptions() *options {
	return &options{
		driver: memcached.New,

		dialTimeout:  5 * time.Second,
		readTimeout:  5 * time.Second,
		writeTimeout: 5 * time.Second,

		maxValueSize: defaultMaxValueSize,
		scope:        ScopeAll,
		logger:       zap.NewNop(),
	}
}

func (o *options) storeConfig() store.Config {
	return store.Config{
		DialTimeout:  o.dialTimeout,
		ReadTimeout:  o.readTimeout,
		WriteTimeout: o.writeTimeout,
		MaxConns:     o.maxConns,
	}
}

// WithDriver sets the driver used to create the underlying store.
// Default is the github.com/yeqown/memcached driver.
func WithDriver(d store.Driver) Option {
	return func(o *options) {
		if d == nil {
			return
		}

		o.driver = d
	}
}

// WithDialTimeout sets the dial timeout passed to the driver.
// Default is 5 seconds.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		o.dialTimeout = timeout
	}
}

// WithReadTimeout sets the read timeout passed to the driver.
// Default is 5 seconds.
func WithReadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		o.readTimeout = timeout
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}

		o.writeTimeout = timeout
	}
}

// WithMaxConns sets the maximum number of connections per server.
func WithMaxConns(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}

		o.maxConns = n
	}
}

// WithKeyPrefix prepends prefix to every key before it reaches the store.
// The prefix counts towards the 250 byte key limit.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.keyPrefix = prefix
	}
}

// WithKeyHashing lets keys longer than 250 bytes through by replacing them
// with a truncated copy plus the hex digest of h. Nil h means murmur3 with
// seed 0. hash.NewCRC32 fills only 32 bits and collides after tens of thousands
// of keys, do not use it here. While hashing is on, keys starting with "#h:"
// are rejected.
func WithKeyHashing(h hash.HashFunc) Option {
	return func(o *options) {
		if h == nil {
			h = hash.NewMurmur3(0)
		}

		o.keyHasher = h
	}
}

// WithMaxValueSize sets the largest value Set accepts, in bytes.
// Default is 1MiB.
func WithMaxValueSize(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = defaultMaxValueSize
		}

		o.maxValueSize = n
	}
}

// WithInvalidateScope sets what Invalidate removes. Default is ScopeAll.
func WithInvalidateScope(scope InvalidateScope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			return
		}

		o.logger = logger
	}
}

// WithMetrics registers the adapter's operation counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = reg
	}
}
