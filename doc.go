// Package mcache provides an asynchronous cache adapter backed by a
// memcached compatible server, meant to give a document database client
// optional read-through/write-through caching.
//
// The adapter is straightforward and thread-safe. It exposes three operations:
// - Get: fetch a value, a miss is a nil value and not an error
// - Set: store a value
// - Invalidate: clear the cache, the whole server by default
//
// Every operation returns a *Future right away and runs the round trip to
// the server on its own goroutine, so no result is observable before the
// call returns. Failures (unreachable server, invalid key) settle the
// Future with an error; nothing panics or blocks the caller.
//
// The memcached protocol itself is left to a driver, see store.Driver.
// The default driver uses github.com/yeqown/memcached; driver/gomemcache and
// driver/memory are drop-in alternatives.
package mcache
