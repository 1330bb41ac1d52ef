package mcache

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidKey means the key cannot be encoded into a memcached key:
	// a structured value, an empty key, whitespace or control characters,
	// or longer than 250 bytes with key hashing disabled.
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidValue means the value exceeds the configured max value size.
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidAddress = errors.New("invalid address")
	ErrClosed         = errors.New("adapter closed")
)
