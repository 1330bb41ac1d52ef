package mcache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/yeqown/mcache/hash"
)

// encodeKey turns a caller key into the string sent to the store.
// Only string-like keys are accepted, anything structured is an
// ErrInvalidKey rather than being formatted into some string.
func encodeKey(key any, prefix string, hasher hash.HashFunc) (string, error) {
	raw, err := keyString(key)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", errors.Wrap(ErrInvalidKey, "empty key")
	}

	encoded := prefix + raw
	for i := 0; i < len(encoded); i++ {
		if c := encoded[i]; c <= ' ' || c == 0x7f {
			return "", errors.Wrapf(ErrInvalidKey, "illegal character %q at %d", c, i)
		}
	}

	if hasher != nil && strings.HasPrefix(raw, hashedKeyMarker) {
		return "", errors.Wrapf(ErrInvalidKey, "key starts with reserved %q", hashedKeyMarker)
	}
	if len(encoded) <= maxKeyLength {
		return encoded, nil
	}
	if hasher == nil {
		return "", errors.Wrapf(ErrInvalidKey, "key length %d exceeds %d", len(encoded), maxKeyLength)
	}

	return hashedKey(prefix, raw, hasher)
}

// hashedKeyMarker starts every digested key. Raw keys starting with it are
// rejected while hashing is on, so a digest never aliases a literal key.
const hashedKeyMarker = "#h:"

// hashedKey keeps as much of raw as fits and appends the digest of the whole
// key: prefix + "#h:" + raw[:n] + ":" + hex16. Two long keys only collide
// when they share those leading bytes and their digests.
func hashedKey(prefix, raw string, hasher hash.HashFunc) (string, error) {
	keep := maxKeyLength - len(prefix) - len(hashedKeyMarker) - 1 - 16
	if keep < 0 {
		return "", errors.Wrapf(ErrInvalidKey, "key prefix too long: %d", len(prefix))
	}
	if keep > len(raw) {
		keep = len(raw)
	}

	return prefix + hashedKeyMarker + raw[:keep] + ":" + hash.Hex(hasher, []byte(raw)), nil
}

func keyString(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case []byte:
		return string(k), nil
	case int:
		return strconv.FormatInt(int64(k), 10), nil
	case int8:
		return strconv.FormatInt(int64(k), 10), nil
	case int16:
		return strconv.FormatInt(int64(k), 10), nil
	case int32:
		return strconv.FormatInt(int64(k), 10), nil
	case int64:
		return strconv.FormatInt(k, 10), nil
	case uint:
		return strconv.FormatUint(uint64(k), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(k), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(k), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(k), 10), nil
	case uint64:
		return strconv.FormatUint(k, 10), nil
	case nil:
		return "", errors.Wrap(ErrInvalidKey, "nil key")
	}

	return "", errors.Wrap(ErrInvalidKey, fmt.Sprintf("unsupported key type %T", key))
}
