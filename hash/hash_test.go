package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Murmur3(t *testing.T) {
	h := NewMurmur3(0)

	assert.Equal(t, h.Hash([]byte("key")), h.Hash([]byte("key")))
	assert.NotEqual(t, h.Hash([]byte("key")), h.Hash([]byte("key2")))
	assert.NotEqual(t, h.Hash([]byte("key")), NewMurmur3(42).Hash([]byte("key")))

	// every tail length goes through its own branch.
	seen := make(map[uint64]struct{})
	for i := 0; i <= 16; i++ {
		seen[h.Hash([]byte("0123456789abcdef"[:i]))] = struct{}{}
	}
	assert.Len(t, seen, 17)
}

func Test_CRC32(t *testing.T) {
	assert.Equal(t, uint64(0x3610a686), NewCRC32().Hash([]byte("hello")))
}

func Test_Hex(t *testing.T) {
	tests := []struct {
		name string
		h    HashFunc
		key  string
		want string
	}{
		{name: "crc32 padded", h: NewCRC32(), key: "hello", want: "000000003610a686"},
		{name: "empty crc32", h: NewCRC32(), key: "", want: "0000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hex(tt.h, []byte(tt.key)))
		})
	}

	assert.Len(t, Hex(NewMurmur3(7), []byte("anything")), 16)
}
