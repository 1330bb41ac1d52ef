package mcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     []string
		wantErr  bool
	}{
		{name: "single", endpoint: "127.0.0.1:11211", want: []string{"127.0.0.1:11211"}},
		{name: "hostname", endpoint: "memcached:11211", want: []string{"memcached:11211"}},
		{name: "ipv6", endpoint: "[::1]:11211", want: []string{"[::1]:11211"}},
		{
			name:     "list with spaces and duplicates",
			endpoint: " a:1 , b:2,,a:1 ",
			want:     []string{"a:1", "b:2"},
		},
		{name: "empty", endpoint: "  ", wantErr: true},
		{name: "only commas", endpoint: ",,", wantErr: true},
		{name: "missing port", endpoint: "localhost", wantErr: true},
		{name: "missing host", endpoint: ":11211", wantErr: true},
		{name: "bad port", endpoint: "localhost:memcache", wantErr: true},
		{name: "port out of range", endpoint: "localhost:70000", wantErr: true},
		{name: "zero port", endpoint: "localhost:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEndpoint(tt.endpoint)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
