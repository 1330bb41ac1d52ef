package mcache

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parseEndpoint splits the given endpoint into a list of server addresses.
// For example, "localhost:11211" yields one server and
// "localhost:11211, localhost:11212" yields two. Entries are validated
// without resolving host names.
func parseEndpoint(endpoint string) ([]string, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.Wrap(ErrInvalidAddress, "empty address")
	}

	parts := strings.Split(endpoint, ",")
	servers := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, address := range parts {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}

		host, port, err := net.SplitHostPort(address)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidAddress, err.Error())
		}
		if host == "" {
			return nil, errors.Wrap(ErrInvalidAddress, "missing host: "+address)
		}
		if n, err := strconv.ParseUint(port, 10, 16); err != nil || n == 0 {
			return nil, errors.Wrap(ErrInvalidAddress, "invalid port: "+address)
		}

		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		servers = append(servers, address)
	}

	if len(servers) == 0 {
		return nil, errors.Wrap(ErrInvalidAddress, "no available address")
	}

	return servers, nil
}
