package memcached

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeqown/mcache/store"
)

// fakeServer speaks enough of the memcached text protocol for one Store:
// storage commands, get/gets, delete, flush_all, version and the meta
// mg/ms/md/mn commands.
type fakeServer struct {
	ln net.Listener

	mu    sync.Mutex
	items map[string][]byte
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{ln: ln, items: make(map[string][]byte)}
	t.Cleanup(func() { _ = ln.Close() })

	go s.serve()
	return s
}

func (s *fakeServer) addr() string { return s.ln.Addr().String() }

func (s *fakeServer) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}

		go s.handle(c)
	}
}

func (s *fakeServer) handle(c net.Conn) {
	defer c.Close()

	r := bufio.NewReader(c)
	w := bufio.NewWriter(c)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err = s.exec(fields, r, w); err != nil {
			return
		}
		if err = w.Flush(); err != nil {
			return
		}
	}
}

func readBlock(r *bufio.Reader, n string) ([]byte, error) {
	size, err := strconv.Atoi(n)
	if err != nil || size < 0 {
		return nil, fmt.Errorf("bad length %q", n)
	}

	data := make([]byte, size+2)
	if _, err = io.ReadFull(r, data); err != nil {
		return nil, err
	}

	return data[:size], nil
}

func (s *fakeServer) exec(fields []string, r *bufio.Reader, w *bufio.Writer) error {
	cmd, args := fields[0], fields[1:]
	noreply := len(args) > 0 && args[len(args)-1] == "noreply"

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case "set", "add", "replace":
		if len(args) < 4 {
			_, err := w.WriteString("ERROR\r\n")
			return err
		}
		data, err := readBlock(r, args[3])
		if err != nil {
			return err
		}
		s.items[args[0]] = data
		if !noreply {
			_, err = w.WriteString("STORED\r\n")
		}
		return err
	case "get", "gets":
		for _, k := range args {
			v, ok := s.items[k]
			if !ok {
				continue
			}
			if cmd == "gets" {
				fmt.Fprintf(w, "VALUE %s 0 %d 1\r\n", k, len(v))
			} else {
				fmt.Fprintf(w, "VALUE %s 0 %d\r\n", k, len(v))
			}
			w.Write(v)
			w.WriteString("\r\n")
		}
		_, err := w.WriteString("END\r\n")
		return err
	case "delete":
		reply := "NOT_FOUND\r\n"
		if _, ok := s.items[args[0]]; ok {
			delete(s.items, args[0])
			reply = "DELETED\r\n"
		}
		if noreply {
			return nil
		}
		_, err := w.WriteString(reply)
		return err
	case "flush_all":
		s.items = make(map[string][]byte)
		if noreply {
			return nil
		}
		_, err := w.WriteString("OK\r\n")
		return err
	case "version":
		_, err := w.WriteString("VERSION 1.6.21\r\n")
		return err
	case "mg":
		v, ok := s.items[args[0]]
		if !ok {
			_, err := w.WriteString("EN\r\n")
			return err
		}
		fmt.Fprintf(w, "VA %d\r\n", len(v))
		w.Write(v)
		_, err := w.WriteString("\r\n")
		return err
	case "ms":
		data, err := readBlock(r, args[1])
		if err != nil {
			return err
		}
		s.items[args[0]] = data
		_, err = w.WriteString("HD\r\n")
		return err
	case "md":
		reply := "NF\r\n"
		if _, ok := s.items[args[0]]; ok {
			delete(s.items, args[0])
			reply = "HD\r\n"
		}
		_, err := w.WriteString(reply)
		return err
	case "mn":
		_, err := w.WriteString("MN\r\n")
		return err
	}

	_, err := w.WriteString("ERROR\r\n")
	return err
}

func newTestStore(t *testing.T, srv *fakeServer) store.Store {
	t.Helper()

	st, err := New([]string{srv.addr()}, store.Config{
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxConns:     2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func Test_Store(t *testing.T) {
	srv := startFakeServer(t)
	st := newTestStore(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Set(ctx, "key", []byte("value")))
	v, err := st.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	require.NoError(t, st.Set(ctx, "empty", []byte{}))
	v, err = st.Get(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)

	require.NoError(t, st.Delete(ctx, "key"))
	err = st.Delete(ctx, "key")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.FlushAll(ctx))
	_, err = st.Get(ctx, "empty")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func Test_Store_unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	st, err := New([]string{addr}, store.Config{
		DialTimeout:  200 * time.Millisecond,
		ReadTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
	})
	if err != nil {
		// the client may dial eagerly.
		return
	}
	defer st.Close()

	_, err = st.Get(context.Background(), "key")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
