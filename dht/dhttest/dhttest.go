// Package dhttest provides an in-memory content-addressed store speaking the
// dht binary protocol.
package dhttest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anyproto/any-share/dht/dhtclient"
	"github.com/anyproto/any-share/dht/dhtproto"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/util/crypto"
	"github.com/anyproto/any-share/util/wire"
)

// Authorizer reports whether sharingKey may write for owner.
type Authorizer func(owner, sharingKey []byte) bool

type Store struct {
	mu        sync.Mutex
	values    map[string][]byte
	failures  map[string]int
	delays    map[string]time.Duration
	authorize Authorizer
}

func New() *Store {
	return &Store{
		values:   map[string][]byte{},
		failures: map[string]int{},
		delays:   map[string]time.Duration{},
	}
}

// SetAuthorizer installs a writer check for put; nil allows every writer.
func (s *Store) SetAuthorizer(a Authorizer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorize = a
}

// Add stores value directly and returns its key.
func (s *Store) Add(value []byte) []byte {
	key := crypto.Hash(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[string(key[:])] = bytes.Clone(value)
	return key[:]
}

// SetFailure makes requests for key fail with status. Zero clears it.
func (s *Store) SetFailure(key []byte, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, string(key))
	} else {
		s.failures[string(key)] = status
	}
}

// SetDelay delays responses for key.
func (s *Store) SetDelay(key []byte, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[string(key)] = d
}

func (s *Store) Client() dhtclient.DhtClient {
	return dhtclient.NewWithPoster(loopback{s})
}

func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, dhtproto.MaxValueSize*2))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	resp, status, code := s.Handle(r.Context(), strings.TrimPrefix(r.URL.Path, "/"), body)
	if code != 0 {
		w.Header().Set(httpposter.ErrorCodeHeader, strconv.FormatUint(code, 10))
	}
	w.WriteHeader(status)
	_, _ = w.Write(resp)
}

// Handle serves one request and returns the body, the HTTP status and the
// registered error code, if any.
func (s *Store) Handle(ctx context.Context, method string, body []byte) (resp []byte, status int, code uint64) {
	var (
		msg wire.Message
		err error
	)
	switch method {
	case dhtproto.MethodPut:
		var req dhtproto.PutRequest
		if err = wire.Unmarshal(body, &req); err != nil {
			return errResponse(dhtproto.ErrBadRequest)
		}
		if err = s.wait(ctx, req.Key); err != nil {
			return nil, http.StatusRequestTimeout, 0
		}
		if st, failed := s.failure(req.Key); failed {
			return nil, st, 0
		}
		msg, err = s.put(&req)
	case dhtproto.MethodGet, dhtproto.MethodContains:
		var req dhtproto.KeyRequest
		if err = wire.Unmarshal(body, &req); err != nil {
			return errResponse(dhtproto.ErrBadRequest)
		}
		if err = s.wait(ctx, req.Key); err != nil {
			return nil, http.StatusRequestTimeout, 0
		}
		if st, failed := s.failure(req.Key); failed {
			return nil, st, 0
		}
		s.mu.Lock()
		value, ok := s.values[string(req.Key)]
		s.mu.Unlock()
		if method == dhtproto.MethodContains {
			msg = &dhtproto.BoolResponse{Ok: ok}
		} else if !ok {
			return errResponse(dhtproto.ErrNotFound)
		} else {
			return bytes.Clone(value), http.StatusOK, 0
		}
	default:
		return nil, http.StatusNotFound, 0
	}
	if err != nil {
		return errResponse(err)
	}
	return wire.Marshal(msg), http.StatusOK, 0
}

func errResponse(err error) ([]byte, int, uint64) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dhtproto.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dhtproto.ErrBadRequest):
		status = http.StatusBadRequest
	}
	return nil, status, rpcerr.Code(err)
}

func (s *Store) put(req *dhtproto.PutRequest) (wire.Message, error) {
	key := crypto.Hash(req.Value)
	if !bytes.Equal(key[:], req.Key) {
		return &dhtproto.BoolResponse{}, nil
	}
	writer, err := identity.FromPublicKeys(req.SharingKey)
	if err != nil {
		return &dhtproto.BoolResponse{}, nil
	}
	if !writer.IsValidSignature(req.Proof, req.Value) {
		return &dhtproto.BoolResponse{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authorize != nil && !s.authorize(req.Owner, req.SharingKey) {
		return &dhtproto.BoolResponse{}, nil
	}
	s.values[string(req.Key)] = bytes.Clone(req.Value)
	return &dhtproto.BoolResponse{Ok: true}, nil
}

func (s *Store) failure(key []byte) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.failures[string(key)]
	return st, ok
}

func (s *Store) wait(ctx context.Context, key []byte) error {
	s.mu.Lock()
	d := s.delays[string(key)]
	s.mu.Unlock()
	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type loopback struct {
	s *Store
}

func (l loopback) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &rpcerr.TransportError{Err: err}
	}
	resp, status, code := l.s.Handle(ctx, strings.TrimPrefix(path, "/"), body)
	if status != http.StatusOK {
		return nil, &rpcerr.TransportError{Status: status, Code: code}
	}
	return resp, nil
}
