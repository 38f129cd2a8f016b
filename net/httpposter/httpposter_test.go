package httpposter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/net/rpc/rpcerr"
)

var ctx = context.Background()

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestPoster_Post(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/core/echo":
			_, _ = w.Write(body)
		case "/core/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/core/rejected":
			w.Header().Set(ErrorCodeHeader, strconv.FormatUint(rpcerr.Code(rpcerr.ErrRemoteRejected), 10))
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	reg := prometheus.NewRegistry()
	p, err := New(Config{Url: srv.URL + "/"}, "core", reg)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		resp, err := p.Post(ctx, "core/echo", []byte{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, resp)
	})
	t.Run("retryable status", func(t *testing.T) {
		_, err := p.Post(ctx, "/core/busy", nil)
		var te *rpcerr.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, http.StatusServiceUnavailable, te.Status)
		assert.True(t, rpcerr.IsRetryable(err))
	})
	t.Run("not found", func(t *testing.T) {
		_, err := p.Post(ctx, "core/unknown", nil)
		assert.ErrorIs(t, err, rpcerr.ErrTransportFailure)
		assert.False(t, rpcerr.IsRetryable(err))
	})
	t.Run("error code", func(t *testing.T) {
		_, err := p.Post(ctx, "core/rejected", nil)
		assert.ErrorIs(t, err, rpcerr.ErrRemoteRejected)
		assert.False(t, rpcerr.IsRetryable(err))
	})
	t.Run("metrics", func(t *testing.T) {
		mfs, err := reg.Gather()
		require.NoError(t, err)
		require.Len(t, mfs, 1)
		assert.Equal(t, "anyshare_core_request_duration_seconds", mfs[0].GetName())
	})
}

func TestPoster_Unreachable(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	url := srv.URL
	srv.Close()

	p, err := New(Config{Url: url, TimeoutSec: 1}, "dht", nil)
	require.NoError(t, err)
	_, err = p.Post(ctx, "dht/get", nil)
	var te *rpcerr.TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.Status)
	assert.True(t, te.Retryable())
}

func TestPoster_RateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	p, err := New(Config{Url: srv.URL, RateLimit: 0.001, Burst: 1}, "limited", nil)
	require.NoError(t, err)

	_, err = p.Post(ctx, "a", nil)
	require.NoError(t, err)

	tctx, cancel := context.WithTimeout(ctx, time.Millisecond*50)
	defer cancel()
	_, err = p.Post(tctx, "a", nil)
	assert.ErrorIs(t, err, rpcerr.ErrTransportFailure)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNew_NoUrl(t *testing.T) {
	_, err := New(Config{}, "core", nil)
	assert.Error(t, err)
}
