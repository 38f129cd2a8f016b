//go:generate mockgen -destination mock_dhtclient/mock_dhtclient.go github.com/anyproto/any-share/dht/dhtclient DhtClient
package dhtclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/dht/dhtproto"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/util/wire"
)

const CName = "common.dht.dhtclient"

var log = logger.NewNamed(CName)

var ErrValueTooLarge = errors.New("value too large")

func New() DhtClient {
	return new(dhtClient)
}

func NewWithPoster(p httpposter.Poster) DhtClient {
	return &dhtClient{poster: p}
}

type PutRequest = dhtproto.PutRequest

type DhtClient interface {
	Put(ctx context.Context, req PutRequest) (err error)
	Get(ctx context.Context, key []byte) (value []byte, err error)
	Contains(ctx context.Context, key []byte) (ok bool, err error)
	app.Component
}

type configGetter interface {
	GetDht() httpposter.Config
}

type dhtClient struct {
	poster httpposter.Poster
}

func (c *dhtClient) Init(a *app.App) (err error) {
	if c.poster != nil {
		return nil
	}
	var reg prometheus.Registerer
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		reg = m.Registry()
	}
	c.poster, err = httpposter.New(a.MustComponent("config").(configGetter).GetDht(), "dht", reg)
	return
}

func (c *dhtClient) Name() (name string) {
	return CName
}

func (c *dhtClient) Put(ctx context.Context, req PutRequest) (err error) {
	if len(req.Value) > dhtproto.MaxValueSize {
		return fmt.Errorf("%w: %d", ErrValueTooLarge, len(req.Value))
	}
	data, err := c.poster.Post(ctx, dhtproto.MethodPut, wire.Marshal(&req))
	if err != nil {
		return fmt.Errorf("%s: %w", dhtproto.MethodPut, err)
	}
	var resp dhtproto.BoolResponse
	if err = wire.Unmarshal(data, &resp); err != nil {
		return &rpcerr.TransportError{Status: 200, Err: err}
	}
	if !resp.Ok {
		log.DebugCtx(ctx, "put rejected")
		return fmt.Errorf("%s: %w", dhtproto.MethodPut, rpcerr.ErrRemoteRejected)
	}
	return nil
}

// Get returns the raw stored value; the response has no framing.
func (c *dhtClient) Get(ctx context.Context, key []byte) (value []byte, err error) {
	value, err = c.poster.Post(ctx, dhtproto.MethodGet, wire.Marshal(&dhtproto.KeyRequest{Key: key}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dhtproto.MethodGet, err)
	}
	return value, nil
}

func (c *dhtClient) Contains(ctx context.Context, key []byte) (ok bool, err error) {
	data, err := c.poster.Post(ctx, dhtproto.MethodContains, wire.Marshal(&dhtproto.KeyRequest{Key: key}))
	if err != nil {
		return false, fmt.Errorf("%s: %w", dhtproto.MethodContains, err)
	}
	var resp dhtproto.BoolResponse
	if err = wire.Unmarshal(data, &resp); err != nil {
		return false, &rpcerr.TransportError{Status: 200, Err: err}
	}
	return resp.Ok, nil
}
