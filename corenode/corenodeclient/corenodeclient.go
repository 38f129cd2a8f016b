//go:generate mockgen -destination mock_corenodeclient/mock_corenodeclient.go github.com/anyproto/any-share/corenode/corenodeclient CorenodeClient
package corenodeclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/corenode/corenodeproto"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
)

const CName = "common.corenode.corenodeclient"

var log = logger.NewNamed(CName)

var ErrUnknownUser = errors.New("unknown user")

func New() CorenodeClient {
	return new(corenodeClient)
}

// NewWithPoster returns a client that is ready without app wiring.
func NewWithPoster(p httpposter.Poster) CorenodeClient {
	return &corenodeClient{poster: p}
}

type CorenodeClient interface {
	// GetPublicKey resolves a username. found is false for unknown names.
	GetPublicKey(ctx context.Context, username string) (pub identity.PublicIdentity, found bool, err error)
	// GetUsername returns the name registered for publicKeys or ErrUnknownUser.
	GetUsername(ctx context.Context, publicKeys []byte) (username string, err error)
	AddUsername(ctx context.Context, username string, publicKeys, signed, staticData []byte) (err error)
	UpdateStaticData(ctx context.Context, username string, signed, staticData []byte) (err error)
	GetStaticData(ctx context.Context, username string) (staticData []byte, err error)
	AllowSharingKey(ctx context.Context, ownerPublicKeys, signedWriter []byte) (err error)
	BanSharingKey(ctx context.Context, username string, sharingPublicKeys, signedHash []byte) (err error)
	GetSharingKeys(ctx context.Context, username string) (publicKeys [][]byte, err error)
	FollowRequest(ctx context.Context, targetPublicKeys, envelope []byte) (err error)
	GetFollowRequests(ctx context.Context, ownerPublicKeys []byte) (envelopes [][]byte, err error)
	RemoveFollowRequest(ctx context.Context, username string, data, signed []byte) (err error)
	app.Component
}

type configGetter interface {
	GetCoreNode() httpposter.Config
}

type corenodeClient struct {
	poster httpposter.Poster
	metric metric.Metric
}

func (c *corenodeClient) Init(a *app.App) (err error) {
	if c.poster != nil {
		return nil
	}
	var reg prometheus.Registerer
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		c.metric = m
		reg = m.Registry()
	}
	c.poster, err = httpposter.New(a.MustComponent("config").(configGetter).GetCoreNode(), "corenode", reg)
	return
}

func (c *corenodeClient) Name() (name string) {
	return CName
}

func (c *corenodeClient) call(ctx context.Context, method string, req, resp corenodeproto.Message) (err error) {
	st := time.Now()
	defer func() {
		if c.metric != nil {
			c.metric.RequestLog(ctx, metric.Method(method), metric.TotalDur(time.Since(st)), zap.Error(err))
		}
	}()
	data, err := c.poster.Post(ctx, method, corenodeproto.Marshal(req))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = corenodeproto.Unmarshal(data, resp); err != nil {
		return &rpcerr.TransportError{Status: 200, Err: fmt.Errorf("%s: %w", method, err)}
	}
	return nil
}

// mutate performs a call answered by a BoolResponse; false is a rejection.
func (c *corenodeClient) mutate(ctx context.Context, method string, req corenodeproto.Message) error {
	var resp corenodeproto.BoolResponse
	if err := c.call(ctx, method, req, &resp); err != nil {
		return err
	}
	if !resp.Ok {
		log.DebugCtx(ctx, "remote rejected", zap.String("method", method))
		return fmt.Errorf("%s: %w", method, rpcerr.ErrRemoteRejected)
	}
	return nil
}

func (c *corenodeClient) GetPublicKey(ctx context.Context, username string) (pub identity.PublicIdentity, found bool, err error) {
	var resp corenodeproto.GetPublicKeyResponse
	if err = c.call(ctx, corenodeproto.MethodGetPublicKey, &corenodeproto.GetPublicKeyRequest{Username: username}, &resp); err != nil {
		return
	}
	if !resp.Found {
		return
	}
	if pub, err = identity.FromPublicKeys(resp.PublicKeys); err != nil {
		return pub, false, fmt.Errorf("%s: %w", corenodeproto.MethodGetPublicKey, err)
	}
	return pub, true, nil
}

func (c *corenodeClient) GetUsername(ctx context.Context, publicKeys []byte) (username string, err error) {
	var resp corenodeproto.GetUsernameResponse
	if err = c.call(ctx, corenodeproto.MethodGetUsername, &corenodeproto.GetUsernameRequest{PublicKeys: publicKeys}, &resp); err != nil {
		return
	}
	if resp.Username == "" {
		return "", ErrUnknownUser
	}
	return resp.Username, nil
}

func (c *corenodeClient) AddUsername(ctx context.Context, username string, publicKeys, signed, staticData []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodAddUsername, &corenodeproto.AddUsernameRequest{
		Username:   username,
		PublicKeys: publicKeys,
		Signed:     signed,
		StaticData: staticData,
	})
}

func (c *corenodeClient) UpdateStaticData(ctx context.Context, username string, signed, staticData []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodUpdateStaticData, &corenodeproto.UpdateStaticDataRequest{
		Username:   username,
		Signed:     signed,
		StaticData: staticData,
	})
}

func (c *corenodeClient) GetStaticData(ctx context.Context, username string) (staticData []byte, err error) {
	var resp corenodeproto.GetStaticDataResponse
	if err = c.call(ctx, corenodeproto.MethodGetStaticData, &corenodeproto.GetStaticDataRequest{Username: username}, &resp); err != nil {
		return
	}
	return resp.StaticData, nil
}

func (c *corenodeClient) AllowSharingKey(ctx context.Context, ownerPublicKeys, signedWriter []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodAllowSharingKey, &corenodeproto.AllowSharingKeyRequest{
		OwnerPublicKeys: ownerPublicKeys,
		SignedWriter:    signedWriter,
	})
}

func (c *corenodeClient) BanSharingKey(ctx context.Context, username string, sharingPublicKeys, signedHash []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodBanSharingKey, &corenodeproto.BanSharingKeyRequest{
		Username:          username,
		SharingPublicKeys: sharingPublicKeys,
		SignedHash:        signedHash,
	})
}

func (c *corenodeClient) GetSharingKeys(ctx context.Context, username string) (publicKeys [][]byte, err error) {
	var resp corenodeproto.GetSharingKeysResponse
	if err = c.call(ctx, corenodeproto.MethodGetSharingKeys, &corenodeproto.GetSharingKeysRequest{Username: username}, &resp); err != nil {
		return
	}
	return resp.PublicKeys, nil
}

func (c *corenodeClient) FollowRequest(ctx context.Context, targetPublicKeys, envelope []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodFollowRequest, &corenodeproto.FollowRequestRequest{
		TargetPublicKeys: targetPublicKeys,
		Envelope:         envelope,
	})
}

func (c *corenodeClient) GetFollowRequests(ctx context.Context, ownerPublicKeys []byte) (envelopes [][]byte, err error) {
	var resp corenodeproto.GetFollowRequestsResponse
	if err = c.call(ctx, corenodeproto.MethodGetFollowRequests, &corenodeproto.GetFollowRequestsRequest{OwnerPublicKeys: ownerPublicKeys}, &resp); err != nil {
		return
	}
	return resp.Envelopes, nil
}

func (c *corenodeClient) RemoveFollowRequest(ctx context.Context, username string, data, signed []byte) (err error) {
	return c.mutate(ctx, corenodeproto.MethodRemoveFollowRequest, &corenodeproto.RemoveFollowRequestRequest{
		Username: username,
		Data:     data,
		Signed:   signed,
	})
}
