// Package usercontext runs the operations of the local user against the core
// node: registration, follow requests, directory maintenance and fragment
// access through capabilities.
package usercontext

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anyproto/any-share/accountservice"
	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/corenode/corenodeclient"
	"github.com/anyproto/any-share/dht/dhtclient"
	"github.com/anyproto/any-share/dht/fragment"
	"github.com/anyproto/any-share/followrequest"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/localstore"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/staticdata"
	"github.com/anyproto/any-share/util/periodicsync"
	"github.com/anyproto/any-share/util/slice"
)

const CName = "common.usercontext"

var log = logger.NewNamed(CName)

var (
	ErrUnknownTarget = errors.New("follow target is not registered")
	ErrReadOnly      = errors.New("capability has no writer secret")
	ErrNoEntry       = errors.New("no directory entry for writer")
)

type Config struct {
	// ReconcilePeriodSec enables periodic orphan detection when positive.
	ReconcilePeriodSec  int `yaml:"reconcilePeriodSec"`
	FragmentConcurrency int `yaml:"fragmentConcurrency"`
}

type configGetter interface {
	GetUserContext() Config
}

// Orphan is a sharing key the core node authorizes that has no entry in the
// directory. Orphans are reported, never re-issued.
type Orphan struct {
	Writer identity.PublicIdentity
	// Local is set when this device holds the sharing secret.
	Local bool
}

type UserContext interface {
	// Register claims the account username with an empty directory.
	Register(ctx context.Context) error
	IsRegistered(ctx context.Context) (bool, error)
	// LoadStaticData replaces the local directory with the one published at
	// the core node unless the local one is newer.
	LoadStaticData(ctx context.Context) (staticdata.Directory, error)
	// StaticData returns the last committed directory.
	StaticData() staticdata.Directory

	// SendFollowRequest grants target write access to a fresh location.
	// The result is returned even on failure and records the last state
	// reached.
	SendFollowRequest(ctx context.Context, target identity.PublicIdentity) (*followrequest.Result, error)
	// SendFollowRequestTo resolves username and sends a follow request.
	SendFollowRequestTo(ctx context.Context, username string) (*followrequest.Result, error)
	AddSharingKey(ctx context.Context, sharing identity.PublicIdentity) error
	// AddToStaticData publishes a directory with c appended. The committed
	// directory only changes once the core node accepts it.
	AddToStaticData(ctx context.Context, writer identity.PublicIdentity, c *capability.Capability) (staticdata.Directory, error)
	BanSharingKey(ctx context.Context, sharing identity.PublicIdentity) error

	GetFollowRequests(ctx context.Context) ([][]byte, error)
	DecodeFollowRequest(raw []byte) (*capability.Capability, error)
	DecodeFollowRequests(raws [][]byte) []followrequest.Decoded
	RemoveFollowRequest(ctx context.Context, raw []byte) error

	Reconcile(ctx context.Context) ([]Orphan, error)
	// WritableCapability rebuilds the writable capability issued to writer
	// from the directory and the locally kept sharing secret.
	WritableCapability(ctx context.Context, writer identity.PublicIdentity) (*capability.Capability, error)

	StoreFragment(ctx context.Context, c *capability.Capability, data []byte) (fragment.Key, error)
	DownloadFragments(ctx context.Context, keys []fragment.Key) ([][]byte, error)
	ReadFragments(ctx context.Context, c *capability.Capability, keys []fragment.Key) ([][]byte, error)

	app.ComponentRunnable
}

func New() UserContext {
	return &userContext{}
}

type userContext struct {
	account    *accountservice.AccountData
	corenode   corenodeclient.CorenodeClient
	dht        dhtclient.DhtClient
	store      localstore.LocalStore
	conf       Config
	metrics    *metrics
	reconciler periodicsync.PeriodicSync

	// mu is held across read-modify-sign-submit of the directory
	mu  sync.Mutex
	dir staticdata.Directory
}

func (u *userContext) Init(a *app.App) (err error) {
	u.account = app.MustComponent[accountservice.Service](a).Account()
	u.corenode = app.MustComponent[corenodeclient.CorenodeClient](a)
	u.dht = app.MustComponent[dhtclient.DhtClient](a)
	u.store = app.MustComponent[localstore.LocalStore](a)
	u.conf = a.MustComponent("config").(configGetter).GetUserContext()
	u.dir = staticdata.New()
	u.metrics = newMetrics()
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		if err = u.metrics.register(m.Registry()); err != nil {
			return err
		}
	}
	return nil
}

func (u *userContext) Name() (name string) {
	return CName
}

func (u *userContext) Run(ctx context.Context) (err error) {
	_, data, err := u.store.StaticData(ctx, u.account.Username)
	switch {
	case errors.Is(err, localstore.ErrNotFound):
	case err != nil:
		return err
	default:
		dir, err := staticdata.Deserialize(data)
		if err != nil {
			return fmt.Errorf("stored directory: %w", err)
		}
		u.dir = dir
	}
	if u.conf.ReconcilePeriodSec > 0 {
		u.reconciler = periodicsync.NewPeriodicSync(u.conf.ReconcilePeriodSec, time.Minute, func(ctx context.Context) error {
			_, err := u.Reconcile(ctx)
			return err
		}, log)
		u.reconciler.Run()
	}
	return nil
}

func (u *userContext) Close(ctx context.Context) (err error) {
	if u.reconciler != nil {
		u.reconciler.Close()
	}
	return nil
}

func (u *userContext) owner() *identity.Identity {
	return u.account.Identity
}

func (u *userContext) Register(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	serialized, signed := u.dir.SignedPayload(u.account.Username, u.owner())
	if err := u.corenode.AddUsername(ctx, u.account.Username, u.owner().PublicKeys(), signed, serialized); err != nil {
		u.countRejection("addUsername", err)
		return err
	}
	u.persist(ctx, u.dir, serialized)
	log.InfoCtx(ctx, "registered", zap.String("username", u.account.Username))
	return nil
}

func (u *userContext) IsRegistered(ctx context.Context) (bool, error) {
	name, err := u.corenode.GetUsername(ctx, u.owner().PublicKeys())
	if errors.Is(err, corenodeclient.ErrUnknownUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name == u.account.Username, nil
}

func (u *userContext) LoadStaticData(ctx context.Context) (staticdata.Directory, error) {
	data, err := u.corenode.GetStaticData(ctx, u.account.Username)
	if err != nil {
		return staticdata.Directory{}, err
	}
	remote, err := staticdata.Deserialize(data)
	if err != nil {
		return staticdata.Directory{}, err
	}
	if err = remote.CheckOwner(u.owner().Public()); err != nil {
		return staticdata.Directory{}, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if remote.Version() < u.dir.Version() {
		log.WarnCtx(ctx, "published directory is older than local",
			zap.Uint64("remote", remote.Version()), zap.Uint64("local", u.dir.Version()))
		return u.dir, nil
	}
	u.dir = remote
	u.persist(ctx, remote, data)
	return remote, nil
}

func (u *userContext) StaticData() staticdata.Directory {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dir
}

func (u *userContext) SendFollowRequestTo(ctx context.Context, username string) (*followrequest.Result, error) {
	target, found, err := u.corenode.GetPublicKey(ctx, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, username)
	}
	return u.SendFollowRequest(logger.CtxWithFields(ctx, zap.String("target", username)), target)
}

func (u *userContext) SendFollowRequest(ctx context.Context, target identity.PublicIdentity) (*followrequest.Result, error) {
	ctx, opId := logger.CtxWithOperation(ctx, "followRequest")
	res := &followrequest.Result{OpId: opId, Target: target}
	defer func() {
		u.metrics.followRequest(res)
		if res.Err != nil {
			log.WarnCtx(ctx, "follow request failed", zap.String("reached", res.Reached.String()), zap.Error(res.Err))
		} else {
			log.InfoCtx(ctx, "follow request sent", zap.String("sharing", res.Sharing.String()))
		}
	}()
	fail := func(err error) (*followrequest.Result, error) {
		res.Fail(err)
		return res, err
	}

	sharing, err := identity.Random()
	if err != nil {
		return fail(err)
	}
	res.Sharing = sharing.Public()
	if err = u.AddSharingKey(ctx, sharing.Public()); err != nil {
		return fail(fmt.Errorf("allow sharing key: %w", err))
	}
	res.Advance(followrequest.StateSharingKeyIssued)

	c, err := capability.NewRandom(u.owner().Public(), sharing)
	if err != nil {
		return fail(err)
	}
	res.Capability = c
	if err = u.store.SaveSharingIdentity(ctx, u.owner().Public(), sharing); err != nil {
		return fail(fmt.Errorf("save sharing identity: %w", err))
	}
	if _, err = u.AddToStaticData(ctx, sharing.Public(), c); err != nil {
		return fail(fmt.Errorf("update directory: %w", err))
	}
	res.Advance(followrequest.StateDirectoryUpdated)

	payload, err := c.Serialize(true)
	if err != nil {
		return fail(err)
	}
	envelope, err := followrequest.Seal(payload, target)
	if err != nil {
		return fail(err)
	}
	if err = u.corenode.FollowRequest(ctx, target.PublicKeys(), envelope); err != nil {
		u.countRejection("followRequest", err)
		return fail(fmt.Errorf("deliver: %w", err))
	}
	res.Advance(followrequest.StateRequestSent)
	res.Advance(followrequest.StateDone)
	return res, nil
}

func (u *userContext) AddSharingKey(ctx context.Context, sharing identity.PublicIdentity) error {
	signed := u.owner().Sign(sharing.PublicKeys())
	if err := u.corenode.AllowSharingKey(ctx, u.owner().PublicKeys(), signed); err != nil {
		u.countRejection("allowSharingKey", err)
		return err
	}
	return nil
}

func (u *userContext) AddToStaticData(ctx context.Context, writer identity.PublicIdentity, c *capability.Capability) (staticdata.Directory, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	next := u.dir.Append(writer, c)
	serialized, signed := next.SignedPayload(u.account.Username, u.owner())
	if err := u.corenode.UpdateStaticData(ctx, u.account.Username, signed, serialized); err != nil {
		u.countRejection("updateStaticData", err)
		log.DebugCtx(ctx, "directory update rolled back", zap.Uint64("version", u.dir.Version()), zap.Error(err))
		return u.dir, err
	}
	u.dir = next
	u.persist(ctx, next, serialized)
	return next, nil
}

// persist stores a directory the core node already accepted. A local failure
// is logged only: the published copy can be restored with LoadStaticData.
func (u *userContext) persist(ctx context.Context, dir staticdata.Directory, serialized []byte) {
	if err := u.store.SaveStaticData(ctx, u.account.Username, uint32(dir.Version()), serialized); err != nil {
		log.ErrorCtx(ctx, "can't persist directory", zap.Uint64("version", dir.Version()), zap.Error(err))
	}
}

func (u *userContext) countRejection(method string, err error) {
	if errors.Is(err, rpcerr.ErrRemoteRejected) {
		u.metrics.rejections.WithLabelValues(method).Inc()
	}
}

func (u *userContext) BanSharingKey(ctx context.Context, sharing identity.PublicIdentity) error {
	keys := sharing.PublicKeys()
	if err := u.corenode.BanSharingKey(ctx, u.account.Username, keys, u.owner().HashAndSign(keys)); err != nil {
		u.countRejection("banSharingKey", err)
		return err
	}
	return nil
}

func (u *userContext) GetFollowRequests(ctx context.Context) ([][]byte, error) {
	return u.corenode.GetFollowRequests(ctx, u.owner().PublicKeys())
}

func (u *userContext) DecodeFollowRequest(raw []byte) (*capability.Capability, error) {
	c, err := followrequest.Decode(raw, u.owner())
	u.metrics.decodeResult(err)
	return c, err
}

func (u *userContext) DecodeFollowRequests(raws [][]byte) []followrequest.Decoded {
	decoded := followrequest.DecodeAll(raws, u.owner())
	for _, d := range decoded {
		u.metrics.decodeResult(d.Err)
		if d.Err != nil {
			log.Debug("skip follow request", zap.Error(d.Err))
		}
	}
	return decoded
}

func (u *userContext) RemoveFollowRequest(ctx context.Context, raw []byte) error {
	if err := u.corenode.RemoveFollowRequest(ctx, u.account.Username, raw, u.owner().Sign(raw)); err != nil {
		u.countRejection("removeFollowRequest", err)
		return err
	}
	return nil
}

func (u *userContext) Reconcile(ctx context.Context) ([]Orphan, error) {
	keys, err := u.corenode.GetSharingKeys(ctx, u.account.Username)
	if err != nil {
		return nil, err
	}
	authorized := make([]identity.PublicIdentity, 0, len(keys))
	for _, k := range keys {
		pub, err := identity.FromPublicKeys(k)
		if err != nil {
			log.WarnCtx(ctx, "invalid authorized sharing key", zap.Binary("key", k), zap.Error(err))
			continue
		}
		authorized = append(authorized, pub)
	}
	authorized = slice.Dedup(authorized, func(p identity.PublicIdentity) identity.PublicIdentity { return p })
	dir := u.StaticData()
	writers := make([]identity.PublicIdentity, 0, dir.Len())
	for _, e := range dir.Entries() {
		writers = append(writers, e.Writer)
	}
	unauthorized, orphaned := slice.DifferenceRemovedAdded(writers, authorized)
	for _, w := range unauthorized {
		log.InfoCtx(ctx, "directory entry is no longer authorized", zap.String("writer", w.String()))
	}
	if len(orphaned) == 0 {
		return nil, nil
	}

	local := map[identity.PublicIdentity]struct{}{}
	held, err := u.store.SharingIdentities(ctx, u.owner().Public())
	if err != nil {
		return nil, err
	}
	for _, s := range held {
		local[s.Public()] = struct{}{}
	}
	orphans := make([]Orphan, 0, len(orphaned))
	for _, w := range orphaned {
		_, isLocal := local[w]
		orphans = append(orphans, Orphan{Writer: w, Local: isLocal})
		log.WarnCtx(ctx, "orphan sharing key", zap.String("writer", w.String()), zap.Bool("local", isLocal))
	}
	u.metrics.orphans.Add(float64(len(orphans)))
	return orphans, nil
}

func (u *userContext) WritableCapability(ctx context.Context, writer identity.PublicIdentity) (*capability.Capability, error) {
	entry, ok := u.StaticData().Find(writer)
	if !ok {
		return nil, ErrNoEntry
	}
	sharing, err := u.store.SharingIdentity(ctx, writer.PublicKeys())
	if err != nil {
		return nil, err
	}
	return capability.New(entry.Capability.Owner(), sharing, entry.Capability.MapKey(), entry.Capability.DataKey()), nil
}

func (u *userContext) StoreFragment(ctx context.Context, c *capability.Capability, data []byte) (fragment.Key, error) {
	writer, ok := c.WriterIdentity()
	if !ok {
		return nil, ErrReadOnly
	}
	sealed, err := fragment.Seal(c.DataKey(), data)
	if err != nil {
		return nil, err
	}
	key := fragment.KeyFor(sealed)
	mapKey := c.MapKey()
	err = u.dht.Put(ctx, dhtclient.PutRequest{
		Key:        key,
		Value:      sealed,
		Owner:      c.Owner().PublicKeys(),
		SharingKey: writer.PublicKeys(),
		MapKey:     mapKey[:],
		Proof:      writer.HashAndSign(sealed),
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (u *userContext) DownloadFragments(ctx context.Context, keys []fragment.Key) ([][]byte, error) {
	return fragment.Download(ctx, u.dht, keys, fragment.Options{Concurrency: u.conf.FragmentConcurrency})
}

// ReadFragments downloads and decrypts fragments written through c. Fragments
// that fail to decrypt are reported like failed downloads.
func (u *userContext) ReadFragments(ctx context.Context, c *capability.Capability, keys []fragment.Key) ([][]byte, error) {
	sealed, err := u.DownloadFragments(ctx, keys)
	dlErr := &fragment.DownloadError{Failed: map[int]error{}}
	if err != nil && !errors.As(err, &dlErr) {
		return nil, err
	}
	res := make([][]byte, len(sealed))
	for i, s := range sealed {
		if s == nil {
			continue
		}
		if res[i], err = fragment.Open(c.DataKey(), s); err != nil {
			dlErr.Failed[i] = err
		}
	}
	if len(dlErr.Failed) > 0 {
		return res, dlErr
	}
	return res, nil
}
