//go:generate mockgen -destination mock_localstore/mock_localstore.go github.com/anyproto/any-share/localstore LocalStore
package localstore

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	anystore "github.com/anyproto/any-store"
	"github.com/anyproto/any-store/anyenc"
	"github.com/anyproto/any-store/query"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/identity"
)

const CName = "common.localstore"

var log = logger.NewNamed(CName)

var (
	ErrNotFound    = errors.New("not found in local store")
	ErrEmptyPath   = errors.New("local store path is not set")
	ErrCorruptData = errors.New("corrupt local store data")
)

const (
	sharingCollectionName    = "sharing"
	staticDataCollectionName = "staticData"
	seenCollectionName       = "seen"

	idKey      = "id"
	ownerKey   = "o"
	secretKey  = "s"
	versionKey = "v"
	dataKey    = "d"
	addedKey   = "a"
)

var (
	parserPool = &anyenc.ParserPool{}
	arenaPool  = &anyenc.ArenaPool{}
)

type Config struct {
	Path string `yaml:"path"`
}

type configGetter interface {
	GetStore() Config
}

// LocalStore keeps the secrets and state that must survive a restart:
// sharing identities minted for follow requests, the last committed
// directory of every local user and the follow requests already handled.
type LocalStore interface {
	SaveSharingIdentity(ctx context.Context, owner identity.PublicIdentity, sharing *identity.Identity) error
	SharingIdentity(ctx context.Context, sharingPublicKeys []byte) (*identity.Identity, error)
	SharingIdentities(ctx context.Context, owner identity.PublicIdentity) ([]*identity.Identity, error)

	SaveStaticData(ctx context.Context, username string, version uint32, data []byte) error
	StaticData(ctx context.Context, username string) (version uint32, data []byte, err error)

	// MarkSeen records key and reports whether it was not seen before.
	MarkSeen(ctx context.Context, key [32]byte) (isNew bool, err error)
	IsSeen(ctx context.Context, key [32]byte) (bool, error)

	app.ComponentRunnable
}

func New() LocalStore {
	return &localStore{}
}

type localStore struct {
	path           string
	db             anystore.DB
	sharingColl    anystore.Collection
	staticDataColl anystore.Collection
	seenColl       anystore.Collection
}

func (s *localStore) Init(a *app.App) (err error) {
	s.path = a.MustComponent("config").(configGetter).GetStore().Path
	if s.path == "" {
		return ErrEmptyPath
	}
	return nil
}

func (s *localStore) Name() (name string) {
	return CName
}

func (s *localStore) Run(ctx context.Context) (err error) {
	if s.db, err = anystore.Open(ctx, s.path, nil); err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if s.sharingColl, err = s.db.Collection(ctx, sharingCollectionName); err != nil {
		return err
	}
	ownerIdx := anystore.IndexInfo{
		Name:   ownerKey,
		Fields: []string{ownerKey},
	}
	if err = s.sharingColl.EnsureIndex(ctx, ownerIdx); err != nil && !errors.Is(err, anystore.ErrIndexExists) {
		return err
	}
	if s.staticDataColl, err = s.db.Collection(ctx, staticDataCollectionName); err != nil {
		return err
	}
	if s.seenColl, err = s.db.Collection(ctx, seenCollectionName); err != nil {
		return err
	}
	log.Debug("local store opened", zap.String("path", s.path))
	return nil
}

func (s *localStore) SaveSharingIdentity(ctx context.Context, owner identity.PublicIdentity, sharing *identity.Identity) error {
	arena := arenaPool.Get()
	defer arenaPool.Put(arena)
	doc := arena.NewObject()
	doc.Set(idKey, arena.NewString(sharing.Public().String()))
	doc.Set(ownerKey, arena.NewString(owner.String()))
	doc.Set(secretKey, arena.NewBinary(sharing.SecretKeys()))
	doc.Set(addedKey, arena.NewNumberInt(int(time.Now().Unix())))
	return s.sharingColl.UpsertOne(ctx, doc)
}

func (s *localStore) SharingIdentity(ctx context.Context, sharingPublicKeys []byte) (*identity.Identity, error) {
	pub, err := identity.FromPublicKeys(sharingPublicKeys)
	if err != nil {
		return nil, err
	}
	parser := parserPool.Get()
	defer parserPool.Put(parser)
	doc, err := s.sharingColl.FindIdWithParser(ctx, parser, pub.String())
	if err != nil {
		if errors.Is(err, anystore.ErrDocNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sharingFromDoc(doc)
}

func (s *localStore) SharingIdentities(ctx context.Context, owner identity.PublicIdentity) (res []*identity.Identity, err error) {
	qry := query.Key{Path: []string{ownerKey}, Filter: query.NewComp(query.CompOpEq, owner.String())}
	iter, err := s.sharingColl.Find(qry).Sort(addedKey).Iter(ctx)
	if err != nil {
		return nil, fmt.Errorf("find iter: %w", err)
	}
	defer iter.Close()
	for iter.Next() {
		doc, err := iter.Doc()
		if err != nil {
			return nil, err
		}
		sharing, err := sharingFromDoc(doc)
		if err != nil {
			return nil, err
		}
		res = append(res, sharing)
	}
	return res, nil
}

func sharingFromDoc(doc anystore.Doc) (*identity.Identity, error) {
	sharing, err := identity.FromSecretKeys(doc.Value().GetBytes(secretKey))
	if err != nil {
		return nil, fmt.Errorf("%w: sharing identity %s: %w", ErrCorruptData, doc.Value().GetString(idKey), err)
	}
	return sharing, nil
}

// SaveStaticData stores the directory committed for username. A version not
// newer than the stored one is ignored.
func (s *localStore) SaveStaticData(ctx context.Context, username string, version uint32, data []byte) (err error) {
	tx, err := s.staticDataColl.WriteTx(ctx)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	ctx = tx.Context()
	parser := parserPool.Get()
	defer parserPool.Put(parser)
	doc, err := s.staticDataColl.FindIdWithParser(ctx, parser, username)
	switch {
	case errors.Is(err, anystore.ErrDocNotFound):
	case err != nil:
		return err
	default:
		if uint32(doc.Value().GetInt(versionKey)) >= version {
			return nil
		}
	}
	arena := arenaPool.Get()
	defer arenaPool.Put(arena)
	val := arena.NewObject()
	val.Set(idKey, arena.NewString(username))
	val.Set(versionKey, arena.NewNumberInt(int(version)))
	val.Set(dataKey, arena.NewBinary(data))
	return s.staticDataColl.UpsertOne(ctx, val)
}

func (s *localStore) StaticData(ctx context.Context, username string) (version uint32, data []byte, err error) {
	doc, err := s.staticDataColl.FindId(ctx, username)
	if err != nil {
		if errors.Is(err, anystore.ErrDocNotFound) {
			err = ErrNotFound
		}
		return
	}
	return uint32(doc.Value().GetInt(versionKey)), bytes.Clone(doc.Value().GetBytes(dataKey)), nil
}

func (s *localStore) MarkSeen(ctx context.Context, key [32]byte) (isNew bool, err error) {
	arena := arenaPool.Get()
	defer arenaPool.Put(arena)
	doc := arena.NewObject()
	doc.Set(idKey, arena.NewString(hex.EncodeToString(key[:])))
	doc.Set(addedKey, arena.NewNumberInt(int(time.Now().Unix())))
	err = s.seenColl.Insert(ctx, doc)
	if errors.Is(err, anystore.ErrDocExists) {
		return false, nil
	}
	return err == nil, err
}

func (s *localStore) IsSeen(ctx context.Context, key [32]byte) (bool, error) {
	_, err := s.seenColl.FindId(ctx, hex.EncodeToString(key[:]))
	if errors.Is(err, anystore.ErrDocNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *localStore) Close(ctx context.Context) (err error) {
	if s.db == nil {
		return nil
	}
	err = s.db.Close()
	s.db = nil
	return
}
