// Package fragment retrieves the fragments of a stored file in parallel.
package fragment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/util/crypto"
)

const DefaultConcurrency = 8

// blake2s-256 in the multihash table
const blake2s256 = mh.BLAKE2S_MIN + crypto.HashSize - 1

var log = logger.NewNamed("common.dht.fragment")

var ErrHashMismatch = errors.New("fragment content does not match its key")

// Key is the BLAKE2s-256 hash of a fragment's content.
type Key []byte

func KeyFor(data []byte) Key {
	h := crypto.Hash(data)
	return h[:]
}

// Cid renders the key as a CIDv1 with the raw codec.
func (k Key) Cid() (cid.Cid, error) {
	hash, err := mh.Encode(k, blake2s256)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, hash), nil
}

func (k Key) String() string {
	c, err := k.Cid()
	if err != nil {
		return fmt.Sprintf("invalid(%x)", []byte(k))
	}
	return c.String()
}

type Getter interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
}

type Options struct {
	// Concurrency bounds parallel fetches; DefaultConcurrency when zero.
	Concurrency int
}

// DownloadError lists the fragments that could not be fetched. The data
// returned alongside it still holds every fragment that succeeded.
type DownloadError struct {
	Failed map[int]error
}

func (e *DownloadError) Indexes() []int {
	idx := make([]int, 0, len(e.Failed))
	for i := range e.Failed {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

func (e *DownloadError) Error() string {
	var group errs.Group
	for _, i := range e.Indexes() {
		group.Add(fmt.Errorf("fragment %d: %w", i, e.Failed[i]))
	}
	return fmt.Sprintf("%d fragments failed: %v", len(e.Failed), group.Err())
}

func (e *DownloadError) Unwrap() []error {
	res := make([]error, 0, len(e.Failed))
	for _, i := range e.Indexes() {
		res = append(res, e.Failed[i])
	}
	return res
}

// Download fetches every key and returns the fragments in the order of keys.
// It waits for all fetches to settle; failed positions are nil and reported
// through *DownloadError.
func Download(ctx context.Context, g Getter, keys []Key, opts Options) ([][]byte, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	var (
		res     = make([][]byte, len(keys))
		results = make([]error, len(keys))
		sem     = make(chan struct{}, concurrency)
		wg      sync.WaitGroup
	)
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key Key) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()
			data, err := g.Get(ctx, key)
			if err != nil {
				results[i] = err
				return
			}
			if !bytes.Equal(KeyFor(data), key) {
				results[i] = ErrHashMismatch
				return
			}
			res[i] = data
		}(i, key)
	}
	wg.Wait()

	failed := map[int]error{}
	for i, err := range results {
		if err != nil {
			failed[i] = err
		}
	}
	if len(failed) > 0 {
		log.DebugCtx(ctx, "fragment download incomplete", zap.Int("failed", len(failed)), zap.Int("total", len(keys)))
		return res, &DownloadError{Failed: failed}
	}
	return res, nil
}
