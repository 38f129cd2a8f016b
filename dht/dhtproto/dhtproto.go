// Package dhtproto defines the payloads of the content-addressed storage
// network.
package dhtproto

import (
	"errors"

	"github.com/anyproto/any-share/net/rpc/rpcerr"
	"github.com/anyproto/any-share/util/wire"
)

const (
	MethodPut      = "dht/put"
	MethodGet      = "dht/get"
	MethodContains = "dht/contains"
)

const (
	MaxKeySize        = 128
	MaxValueSize      = 8 << 20
	MaxPublicKeysSize = 64
	MaxMapKeySize     = 32
	MaxProofSize      = 64 + 32
)

const ErrorOffset = 300

var (
	errGroup = rpcerr.ErrGroup(ErrorOffset)

	ErrUnexpected   = errGroup.Register(errors.New("unexpected error"), 1)
	ErrNotFound     = errGroup.Register(errors.New("fragment not found"), 2)
	ErrBadRequest   = errGroup.Register(errors.New("bad request"), 3)
	ErrUnauthorized = errGroup.Register(errors.New("writer is not authorized"), 4)
)

// PutRequest stores Value under Key. Proof is the sharing key's attached
// signature over the hash of Value.
type PutRequest struct {
	Key        []byte
	Value      []byte
	Owner      []byte
	SharingKey []byte
	MapKey     []byte
	Proof      []byte
}

func (m *PutRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.Key)
	w.WriteArray(m.Value)
	w.WriteArray(m.Owner)
	w.WriteArray(m.SharingKey)
	w.WriteArray(m.MapKey)
	w.WriteArray(m.Proof)
}

func (m *PutRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Key, err = r.ReadArray(MaxKeySize); err != nil {
		return
	}
	if m.Value, err = r.ReadArray(MaxValueSize); err != nil {
		return
	}
	if m.Owner, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	if m.SharingKey, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	if m.MapKey, err = r.ReadArray(MaxMapKeySize); err != nil {
		return
	}
	m.Proof, err = r.ReadArray(MaxProofSize)
	return
}

// KeyRequest addresses one fragment; used by get and contains.
type KeyRequest struct {
	Key []byte
}

func (m *KeyRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.Key)
}

func (m *KeyRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.Key, err = r.ReadArray(MaxKeySize)
	return
}

type BoolResponse struct {
	Ok bool
}

func (m *BoolResponse) MarshalWire(w *wire.Writer) {
	w.WriteBool(m.Ok)
}

func (m *BoolResponse) UnmarshalWire(r *wire.Reader) (err error) {
	m.Ok, err = r.ReadBool()
	return
}
