package corenodeproto

import (
	"fmt"

	"github.com/anyproto/any-share/util/wire"
)

// BoolResponse answers every mutating call. Ok == false means the service
// refused the change.
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

type GetPublicKeyRequest struct {
	Username string
}

func (m *GetPublicKeyRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
}

func (m *GetPublicKeyRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.Username, err = r.ReadString(MaxUsernameSize)
	return
}

// GetPublicKeyResponse carries the public keys only when Found is set.
type GetPublicKeyResponse struct {
	Found      bool
	PublicKeys []byte
}

func (m *GetPublicKeyResponse) MarshalWire(w *wire.Writer) {
	w.WriteBool(m.Found)
	if m.Found {
		w.WriteArray(m.PublicKeys)
	}
}

func (m *GetPublicKeyResponse) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Found, err = r.ReadBool(); err != nil || !m.Found {
		return
	}
	m.PublicKeys, err = r.ReadArray(MaxPublicKeysSize)
	return
}

type GetUsernameRequest struct {
	PublicKeys []byte
}

func (m *GetUsernameRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.PublicKeys)
}

func (m *GetUsernameRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.PublicKeys, err = r.ReadArray(MaxPublicKeysSize)
	return
}

// GetUsernameResponse has an empty Username for unknown keys.
type GetUsernameResponse struct {
	Username string
}

func (m *GetUsernameResponse) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
}

func (m *GetUsernameResponse) UnmarshalWire(r *wire.Reader) (err error) {
	m.Username, err = r.ReadString(MaxUsernameSize)
	return
}

type AddUsernameRequest struct {
	Username   string
	PublicKeys []byte
	Signed     []byte
	StaticData []byte
}

func (m *AddUsernameRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
	w.WriteArray(m.PublicKeys)
	w.WriteArray(m.Signed)
	w.WriteArray(m.StaticData)
}

func (m *AddUsernameRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Username, err = r.ReadString(MaxUsernameSize); err != nil {
		return
	}
	if m.PublicKeys, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	if m.Signed, err = r.ReadArray(MaxSignedSize); err != nil {
		return
	}
	m.StaticData, err = r.ReadArray(MaxStaticDataSize)
	return
}

type UpdateStaticDataRequest struct {
	Username   string
	Signed     []byte
	StaticData []byte
}

func (m *UpdateStaticDataRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
	w.WriteArray(m.Signed)
	w.WriteArray(m.StaticData)
}

func (m *UpdateStaticDataRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Username, err = r.ReadString(MaxUsernameSize); err != nil {
		return
	}
	if m.Signed, err = r.ReadArray(MaxSignedSize); err != nil {
		return
	}
	m.StaticData, err = r.ReadArray(MaxStaticDataSize)
	return
}

type GetStaticDataRequest struct {
	Username string
}

func (m *GetStaticDataRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
}

func (m *GetStaticDataRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.Username, err = r.ReadString(MaxUsernameSize)
	return
}

type GetStaticDataResponse struct {
	StaticData []byte
}

func (m *GetStaticDataResponse) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.StaticData)
}

func (m *GetStaticDataResponse) UnmarshalWire(r *wire.Reader) (err error) {
	m.StaticData, err = r.ReadArray(MaxStaticDataSize)
	return
}

// AllowSharingKeyRequest authorizes a writer key: SignedWriter is the
// owner's attached signature over the writer's public keys.
type AllowSharingKeyRequest struct {
	OwnerPublicKeys []byte
	SignedWriter    []byte
}

func (m *AllowSharingKeyRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.OwnerPublicKeys)
	w.WriteArray(m.SignedWriter)
}

func (m *AllowSharingKeyRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.OwnerPublicKeys, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	m.SignedWriter, err = r.ReadArray(MaxSignatureSize + MaxPublicKeysSize)
	return
}

// BanSharingKeyRequest revokes a writer key: SignedHash is the owner's
// attached signature over the hash of the sharing public keys.
type BanSharingKeyRequest struct {
	Username          string
	SharingPublicKeys []byte
	SignedHash        []byte
}

func (m *BanSharingKeyRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
	w.WriteArray(m.SharingPublicKeys)
	w.WriteArray(m.SignedHash)
}

func (m *BanSharingKeyRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Username, err = r.ReadString(MaxUsernameSize); err != nil {
		return
	}
	if m.SharingPublicKeys, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	m.SignedHash, err = r.ReadArray(MaxSignatureSize + 32)
	return
}

type GetSharingKeysRequest struct {
	Username string
}

func (m *GetSharingKeysRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
}

func (m *GetSharingKeysRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.Username, err = r.ReadString(MaxUsernameSize)
	return
}

type GetSharingKeysResponse struct {
	PublicKeys [][]byte
}

func (m *GetSharingKeysResponse) MarshalWire(w *wire.Writer) {
	w.WriteArrays(m.PublicKeys)
}

func (m *GetSharingKeysResponse) UnmarshalWire(r *wire.Reader) (err error) {
	m.PublicKeys, err = r.ReadArrays(MaxSharingKeys, MaxPublicKeysSize)
	return
}

type FollowRequestRequest struct {
	TargetPublicKeys []byte
	Envelope         []byte
}

func (m *FollowRequestRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.TargetPublicKeys)
	w.WriteArray(m.Envelope)
}

func (m *FollowRequestRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.TargetPublicKeys, err = r.ReadArray(MaxPublicKeysSize); err != nil {
		return
	}
	m.Envelope, err = r.ReadArray(MaxEnvelopeSize)
	return
}

type GetFollowRequestsRequest struct {
	OwnerPublicKeys []byte
}

func (m *GetFollowRequestsRequest) MarshalWire(w *wire.Writer) {
	w.WriteArray(m.OwnerPublicKeys)
}

func (m *GetFollowRequestsRequest) UnmarshalWire(r *wire.Reader) (err error) {
	m.OwnerPublicKeys, err = r.ReadArray(MaxPublicKeysSize)
	return
}

// GetFollowRequestsResponse is framed as u32 size of the remainder followed
// by u32 count and the length-prefixed envelopes.
type GetFollowRequestsResponse struct {
	Envelopes [][]byte
}

func (m *GetFollowRequestsResponse) MarshalWire(w *wire.Writer) {
	inner := wire.NewWriter()
	inner.WriteArrays(m.Envelopes)
	w.WriteArray(inner.Bytes())
}

func (m *GetFollowRequestsResponse) UnmarshalWire(r *wire.Reader) (err error) {
	size, err := r.ReadUint32()
	if err != nil {
		return
	}
	if int(size) != r.Remaining() {
		return fmt.Errorf("%w: declared %d, have %d", wire.ErrShortBuffer, size, r.Remaining())
	}
	m.Envelopes, err = r.ReadArrays(MaxFollowRequests, MaxEnvelopeSize)
	return
}

// RemoveFollowRequestRequest deletes a consumed envelope; Signed is the
// owner's attached signature over Data.
type RemoveFollowRequestRequest struct {
	Username string
	Data     []byte
	Signed   []byte
}

func (m *RemoveFollowRequestRequest) MarshalWire(w *wire.Writer) {
	w.WriteString(m.Username)
	w.WriteArray(m.Data)
	w.WriteArray(m.Signed)
}

func (m *RemoveFollowRequestRequest) UnmarshalWire(r *wire.Reader) (err error) {
	if m.Username, err = r.ReadString(MaxUsernameSize); err != nil {
		return
	}
	if m.Data, err = r.ReadArray(MaxEnvelopeSize); err != nil {
		return
	}
	m.Signed, err = r.ReadArray(MaxSignatureSize + MaxEnvelopeSize)
	return
}
