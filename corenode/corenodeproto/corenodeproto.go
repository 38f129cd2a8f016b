// Package corenodeproto defines the request and response payloads of the
// identity-directory service. Every message is a fixed sequence of wire
// fields; see util/wire for the framing.
package corenodeproto

import (
	"github.com/anyproto/any-share/util/wire"
)

const (
	MethodGetPublicKey        = "core/getPublicKey"
	MethodGetUsername         = "core/getUsername"
	MethodAddUsername         = "core/addUsername"
	MethodUpdateStaticData    = "core/updateStaticData"
	MethodGetStaticData       = "core/getStaticData"
	MethodAllowSharingKey     = "core/allowSharingKey"
	MethodBanSharingKey       = "core/banSharingKey"
	MethodGetSharingKeys      = "core/getSharingKeys"
	MethodFollowRequest       = "core/followRequest"
	MethodGetFollowRequests   = "core/getFollowRequests"
	MethodRemoveFollowRequest = "core/removeFollowRequest"
)

const (
	MaxUsernameSize   = 64
	MaxPublicKeysSize = 64
	MaxSignatureSize  = 64
	MaxStaticDataSize = 4 << 20
	MaxEnvelopeSize   = 64 << 10
	MaxSharingKeys    = 1 << 16
	MaxFollowRequests = 1 << 12

	// MaxSignedSize bounds attached signatures over registration payloads.
	MaxSignedSize = MaxSignatureSize + MaxUsernameSize + MaxPublicKeysSize + MaxStaticDataSize
)

type Message = wire.Message

func Marshal(m Message) []byte {
	return wire.Marshal(m)
}

func Unmarshal(b []byte, m Message) error {
	return wire.Unmarshal(b, m)
}
