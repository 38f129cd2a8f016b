package corenodeproto

import (
	"errors"

	"github.com/anyproto/any-share/net/rpc/rpcerr"
)

const ErrorOffset = 200

var (
	errGroup = rpcerr.ErrGroup(ErrorOffset)

	ErrUnexpected   = errGroup.Register(errors.New("unexpected error"), 1)
	ErrUnknownUser  = errGroup.Register(errors.New("unknown user"), 2)
	ErrBadRequest   = errGroup.Register(errors.New("bad request"), 3)
	ErrUnknownOwner = errGroup.Register(errors.New("unknown owner"), 4)
)
