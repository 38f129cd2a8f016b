package metric

import (
	"context"
	"testing"

	"github.com/anyproto/any-share/app/logger"
)

func TestLog(t *testing.T) {
	m := &metric{rpcLog: logger.NewNamed("rpcLog")}
	m.RequestLog(context.Background(), Method("core/getPublicKey"), Username("alice"), Status(200))
}
