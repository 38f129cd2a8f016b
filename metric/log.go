package metric

import (
	"context"
	"time"

	"go.uber.org/zap"
)

func Method(val string) zap.Field {
	return zap.String("rpc", val)
}

func TotalDur(val time.Duration) zap.Field {
	return zap.Int64("totalMs", val.Milliseconds())
}

func Identity(val string) zap.Field {
	return zap.String("identity", val)
}

func Username(val string) zap.Field {
	return zap.String("username", val)
}

func Status(val int) zap.Field {
	return zap.Int("status", val)
}

func (m *metric) RequestLog(ctx context.Context, fields ...zap.Field) {
	m.rpcLog.InfoCtx(ctx, "", fields...)
}
