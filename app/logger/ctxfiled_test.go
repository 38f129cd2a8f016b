package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCtxWithFields(t *testing.T) {
	ctx := CtxWithFields(context.Background(), zap.String("a", "1"))
	ctx = CtxWithFields(ctx, zap.String("b", "2"))
	fields := CtxGetFields(ctx)
	if assert.Len(t, fields, 2) {
		assert.Equal(t, "a", fields[0].Key)
		assert.Equal(t, "b", fields[1].Key)
	}
	assert.Empty(t, CtxGetFields(context.Background()))
}

func TestCtxWithOperation(t *testing.T) {
	ctx, opId := CtxWithOperation(context.Background(), "follow")
	assert.NotEmpty(t, opId)
	fields := CtxGetFields(ctx)
	if assert.Len(t, fields, 2) {
		assert.Equal(t, "follow", fields[0].String)
		assert.Equal(t, opId, fields[1].String)
	}
	_, other := CtxWithOperation(context.Background(), "follow")
	assert.NotEqual(t, opId, other)
}

func TestLevelsFromStr(t *testing.T) {
	levels := LevelsFromStr("app=DEBUG; usercontext*=WARN;bogus=nope")
	assert.Equal(t, []NamedLevel{
		{Name: "app", Level: "DEBUG"},
		{Name: "usercontext*", Level: "WARN"},
	}, levels)
	assert.Equal(t, []NamedLevel{{Name: "*", Level: "ERROR"}}, LevelsFromStr("ERROR"))
}
