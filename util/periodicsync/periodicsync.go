package periodicsync

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/anyproto/any-share/app/logger"
)

// PeriodicSync calls a function once on Run and then every period until
// Close.
type PeriodicSync interface {
	Run()
	// Kick requests an out-of-schedule call. Kicks arriving while a call is
	// pending are merged.
	Kick()
	// Reset performs a call now and restarts the period from it.
	Reset()
	Close()
}

type SyncerFunc func(ctx context.Context) error

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time {
	return t.Ticker.C
}

func NewPeriodicSync(periodSeconds int, timeout time.Duration, caller SyncerFunc, l logger.CtxLogger) PeriodicSync {
	return NewPeriodicSyncDuration(time.Duration(periodSeconds)*time.Second, timeout, caller, l)
}

func NewPeriodicSyncDuration(periodicLoopInterval, timeout time.Duration, caller SyncerFunc, l logger.CtxLogger) PeriodicSync {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logger.CtxWithFields(ctx, zap.String("rootOp", "periodicCall"))
	return &periodicCall{
		caller:     caller,
		log:        l,
		loopCtx:    ctx,
		loopCancel: cancel,
		loopDone:   make(chan struct{}),
		kick:       make(chan struct{}, 1),
		reset:      make(chan struct{}, 1),
		period:     periodicLoopInterval,
		timeout:    timeout,
		newTicker: func(d time.Duration) ticker {
			return timeTicker{time.NewTicker(d)}
		},
	}
}

type periodicCall struct {
	log        logger.CtxLogger
	caller     SyncerFunc
	loopCtx    context.Context
	loopCancel context.CancelFunc
	loopDone   chan struct{}
	kick       chan struct{}
	reset      chan struct{}
	period     time.Duration
	timeout    time.Duration
	isRunning  atomic.Bool
	newTicker  func(d time.Duration) ticker
}

func (p *periodicCall) Run() {
	p.isRunning.Store(true)
	go p.loop(p.period)
}

func (p *periodicCall) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *periodicCall) Reset() {
	select {
	case p.reset <- struct{}{}:
	default:
	}
}

func (p *periodicCall) loop(period time.Duration) {
	defer close(p.loopDone)
	doCall := func() {
		ctx := p.loopCtx
		if p.timeout != 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(p.loopCtx, p.timeout)
			defer cancel()
		}
		if err := p.caller(ctx); err != nil {
			p.log.Warn("periodic call error", zap.Error(err))
		}
	}
	doCall()
	if period <= 0 {
		return
	}
	t := p.newTicker(period)
	defer func() {
		t.Stop()
	}()
	for {
		select {
		case <-p.loopCtx.Done():
			return
		case <-t.C():
			doCall()
		case <-p.kick:
			doCall()
		case <-p.reset:
			t.Stop()
			t = p.newTicker(period)
			doCall()
		}
	}
}

func (p *periodicCall) Close() {
	if !p.isRunning.Load() {
		return
	}
	p.loopCancel()
	<-p.loopDone
}
