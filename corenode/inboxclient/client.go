package inboxclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cheggaaa/mb/v3"
	"go.uber.org/zap"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/localstore"
	"github.com/anyproto/any-share/usercontext"
	"github.com/anyproto/any-share/util/periodicsync"
)

const CName = "common.corenode.inboxclient"

var log = logger.NewNamed(CName)

var ErrNoReceiver = errors.New("message receiver is not set")

type Config struct {
	// PollPeriodSec is the inbox polling interval; 60 when zero.
	PollPeriodSec int `yaml:"pollPeriodSec"`
	// RemoveProcessed deletes delivered requests from the core node.
	RemoveProcessed bool `yaml:"removeProcessed"`
	QueueSize       int  `yaml:"queueSize"`
}

type configGetter interface {
	GetInbox() Config
}

// Request is a follow request addressed to the local user.
type Request struct {
	Envelope   []byte
	Capability *capability.Capability
}

type MessageReceiver func(requests []Request)

type InboxClient interface {
	// Fetch polls the inbox once and returns the requests not seen before.
	// The receiver is not called for them.
	Fetch(ctx context.Context) ([]Request, error)
	// Kick schedules a poll now.
	Kick()
	// SetMessageReceiver must be called before Run.
	SetMessageReceiver(receiver MessageReceiver) error
	app.ComponentRunnable
}

func New() InboxClient {
	return new(inboxClient)
}

type inboxClient struct {
	user  usercontext.UserContext
	store localstore.LocalStore
	conf  Config

	queue  *mb.MB[[]byte]
	poller periodicsync.PeriodicSync
	done   chan struct{}

	mu              sync.Mutex
	running         bool
	messageReceiver MessageReceiver
}

func (c *inboxClient) Name() (name string) {
	return CName
}

func (c *inboxClient) Init(a *app.App) (err error) {
	c.user = app.MustComponent[usercontext.UserContext](a)
	c.store = app.MustComponent[localstore.LocalStore](a)
	c.conf = a.MustComponent("config").(configGetter).GetInbox()
	c.queue = mb.New[[]byte](c.conf.QueueSize)
	c.done = make(chan struct{})
	period := c.conf.PollPeriodSec
	if period <= 0 {
		period = 60
	}
	c.poller = periodicsync.NewPeriodicSync(period, time.Minute, c.poll, log)
	return nil
}

func (c *inboxClient) SetMessageReceiver(receiver MessageReceiver) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("set receiver must be called before Run")
	}
	c.messageReceiver = receiver
	return
}

func (c *inboxClient) Run(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messageReceiver == nil {
		return ErrNoReceiver
	}
	c.running = true
	go c.processLoop()
	c.poller.Run()
	return nil
}

func (c *inboxClient) Kick() {
	c.poller.Kick()
}

func (c *inboxClient) poll(ctx context.Context) error {
	envelopes, err := c.user.GetFollowRequests(ctx)
	if err != nil {
		return err
	}
	if len(envelopes) == 0 {
		return nil
	}
	log.DebugCtx(ctx, "inbox fetched", zap.Int("count", len(envelopes)))
	return c.queue.Add(ctx, envelopes...)
}

func (c *inboxClient) processLoop() {
	defer close(c.done)
	for {
		batch, err := c.queue.Wait(context.Background())
		if err != nil {
			log.Debug("close process loop", zap.Error(err))
			return
		}
		requests, err := c.process(context.Background(), batch)
		if err != nil {
			log.Warn("process inbox batch", zap.Error(err))
		}
		if len(requests) > 0 {
			c.messageReceiver(requests)
		}
	}
}

func (c *inboxClient) Fetch(ctx context.Context) ([]Request, error) {
	envelopes, err := c.user.GetFollowRequests(ctx)
	if err != nil {
		return nil, err
	}
	return c.process(ctx, envelopes)
}

// process decodes envelopes and keeps the ones whose capability was not
// delivered before. Undecryptable envelopes are logged and skipped.
func (c *inboxClient) process(ctx context.Context, envelopes [][]byte) (requests []Request, err error) {
	for _, d := range c.user.DecodeFollowRequests(envelopes) {
		if d.Err != nil {
			log.InfoCtx(ctx, "skip follow request", zap.Int("size", len(d.Envelope)), zap.Error(d.Err))
			continue
		}
		isNew, err := c.store.MarkSeen(ctx, d.Key)
		if err != nil {
			return requests, err
		}
		if isNew {
			requests = append(requests, Request{Envelope: d.Envelope, Capability: d.Capability})
		}
		if c.conf.RemoveProcessed {
			if err = c.user.RemoveFollowRequest(ctx, d.Envelope); err != nil {
				log.WarnCtx(ctx, "remove follow request", zap.Error(err))
			}
		}
	}
	return requests, nil
}

func (c *inboxClient) Close(_ context.Context) error {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if !running {
		return nil
	}
	c.poller.Close()
	err := c.queue.Close()
	<-c.done
	return err
}
