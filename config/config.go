package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anyproto/any-share/accountservice"
	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/corenode/inboxclient"
	"github.com/anyproto/any-share/localstore"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/net/httpposter"
	"github.com/anyproto/any-share/usercontext"
)

const CName = "config"

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Account     accountservice.Config `yaml:"account"`
	CoreNode    httpposter.Config     `yaml:"coreNode"`
	Dht         httpposter.Config     `yaml:"dht"`
	Store       localstore.Config     `yaml:"store"`
	Inbox       inboxclient.Config    `yaml:"inbox"`
	UserContext usercontext.Config    `yaml:"reconcile"`
	Metric      metric.Config         `yaml:"metric"`
	Log         logger.Config         `yaml:"log"`
}

func (c *Config) Init(a *app.App) (err error) {
	logger.NewNamed(CName).Debug("config loaded")
	return
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetAccount() accountservice.Config {
	return c.Account
}

func (c *Config) GetCoreNode() httpposter.Config {
	return c.CoreNode
}

func (c *Config) GetDht() httpposter.Config {
	return c.Dht
}

func (c *Config) GetStore() localstore.Config {
	return c.Store
}

func (c *Config) GetInbox() inboxclient.Config {
	return c.Inbox
}

func (c *Config) GetUserContext() usercontext.Config {
	return c.UserContext
}

func (c *Config) GetMetric() metric.Config {
	return c.Metric
}

func (c *Config) GetLog() logger.Config {
	return c.Log
}
