//go:generate mockgen -destination mock_accountservice/mock_accountservice.go github.com/anyproto/any-share/accountservice Service
package accountservice

import (
	"errors"
	"fmt"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/identity"
	"github.com/anyproto/any-share/util/crypto"
)

const CName = "common.accountservice"

var ErrNoCredentials = errors.New("account has neither secret keys nor password")

type Service interface {
	app.Component
	Account() *AccountData
}

// AccountData is the local user: the registered username and its keys.
type AccountData struct {
	Username string
	Identity *identity.Identity
}

type Config struct {
	Username string `yaml:"username"`
	// SecretKeys is the multibase encoding of signSecretKey ‖ boxSecretKey.
	SecretKeys string `yaml:"secretKeys"`
	// Password derives the keys when SecretKeys is empty.
	Password string `yaml:"password"`
}

type ConfigGetter interface {
	GetAccount() Config
}

// Identity resolves the configured keys.
func (c Config) Identity() (*identity.Identity, error) {
	switch {
	case c.SecretKeys != "":
		id, err := crypto.DecodeKeyFromString(c.SecretKeys, identity.FromSecretKeys, nil)
		if err != nil {
			return nil, fmt.Errorf("secret keys: %w", err)
		}
		return id, nil
	case c.Password != "":
		return identity.Derive(c.Username, c.Password)
	default:
		return nil, ErrNoCredentials
	}
}

func New() Service {
	return &service{}
}

// NewWithAccount returns a service bound to acc that ignores the config.
func NewWithAccount(acc *AccountData) Service {
	return &service{account: acc}
}

type service struct {
	account *AccountData
}

func (s *service) Init(a *app.App) (err error) {
	if s.account != nil {
		return nil
	}
	conf := a.MustComponent("config").(ConfigGetter).GetAccount()
	id, err := conf.Identity()
	if err != nil {
		return err
	}
	s.account = &AccountData{Username: conf.Username, Identity: id}
	return nil
}

func (s *service) Name() (name string) {
	return CName
}

func (s *service) Account() *AccountData {
	return s.account
}
