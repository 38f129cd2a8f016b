package mock_accountservice

import (
	"go.uber.org/mock/gomock"

	"github.com/anyproto/any-share/accountservice"
)

func NewAccountServiceWithAccount(ctrl *gomock.Controller, acc *accountservice.AccountData) *MockService {
	mock := NewMockService(ctrl)
	mock.EXPECT().Name().Return(accountservice.CName).AnyTimes()
	mock.EXPECT().Init(gomock.Any()).AnyTimes()
	mock.EXPECT().Account().Return(acc).AnyTimes()
	return mock
}
