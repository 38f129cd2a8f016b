package mock_dhtclient

import (
	"go.uber.org/mock/gomock"

	"github.com/anyproto/any-share/dht/dhtclient"
)

// NewComponent returns a mock registered under the client's component name.
func NewComponent(ctrl *gomock.Controller) *MockDhtClient {
	mock := NewMockDhtClient(ctrl)
	mock.EXPECT().Name().Return(dhtclient.CName).AnyTimes()
	mock.EXPECT().Init(gomock.Any()).AnyTimes()
	return mock
}
