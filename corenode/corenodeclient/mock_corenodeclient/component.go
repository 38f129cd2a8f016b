package mock_corenodeclient

import (
	"go.uber.org/mock/gomock"

	"github.com/anyproto/any-share/corenode/corenodeclient"
)

// NewComponent returns a mock registered under the client's component name.
func NewComponent(ctrl *gomock.Controller) *MockCorenodeClient {
	mock := NewMockCorenodeClient(ctrl)
	mock.EXPECT().Name().Return(corenodeclient.CName).AnyTimes()
	mock.EXPECT().Init(gomock.Any()).AnyTimes()
	return mock
}
