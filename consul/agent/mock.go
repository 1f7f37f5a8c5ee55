// mock.go is file to declare mock of consul.Agent for testing with testify

package agent

import (
	"consultags/entity"
	"context"
	"github.com/stretchr/testify/mock"
)

type _mock struct {
	mock *mock.Mock
}

func Mock(mock *mock.Mock) _mock {
	return _mock{mock: mock}
}

func (m _mock) GetServiceRecord(ctx context.Context, nodeID string) (entity.ServiceRecord, error) {
	args := m.mock.Called(nodeID)
	return args.Get(0).(entity.ServiceRecord), args.Error(1)
}

func (m _mock) RegisterEntity(ctx context.Context, record entity.EntityRecord) ([]byte, error) {
	args := m.mock.Called(record)
	return args.Get(0).([]byte), args.Error(1)
}
