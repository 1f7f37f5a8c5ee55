// mock.go is file to declare mock of probe.Runner for testing with testify

package runner

import (
	"context"
	"github.com/stretchr/testify/mock"
)

type _mock struct {
	mock *mock.Mock
}

func Mock(mock *mock.Mock) _mock {
	return _mock{mock: mock}
}

func (m _mock) Run(ctx context.Context, commandLine string) (string, error) {
	args := m.mock.Called(commandLine)
	return args.String(0), args.Error(1)
}
