package walletapi

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchWalletDetail(ctx context.Context, address string) (*WalletDetail, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WalletDetail), args.Error(1)
}

func (m *MockClient) GetSpotPrice(ctx context.Context, currency string) (*SpotPrice, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SpotPrice), args.Error(1)
}

var _ ClientInterface = (*MockClient)(nil)
