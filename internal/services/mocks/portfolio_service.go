package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adagate/ada-wallet-gateway/internal/services"
)

type MockPortfolioService struct {
	mock.Mock
}

var _ services.PortfolioServiceInterface = new(MockPortfolioService)

func (s *MockPortfolioService) GetPortfolio(ctx context.Context, address string) (*services.Portfolio, error) {
	args := s.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Portfolio), args.Error(1)
}

func (s *MockPortfolioService) GetPortfolioWithQuote(ctx context.Context, address string, quoteCurrency string) (*services.Portfolio, error) {
	args := s.Called(ctx, address, quoteCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Portfolio), args.Error(1)
}
