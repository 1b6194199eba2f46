package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

type MockSpinService struct {
	mock.Mock
}

func (m *MockSpinService) OpenLootbox(ctx context.Context, userID, contentType string) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, userID, contentType)
	outcome, _ := args.Get(0).(*domain.SpinOutcome)
	return outcome, args.Error(1)
}

func (m *MockSpinService) OpenGuestLootbox(ctx context.Context, contentType string) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, contentType)
	outcome, _ := args.Get(0).(*domain.SpinOutcome)
	return outcome, args.Error(1)
}

func (m *MockSpinService) GetStatus(ctx context.Context, userID string) (*domain.SpinStatus, error) {
	args := m.Called(ctx, userID)
	status, _ := args.Get(0).(*domain.SpinStatus)
	return status, args.Error(1)
}

func (m *MockSpinService) GrantOverrideSpins(ctx context.Context, userID string, amount int) (*domain.SpinStatus, error) {
	args := m.Called(ctx, userID, amount)
	status, _ := args.Get(0).(*domain.SpinStatus)
	return status, args.Error(1)
}

func (m *MockSpinService) SetTimezone(ctx context.Context, userID, timezone string) (*domain.SpinStatus, error) {
	args := m.Called(ctx, userID, timezone)
	status, _ := args.Get(0).(*domain.SpinStatus)
	return status, args.Error(1)
}
