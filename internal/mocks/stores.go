// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prekeyd/internal/model"
)

// AccountStore is a mock implementation of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func (m *AccountStore) GetByNumber(ctx context.Context, number string) (model.Account, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(model.Account), args.Error(1)
}

// KeyStore is a mock implementation of model.KeyStore.
type KeyStore struct {
	mock.Mock
}

func (m *KeyStore) GetByNumberAndDevice(ctx context.Context, number string, deviceID int64) (model.PreKey, error) {
	args := m.Called(ctx, number, deviceID)
	return args.Get(0).(model.PreKey), args.Error(1)
}

func (m *KeyStore) GetByNumber(ctx context.Context, number string) ([]model.PreKey, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PreKey), args.Error(1)
}

// Authenticator is a mock implementation of model.Authenticator.
type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Authenticate(ctx context.Context, creds model.Credentials) (model.Account, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.Account), args.Error(1)
}

// Limiter is a mock implementation of model.Limiter.
type Limiter struct {
	mock.Mock
}

func (m *Limiter) TryAcquire(ctx context.Context, principal string) bool {
	args := m.Called(ctx, principal)
	return args.Bool(0)
}
