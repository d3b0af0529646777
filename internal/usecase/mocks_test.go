package usecase

import (
	"context"

	"go-contacts-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) List(ctx context.Context, params domain.ListParams) ([]domain.Contact, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Contact), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepo) Find(ctx context.Context, id int64) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepo) Insert(ctx context.Context, contact *domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepo) Update(ctx context.Context, id int64, contact *domain.Contact) (*domain.Contact, error) {
	args := m.Called(ctx, id, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepo) ListForExport(ctx context.Context, ids []int64) ([]domain.Contact, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// Transaction fails with the configured error, or runs fn against the mock itself.
func (m *MockContactRepo) Transaction(ctx context.Context, fn func(repo domain.ContactRepository) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

type MockPostalCodeValidator struct {
	mock.Mock
}

func (m *MockPostalCodeValidator) Validate(ctx context.Context, raw string) (*domain.Address, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyCreated(ctx context.Context, contact *domain.Contact) error {
	return m.Called(ctx, contact).Error(0)
}
