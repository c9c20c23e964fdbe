package http

import (
	"context"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Guest(ctx context.Context) (*domain.User, string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) StartSession(ctx context.Context, userID int32) (*domain.ChatSession, *domain.ChatMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ChatSession), args.Get(1).(*domain.ChatMessage), args.Error(2)
}

func (m *MockChatService) SendMessage(ctx context.Context, userID int32, sessionID, text string) (*service.ChatTurn, error) {
	args := m.Called(ctx, userID, sessionID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatTurn), args.Error(1)
}

func (m *MockChatService) GetTranscript(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, userID, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Confirm(ctx context.Context, userID, txnID int32) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) Cancel(ctx context.Context, userID, txnID int32) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) SearchAvailable(ctx context.Context, query string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
