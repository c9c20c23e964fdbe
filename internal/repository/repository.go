package repository

import (
	"context"
	"errors"

	"evrental-backend/internal/domain"
)

// ErrNotFound is returned by all repositories when a lookup resolves no row.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProfileRepository interface {
	// Upsert creates the profile for a user on first onboarding and
	// updates it in place afterwards. At most one profile per user.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
	GetByUserID(ctx context.Context, userID int32) (*domain.UserProfile, error)
	GetByID(ctx context.Context, id int32) (*domain.UserProfile, error)
}

type VehicleRepository interface {
	UpsertByModelName(ctx context.Context, vehicle *domain.Vehicle) (created bool, err error)
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// SearchAvailable returns AVAILABLE vehicles whose model name contains
	// the query (case-insensitive). Empty query matches all AVAILABLE rows.
	SearchAvailable(ctx context.Context, query string) ([]domain.Vehicle, error)
	FirstAvailableByName(ctx context.Context, query string) (*domain.Vehicle, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int32, status domain.TransactionStatus) error
	ListByProfile(ctx context.Context, profileID int32) ([]domain.Transaction, error)
	ListDraftsOlderThan(ctx context.Context, hours int) ([]domain.Transaction, error)
}

type ChatRepository interface {
	CreateSession(ctx context.Context, session *domain.ChatSession) error
	GetSession(ctx context.Context, id string) (*domain.ChatSession, error)
	TouchSession(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string, limit int32) ([]domain.ChatMessage, error)
	DeleteStaleGuestSessions(ctx context.Context, idleDays int) (int64, error)
}
