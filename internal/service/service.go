package service

import (
	"context"
	"errors"

	"evrental-backend/internal/domain"
)

var (
	// ErrForbidden is returned when a caller acts on a record owned by a
	// different user. No state is mutated.
	ErrForbidden = errors.New("record belongs to a different user")
	// ErrAlreadyFinal is returned for status changes out of a terminal
	// transaction state.
	ErrAlreadyFinal = errors.New("transaction is already in a terminal state")
	// ErrInvalidCredentials is returned on failed logins.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidSignup is returned when signup input fails validation.
	ErrInvalidSignup = errors.New("username and a password of at least 8 characters are required")
	// ErrUsernameTaken is returned when signing up with an existing name.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken is returned when signing up with an email that already
	// belongs to an account.
	ErrEmailTaken = errors.New("email is already registered")
)

type AuthService interface {
	// Guest creates a throwaway guest user and returns it with an access token.
	Guest(ctx context.Context) (*domain.User, string, error)
	Signup(ctx context.Context, username, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// ChatTurn is the outcome of one chat exchange. DraftTransaction is set
// when the agent's reply carried a draft-creation payload.
type ChatTurn struct {
	UserMessage      *domain.ChatMessage `json:"user_message"`
	AgentMessage     *domain.ChatMessage `json:"agent_message"`
	DraftTransaction *domain.Transaction `json:"draft_transaction,omitempty"`
}

type ChatService interface {
	StartSession(ctx context.Context, userID int32) (*domain.ChatSession, *domain.ChatMessage, error)
	SendMessage(ctx context.Context, userID int32, sessionID, text string) (*ChatTurn, error)
	GetTranscript(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error)
}

type TransactionService interface {
	// Confirm moves a caller-owned DRAFT to CONFIRMED. This is the only
	// path into CONFIRMED and is never model-mediated.
	Confirm(ctx context.Context, userID, txnID int32) (*domain.Transaction, error)
	Cancel(ctx context.Context, userID, txnID int32) (*domain.Transaction, error)
	List(ctx context.Context, userID int32) ([]domain.Transaction, error)
}

type VehicleService interface {
	SearchAvailable(ctx context.Context, query string) ([]domain.Vehicle, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, toEmail, toName, modelName string, txnID int32) error
	SendDraftReminder(ctx context.Context, toEmail, toName, modelName string, txnID int32) error
}

type InventoryService interface {
	// LoadFromCSV upserts vehicles keyed by model name. Idempotent.
	LoadFromCSV(ctx context.Context, path string) (created, updated int, err error)
}
