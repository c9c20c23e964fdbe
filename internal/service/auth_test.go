package service

import (
	"context"
	"strings"
	"testing"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Guest(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := NewAuthService(userRepo, tokens)

	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 11
	}).Return(nil)
	tokens.On("GenerateAccessToken", int32(11), "", true).Return("guest-token", nil)

	user, token, err := svc.Guest(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "guest-token", token)
	assert.True(t, user.IsGuest)
	assert.True(t, strings.HasPrefix(user.Username, "guest_"))
	assert.Len(t, strings.TrimPrefix(user.Username, "guest_"), 8)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "ada").Return(nil, repository.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(nil, repository.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 12
		}).Return(nil)
		tokens.On("GenerateAccessToken", int32(12), "ada@example.com", false).Return("access-token", nil)

		user, token, err := svc.Signup(ctx, "ada", "ada@example.com", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, "access-token", token)
		assert.False(t, user.IsGuest)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		_, _, err := svc.Signup(ctx, "ada", "", "short")
		assert.ErrorIs(t, err, ErrInvalidSignup)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmptyUsernameRejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		_, _, err := svc.Signup(ctx, "   ", "", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidSignup)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "ada").Return(&domain.User{ID: 1, Username: "ada"}, nil)

		_, _, err := svc.Signup(ctx, "ada", "", "correct horse")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "lovelace").Return(nil, repository.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "ada@example.com").Return(&domain.User{ID: 1, Email: "ada@example.com"}, nil)

		_, _, err := svc.Signup(ctx, "lovelace", "ada@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByUsername", ctx, "ada").Return(&domain.User{
			ID: 1, Username: "ada", Email: "ada@example.com", PasswordHash: string(hash),
		}, nil)
		tokens.On("GenerateAccessToken", int32(1), "ada@example.com", false).Return("access-token", nil)

		user, token, err := svc.Login(ctx, "ada", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, "access-token", token)
		assert.Equal(t, "ada", user.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "ada").Return(&domain.User{
			ID: 1, Username: "ada", PasswordHash: string(hash),
		}, nil)

		_, _, err := svc.Login(ctx, "ada", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "nobody").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("GuestsCannotLogin", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, new(MockTokenManager))

		userRepo.On("GetByUsername", ctx, "guest_a1b2c3d4").Return(&domain.User{
			ID: 2, Username: "guest_a1b2c3d4", IsGuest: true,
		}, nil)

		_, _, err := svc.Login(ctx, "guest_a1b2c3d4", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
