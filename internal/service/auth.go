package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"
	"evrental-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Guest(ctx context.Context) (*domain.User, string, error) {
	user := &domain.User{
		Username: fmt.Sprintf("guest_%s", strings.Split(uuid.NewString(), "-")[0]),
		IsGuest:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating guest user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, "", true)
	if err != nil {
		return nil, "", fmt.Errorf("issuing guest token: %w", err)
	}

	logger.Info("guest user created", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

func (s *authService) Signup(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || len(password) < 8 {
		return nil, "", ErrInvalidSignup
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	if email != "" {
		if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
			return nil, "", ErrEmailTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, false)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if user.IsGuest || user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, false)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
