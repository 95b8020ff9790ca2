package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pantrychef/internal/common"
	"pantrychef/internal/repository"
)

// Service handles registration and login.
type Service struct {
	users  repository.UserRepository
	issuer *TokenIssuer
	log    *slog.Logger
}

func NewService(users repository.UserRepository, issuer *TokenIssuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, issuer: issuer, log: logger}
}

// RegisterInput is what a new account needs.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	CookingMethods []string
	KitchenTools   []string
}

// Register creates the account and returns a session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*repository.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, "", fmt.Errorf("%w: username, email and a password of at least 8 characters are required", common.ErrInvalidInput)
	}

	exists, err := s.users.Exists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("%w: username or email already exists", common.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &repository.User{
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		CookingMethods: in.CookingMethods,
		KitchenTools:   in.KitchenTools,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issuer.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("auth.register.ok", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login checks credentials and returns a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*repository.User, string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		s.log.Warn("auth.login.unknown_user", "username", username)
		return nil, "", fmt.Errorf("%w: invalid username or password", common.ErrInvalidInput)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("auth.login.bad_password", "user_id", user.ID)
		return nil, "", fmt.Errorf("%w: invalid username or password", common.ErrInvalidInput)
	}

	token, err := s.issuer.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("auth.login.ok", "user_id", user.ID)
	return user, token, nil
}
