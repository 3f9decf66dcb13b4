package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/auth"
	"newsroom/internal/errors"
	"newsroom/internal/metrics"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

const bcryptCost = 10

// SignupInput is the self-registration payload; Password is plaintext.
type SignupInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      model.Role
}

// LoginResult is the display-safe projection returned on login.
type LoginResult struct {
	Token    string     `json:"token"`
	Username string     `json:"username"`
	Fullname string     `json:"fullname"`
	Role     model.Role `json:"role"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Signup validates and stores a new user with a hashed password.
// Admin accounts cannot be self-registered.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	user, err := model.NewUser(model.UserParams{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
	})
	if err != nil {
		return nil, err
	}
	if user.Role == model.RoleAdmin {
		return nil, errors.Validation("role", "admin accounts cannot be created through sign-up")
	}

	_, taken, err := lookup(s.userRepo.FindByUsername(ctx, user.Username))
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, errors.Conflict("username is already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, found, err := lookup(s.userRepo.FindByUsername(ctx, username))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !found {
		metrics.RecordLogin(false)
		return nil, errors.Authentication("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.RecordLogin(false)
		return nil, errors.Authentication("Incorrect Password.")
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	metrics.RecordLogin(true)

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Fullname: user.FullName(),
		Role:     user.Role,
	}, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.Validation("token", "token has no id")
	}
	return s.tokenStore.Revoke(ctx, tokenID, time.Until(expiresAt))
}
