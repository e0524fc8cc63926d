package services

import (
	"context"
	"errors"

	"github.com/identity-hub/apiserver/internal/auth"
	"github.com/identity-hub/apiserver/internal/store"
	"github.com/identity-hub/apiserver/types"
)

// ErrInvalidCredentials is the uniform login failure. It deliberately
// covers both unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements the registration and login flows on top of the
// user service and the token service.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenService
}

func NewAuthService(users *UserService, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates the account and issues a session token for it.
// An already-registered email surfaces as store.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (types.AuthResponse, error) {
	user, err := s.users.Create(ctx, email, username, password)
	if err != nil {
		return types.AuthResponse{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return types.AuthResponse{}, err
	}
	return types.AuthResponse{Token: token, User: user}, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.AuthResponse, error) {
	user, err := s.users.repo.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.AuthResponse{}, ErrInvalidCredentials
		}
		return types.AuthResponse{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return types.AuthResponse{}, err
	}
	return types.AuthResponse{Token: token, User: user}, nil
}
