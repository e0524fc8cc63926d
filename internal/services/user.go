package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/identity-hub/apiserver/internal/store"
	"github.com/identity-hub/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, email, username, password string) (types.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context, limit, offset int) ([]types.User, error)
	Update(ctx context.Context, id uuid.UUID, email, username *string) (types.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	VerifyPassword(ctx context.Context, email, password string) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create inserts a new user after checking that the email is free. The
// check and the insert are separate round trips; the unique constraint
// in the repository backstops the race between them.
func (s *UserService) Create(ctx context.Context, email, username, password string) (types.User, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return types.User{}, store.ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}
	return s.repo.Create(ctx, email, username, password)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]types.User, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, email, username *string) (types.User, error) {
	return s.repo.Update(ctx, id, email, username)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	return nil
}
