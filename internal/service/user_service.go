package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/cache"
	"newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

// UserUpdate carries the profile fields to change; nil fields are kept.
type UserUpdate struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *model.Role
}

// UserService exposes user account operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uint) (*model.User, error)
	ListReviews(ctx context.Context, id uint) ([]model.Review, error)
	Update(ctx context.Context, actor model.Actor, id uint, in UserUpdate) (*model.User, error)
	Delete(ctx context.Context, actor model.Actor, id uint) error
}

type userService struct {
	repo    repository.UserRepository
	reviews repository.ReviewRepository
	cache   cache.Store
}

// NewUserService builds a UserService. Article lists embed their authors,
// so profile edits and deletions drop the cached lists.
func NewUserService(repo repository.UserRepository, reviews repository.ReviewRepository, cache cache.Store) UserService {
	return &userService{repo: repo, reviews: reviews, cache: cache}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) ListReviews(ctx context.Context, id uint) ([]model.Review, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reviews.ListByUser(ctx, id)
}

// Update edits a profile. Users edit themselves; admins edit anyone and
// are the only ones allowed to change roles.
func (s *userService) Update(ctx context.Context, actor model.Actor, id uint, in UserUpdate) (*model.User, error) {
	user, found, err := lookup(s.repo.FindByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMutation("user", found, id, actor); err != nil {
		return nil, err
	}

	if in.Role != nil && *in.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, errors.Forbidden("only admins can change roles")
		}
		user.Role = *in.Role
	}
	if in.Username != nil && *in.Username != user.Username {
		other, taken, err := lookup(s.repo.FindByUsername(ctx, *in.Username))
		if err != nil {
			return nil, err
		}
		if taken && other.ID != user.ID {
			return nil, errors.Conflict("username is already taken")
		}
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if err := model.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	invalidateAllArticles(ctx, s.cache)
	return user, nil
}

// Delete removes a user and everything they authored.
func (s *userService) Delete(ctx context.Context, actor model.Actor, id uint) error {
	_, found, err := lookup(s.repo.FindByID(ctx, id))
	if err != nil {
		return err
	}
	if err := AuthorizeUserDeletion(found, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateAllArticles(ctx, s.cache)
	return nil
}
