package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/note-manager-api/internal/models"
	"github.com/yukikurage/note-manager-api/internal/repository"
	"github.com/yukikurage/note-manager-api/internal/utils"
	"gorm.io/gorm"
)

// MaxCreateUserRetries bounds how often CreateUser re-derives the slug after
// losing an insert race to a concurrent request.
const MaxCreateUserRetries = 3

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrUsernameRequired  = errors.New("username is required")
	ErrInvalidSlugSource = errors.New("text must contain at least one letter or digit")
	ErrSlugConflict      = errors.New("slug violates a uniqueness constraint")
)

// UserService implements the user operations on top of the store.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents parameters to create a new user.
type CreateUserInput struct {
	Username  string
	Firstname string
	Lastname  string
	Age       int
}

// UpdateUserInput represents the editable profile fields of a user.
type UpdateUserInput struct {
	Firstname string
	Lastname  string
	Age       int
}

// CreateUser inserts a user with a slug made unique against existing users.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	base := utils.Slugify(username)
	if base == "" {
		return nil, ErrInvalidSlugSource
	}

	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		slug, err := utils.UniqueSlug(ctx, base, s.userRepo.ExistsBySlug)
		if err != nil {
			if errors.Is(err, utils.ErrSlugExhausted) {
				return nil, fmt.Errorf("%w: %v", ErrSlugConflict, err)
			}
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}

		user := &models.User{
			Username:  username,
			Firstname: input.Firstname,
			Lastname:  input.Lastname,
			Age:       input.Age,
			Slug:      slug,
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// A concurrent request won either the username or the slug.
		if err := s.ensureUsernameFree(ctx, username); err != nil {
			return nil, err
		}
		if attempt >= MaxCreateUserRetries {
			return nil, fmt.Errorf("%w: %v", ErrSlugConflict, err)
		}
	}
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUserBySlug retrieves a user by slug.
func (s *UserService) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	user, err := s.userRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser changes a user's profile. The slug is derived from the username,
// which cannot change, so it is kept as is.
func (s *UserService) UpdateUser(ctx context.Context, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Firstname = input.Firstname
	user.Lastname = input.Lastname
	user.Age = input.Age

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user together with every note it owns.
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.DeleteWithNotes(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
