package repository

import (
	"context"

	"github.com/yukikurage/note-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindBySlug finds a user by slug
	FindBySlug(ctx context.Context, slug string) (*models.User, error)

	// ExistsBySlug reports whether any user carries the slug
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns every user ordered by ID
	List(ctx context.Context) ([]models.User, error)

	// Update saves the user's profile columns
	Update(ctx context.Context, user *models.User) error

	// DeleteWithNotes deletes the user's notes and then the user in one transaction
	DeleteWithNotes(ctx context.Context, id uint64) error
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create inserts a new note
	Create(ctx context.Context, note *models.Note) error

	// FindByID finds a note by ID
	FindByID(ctx context.Context, id uint64) (*models.Note, error)

	// FindBySlug finds a note by slug
	FindBySlug(ctx context.Context, slug string) (*models.Note, error)

	// List returns every note ordered by ID
	List(ctx context.Context) ([]models.Note, error)

	// ListByUserID returns the notes owned by a user
	ListByUserID(ctx context.Context, userID uint64) ([]models.Note, error)

	// Update saves the note's mutable columns
	Update(ctx context.Context, note *models.Note) error

	// Delete deletes a note by ID
	Delete(ctx context.Context, id uint64) error
}
