package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/note-manager-api/internal/models"
	"github.com/yukikurage/note-manager-api/internal/repository"
	"github.com/yukikurage/note-manager-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

// NoteService implements the note operations on top of the store.
type NoteService struct {
	noteRepo repository.NoteRepository
	userRepo repository.UserRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository, userRepo repository.UserRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		userRepo: userRepo,
	}
}

// NoteInput carries the editable fields of a note.
type NoteInput struct {
	Title    string
	Content  string
	Priority int
}

// CreateNote stores a note for an existing user. The slug is the plain
// slugified title; a clash with another note is reported, not resolved.
func (s *NoteService) CreateNote(ctx context.Context, userID uint64, input NoteInput) (*models.Note, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	slug := utils.Slugify(input.Title)
	if slug == "" {
		return nil, ErrInvalidSlugSource
	}

	note := &models.Note{
		Title:     input.Title,
		Content:   input.Content,
		Priority:  input.Priority,
		Completed: false,
		Slug:      slug,
		UserID:    userID,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, translateWriteError(err, "failed to create note")
	}
	return note, nil
}

// ListNotes returns all notes.
func (s *NoteService) ListNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// ListNotesByUser returns a user's notes; an unknown user yields an empty list.
func (s *NoteService) ListNotesByUser(ctx context.Context, userID uint64) ([]models.Note, error) {
	notes, err := s.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for user %d: %w", userID, err)
	}
	return notes, nil
}

// GetNote retrieves a note by ID.
func (s *NoteService) GetNote(ctx context.Context, id uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// GetNoteBySlug retrieves a note by slug.
func (s *NoteService) GetNoteBySlug(ctx context.Context, slug string) (*models.Note, error) {
	note, err := s.noteRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// UpdateNote replaces a note's title, content and priority and re-derives its slug.
func (s *NoteService) UpdateNote(ctx context.Context, id uint64, input NoteInput) (*models.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := utils.Slugify(input.Title)
	if slug == "" {
		return nil, ErrInvalidSlugSource
	}

	note.Title = input.Title
	note.Content = input.Content
	note.Priority = input.Priority
	note.Slug = slug

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, translateWriteError(err, "failed to update note")
	}
	return note, nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, id uint64) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func translateWriteError(err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrSlugConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// The owner vanished between the lookup and the insert.
		return ErrUserNotFound
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
