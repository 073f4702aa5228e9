package repository

import (
	"context"

	"github.com/yukikurage/note-manager-api/internal/database"
	"github.com/yukikurage/note-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create inserts a new note
func (r *GormNoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByID finds a note by ID
func (r *GormNoteRepository) FindByID(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindBySlug finds a note by slug
func (r *GormNoteRepository) FindBySlug(ctx context.Context, slug string) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).Scopes(database.BySlug(slug)).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns every note ordered by ID
func (r *GormNoteRepository) List(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	if err := r.db.WithContext(ctx).Scopes(database.OrderByID).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListByUserID returns the notes owned by a user; an unknown user simply has none
func (r *GormNoteRepository) ListByUserID(ctx context.Context, userID uint64) ([]models.Note, error) {
	notes := []models.Note{}
	if err := r.db.WithContext(ctx).
		Scopes(database.ByUserID(userID), database.OrderByID).
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update saves the note's editable columns
func (r *GormNoteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Model(note).Select("Title", "Content", "Priority", "Slug").Updates(note).Error
}

// Delete deletes a note by ID
func (r *GormNoteRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
