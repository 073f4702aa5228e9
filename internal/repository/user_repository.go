package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/note-manager-api/internal/database"
	"github.com/yukikurage/note-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrDeleteNotes is returned when removing a user's notes fails inside the delete transaction.
	ErrDeleteNotes = errors.New("user repository: delete notes failed")
	// ErrDeleteUser is returned when removing the user row fails inside the delete transaction.
	ErrDeleteUser = errors.New("user repository: delete user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindBySlug finds a user by slug
func (r *GormUserRepository) FindBySlug(ctx context.Context, slug string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Scopes(database.BySlug(slug)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsBySlug reports whether any user carries the slug
func (r *GormUserRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(database.BySlug(slug)).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns every user ordered by ID
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Scopes(database.OrderByID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves the user's profile columns. Username and slug are never written.
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(user).Select("Firstname", "Lastname", "Age").Updates(user).Error
}

// DeleteWithNotes deletes the user's notes and then the user, so the foreign
// key from notes.user_id is never left dangling.
func (r *GormUserRepository) DeleteWithNotes(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(database.ByUserID(id)).Delete(&models.Note{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrDeleteNotes, err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrDeleteUser, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
