package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/note-manager-api/internal/models"
	"gorm.io/gorm"
)

// requiredIndexes lists the indexes the repositories rely on for lookups and
// uniqueness. AutoMigrate creates them from the model tags; Migrate checks
// they are really there since a pre-existing table is not always altered.
var requiredIndexes = []struct {
	model any
	name  string
}{
	{&models.User{}, "idx_users_username"},
	{&models.User{}, "idx_users_slug"},
	{&models.Note{}, "idx_notes_slug"},
	{&models.Note{}, "idx_notes_user_id"},
}

// Migrate creates or updates the users/notes tables and their indexes.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running schema bootstrap")
	if err := db.AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := EnsureIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("schema bootstrap completed")
	return nil
}

// EnsureIndexes creates any declared index missing from the live schema.
func EnsureIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()
	for _, idx := range requiredIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("created index", "index", idx.name)
	}
	return nil
}
