package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/note-manager-api/internal/database"
	"github.com/yukikurage/note-manager-api/internal/models"
	"github.com/yukikurage/note-manager-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	userService *UserService
	noteService *NoteService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	return serviceTestEnv{
		db:          db,
		userRepo:    userRepo,
		userService: NewUserService(userRepo),
		noteService: NewNoteService(noteRepo, userRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.userService.CreateUser(context.Background(), CreateUserInput{
		Username:  username,
		Firstname: "First",
		Lastname:  "Last",
		Age:       30,
	})
	require.NoError(t, err)
	return user
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("slug is the base slug of the username", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		user := env.createUser(t, "Ada Lovelace")
		assert.Equal(t, "ada-lovelace", user.Slug)
		assert.NotZero(t, user.ID)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		env.createUser(t, "ada")

		_, err := env.userService.CreateUser(ctx, CreateUserInput{Username: "ada"})
		require.ErrorIs(t, err, ErrUsernameTaken)

		var count int64
		env.db.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("colliding slug gets a numeric suffix", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		env.createUser(t, "john")

		second := env.createUser(t, "John")
		assert.Equal(t, "john-1", second.Slug)

		third := env.createUser(t, "JOHN")
		assert.Equal(t, "john-2", third.Slug)
	})

	t.Run("username without letters or digits", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		_, err := env.userService.CreateUser(ctx, CreateUserInput{Username: "!!!"})
		require.ErrorIs(t, err, ErrInvalidSlugSource)
	})

	t.Run("blank username", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		_, err := env.userService.CreateUser(ctx, CreateUserInput{Username: "   "})
		require.ErrorIs(t, err, ErrUsernameRequired)
	})
}

// racingUserRepo simulates a concurrent request that inserts a conflicting
// row between the service's existence checks and its insert.
type racingUserRepo struct {
	repository.UserRepository
	db *gorm.DB
	// races is how many Create calls lose the race; -1 means every call.
	races int
	// sameUsername makes the intruder take the username instead of the slug.
	sameUsername bool
	creates      int
}

func (r *racingUserRepo) Create(ctx context.Context, user *models.User) error {
	r.creates++
	if r.races < 0 || r.creates <= r.races {
		intruder := &models.User{
			Username: fmt.Sprintf("intruder-%d", r.creates),
			Slug:     user.Slug,
		}
		if r.sameUsername {
			intruder.Username = user.Username
			intruder.Slug = fmt.Sprintf("intruder-%d", r.creates)
		}
		if err := r.db.Create(intruder).Error; err != nil {
			return err
		}
	}
	return r.UserRepository.Create(ctx, user)
}

func TestUserService_CreateUser_RetriesAfterLostSlugRace(t *testing.T) {
	env := setupServiceTestEnv(t)
	repo := &racingUserRepo{UserRepository: env.userRepo, db: env.db, races: 1}
	service := NewUserService(repo)

	user, err := service.CreateUser(context.Background(), CreateUserInput{Username: "grace"})
	require.NoError(t, err)
	assert.Equal(t, "grace-1", user.Slug)
	assert.Equal(t, 2, repo.creates)
}

func TestUserService_CreateUser_GivesUpAfterMaxRetries(t *testing.T) {
	env := setupServiceTestEnv(t)
	repo := &racingUserRepo{UserRepository: env.userRepo, db: env.db, races: -1}
	service := NewUserService(repo)

	_, err := service.CreateUser(context.Background(), CreateUserInput{Username: "grace"})
	require.ErrorIs(t, err, ErrSlugConflict)
	assert.Equal(t, MaxCreateUserRetries, repo.creates)

	var count int64
	env.db.Model(&models.User{}).Where("username = ?", "grace").Count(&count)
	assert.Zero(t, count)
}

func TestUserService_CreateUser_UsernameLostToConcurrentInsert(t *testing.T) {
	env := setupServiceTestEnv(t)
	repo := &racingUserRepo{UserRepository: env.userRepo, db: env.db, races: 1, sameUsername: true}
	service := NewUserService(repo)

	_, err := service.CreateUser(context.Background(), CreateUserInput{Username: "grace"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 1, repo.creates)
}

func TestUserService_CreateUser_TransliteratesUsername(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := env.createUser(t, "Иван Петров")
	assert.Equal(t, "ivan-petrov", user.Slug)

	second := env.createUser(t, "ИВАН ПЕТРОВ")
	assert.Equal(t, "ivan-petrov-1", second.Slug)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ada")

	updated, err := env.userService.UpdateUser(ctx, user.ID, UpdateUserInput{
		Firstname: "Augusta",
		Lastname:  "King",
		Age:       36,
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.Firstname)
	assert.Equal(t, "ada", updated.Slug)

	reloaded, err := env.userService.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "King", reloaded.Lastname)
	assert.Equal(t, 36, reloaded.Age)
	assert.Equal(t, "ada", reloaded.Slug)

	_, err = env.userService.UpdateUser(ctx, 999, UpdateUserInput{Firstname: "x"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteUser_CascadesNotes(t *testing.T) {
	ctx := context.Background()

	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("%d notes", n), func(t *testing.T) {
			env := setupServiceTestEnv(t)
			owner := env.createUser(t, "owner")
			other := env.createUser(t, "other")

			for i := 0; i < n; i++ {
				_, err := env.noteService.CreateNote(ctx, owner.ID, NoteInput{Title: fmt.Sprintf("note %d", i)})
				require.NoError(t, err)
			}
			kept, err := env.noteService.CreateNote(ctx, other.ID, NoteInput{Title: "keep me"})
			require.NoError(t, err)

			require.NoError(t, env.userService.DeleteUser(ctx, owner.ID))

			var noteCount, userCount int64
			env.db.Model(&models.Note{}).Where("user_id = ?", owner.ID).Count(&noteCount)
			env.db.Model(&models.User{}).Where("id = ?", owner.ID).Count(&userCount)
			assert.Zero(t, noteCount)
			assert.Zero(t, userCount)

			_, err = env.noteService.GetNote(ctx, kept.ID)
			require.NoError(t, err)
		})
	}

	t.Run("missing user", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		require.ErrorIs(t, env.userService.DeleteUser(ctx, 42), ErrUserNotFound)
	})
}

func TestUserService_GetUser_Idempotent(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ada")

	first, err := env.userService.GetUser(ctx, user.ID)
	require.NoError(t, err)
	second, err := env.userService.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	bySlug, err := env.userService.GetUserBySlug(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, user.ID, bySlug.ID)

	_, err = env.userService.GetUserBySlug(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and slug", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		user := env.createUser(t, "ada")

		note, err := env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "Hi", Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, "hi", note.Slug)
		assert.False(t, note.Completed)
		assert.Equal(t, 0, note.Priority)
		assert.Equal(t, user.ID, note.UserID)
	})

	t.Run("unknown user inserts nothing", func(t *testing.T) {
		env := setupServiceTestEnv(t)

		_, err := env.noteService.CreateNote(ctx, 77, NoteInput{Title: "Orphan"})
		require.ErrorIs(t, err, ErrUserNotFound)

		var count int64
		env.db.Model(&models.Note{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("duplicate title is a constraint violation", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		user := env.createUser(t, "ada")

		_, err := env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "Groceries"})
		require.NoError(t, err)

		_, err = env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "groceries!"})
		require.ErrorIs(t, err, ErrSlugConflict)

		var count int64
		env.db.Model(&models.Note{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("title without letters or digits", func(t *testing.T) {
		env := setupServiceTestEnv(t)
		user := env.createUser(t, "ada")

		_, err := env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "???"})
		require.ErrorIs(t, err, ErrInvalidSlugSource)
	})
}

func TestNoteService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ada")

	note, err := env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "Hi", Content: "x"})
	require.NoError(t, err)
	other, err := env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "Other"})
	require.NoError(t, err)

	updated, err := env.noteService.UpdateNote(ctx, note.ID, NoteInput{Title: "Hello There", Content: "y", Priority: 1})
	require.NoError(t, err)
	assert.Equal(t, "hello-there", updated.Slug)
	assert.Equal(t, "y", updated.Content)
	assert.Equal(t, 1, updated.Priority)

	_, err = env.noteService.UpdateNote(ctx, other.ID, NoteInput{Title: "hello there", Content: "changed", Priority: 9})
	require.ErrorIs(t, err, ErrSlugConflict)

	unchanged, err := env.noteService.GetNote(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Other", unchanged.Title)
	assert.Equal(t, "other", unchanged.Slug)
	assert.Equal(t, "", unchanged.Content)
	assert.Equal(t, 0, unchanged.Priority)

	_, err = env.noteService.UpdateNote(ctx, 999, NoteInput{Title: "x"})
	require.ErrorIs(t, err, ErrNoteNotFound)

	require.NoError(t, env.noteService.DeleteNote(ctx, note.ID))
	_, err = env.noteService.GetNote(ctx, note.ID)
	require.ErrorIs(t, err, ErrNoteNotFound)
	require.ErrorIs(t, env.noteService.DeleteNote(ctx, note.ID), ErrNoteNotFound)
}

// vanishingOwnerNoteRepo reports the foreign key failure an insert gets when
// the owner is deleted between the lookup and the insert.
type vanishingOwnerNoteRepo struct {
	repository.NoteRepository
}

func (r vanishingOwnerNoteRepo) Create(context.Context, *models.Note) error {
	return fmt.Errorf("insert note: %w", gorm.ErrForeignKeyViolated)
}

func TestNoteService_CreateNote_OwnerDeletedConcurrently(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ada")

	service := NewNoteService(vanishingOwnerNoteRepo{repository.NewNoteRepository(env.db)}, env.userRepo)
	_, err := service.CreateNote(context.Background(), user.ID, NoteInput{Title: "Hi"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestTranslateWriteError(t *testing.T) {
	boom := errors.New("disk full")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), ErrSlugConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrUserNotFound},
		{"other errors are wrapped", boom, boom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, translateWriteError(tc.in, "failed to save note"), tc.want)
		})
	}
}

func TestNoteService_CreateNote_TransliteratesTitle(t *testing.T) {
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ivan")

	note, err := env.noteService.CreateNote(context.Background(), user.ID, NoteInput{Title: "Заметка"})
	require.NoError(t, err)
	assert.Equal(t, "zametka", note.Slug)
}

func TestNoteService_ListNotesByUser(t *testing.T) {
	ctx := context.Background()
	env := setupServiceTestEnv(t)
	user := env.createUser(t, "ada")

	notes, err := env.noteService.ListNotesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "one"})
	require.NoError(t, err)
	_, err = env.noteService.CreateNote(ctx, user.ID, NoteInput{Title: "two"})
	require.NoError(t, err)

	notes, err = env.noteService.ListNotesByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "one", notes[0].Slug)

	notes, err = env.noteService.ListNotesByUser(ctx, 12345)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	all, err := env.noteService.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
