package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/yukikurage/note-manager-api/internal/handlers"
	"github.com/yukikurage/note-manager-api/internal/middleware"
	"github.com/yukikurage/note-manager-api/internal/repository"
	"github.com/yukikurage/note-manager-api/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(db *gorm.DB, log *slog.Logger) (*gin.Engine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	userService := services.NewUserService(userRepo)
	noteService := services.NewNoteService(noteRepo, userRepo)

	// Initialize handlers
	systemHandler := handlers.NewSystemHandler(sqlDB)
	userHandler := handlers.NewUserHandler(userService, noteService, log)
	noteHandler := handlers.NewNoteHandler(noteService, log)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(log), middleware.Recovery(log))

	r.GET("/", systemHandler.Welcome)
	r.GET("/health", systemHandler.Health)

	notes := r.Group("/note")
	{
		notes.GET("/", noteHandler.ListNotes)
		notes.GET("/note/:note_id", noteHandler.GetNote)
		notes.GET("/slug/:slug", noteHandler.GetNoteBySlug)
		notes.POST("/create", noteHandler.CreateNote)
		notes.PUT("/update/:note_id", noteHandler.UpdateNote)
		notes.DELETE("/delete", noteHandler.DeleteNote)
	}

	users := r.Group("/user")
	{
		users.GET("/", userHandler.ListUsers)
		users.GET("/user/:user_id", userHandler.GetUser)
		users.GET("/slug/:slug", userHandler.GetUserBySlug)
		users.GET("/:user_id/notes", userHandler.ListUserNotes)
		users.POST("/create", userHandler.CreateUser)
		users.PUT("/update/:user_id", userHandler.UpdateUser)
		users.DELETE("/delete", userHandler.DeleteUser)
	}

	return r, nil
}

// WithCORS wraps the engine with the configured cross-origin policy.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Origin", "X-Requested-With", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}).Handler(h)
}
