package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/note-manager-api/internal/dto"
	apierrors "github.com/yukikurage/note-manager-api/internal/errors"
	"github.com/yukikurage/note-manager-api/internal/services"
)

// UserHandler serves the /user routes.
type UserHandler struct {
	userService *services.UserService
	noteService *services.NoteService
	log         *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, noteService *services.NoteService, log *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		noteService: noteService,
		log:         log,
	}
}

// ListUsers returns every user
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns one user by id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserBySlug returns one user by slug
func (h *UserHandler) GetUserBySlug(c *gin.Context) {
	user, err := h.userService.GetUserBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUserNotes returns the notes owned by a user, empty for unknown users
func (h *UserHandler) ListUserNotes(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotesByUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username:  req.Username,
		Firstname: *req.Firstname,
		Lastname:  *req.Lastname,
		Age:       *req.Age,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TransactionResponse{
		StatusCode:  http.StatusCreated,
		Transaction: "Successful",
		Data:        dto.ToUserDTO(*user),
	})
}

// UpdateUser replaces a user's profile fields
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Firstname: *req.Firstname,
		Lastname:  *req.Lastname,
		Age:       *req.Age,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: "User update is successful!",
		Data:        dto.ToUserDTO(*user),
	})
}

// DeleteUser removes a user and its notes
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDQuery(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: "User and associated notes were successfully deleted",
	})
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User was not found")
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.AlreadyExists(c, "User with this username already exists")
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrInvalidSlugSource):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSlugConflict):
		apierrors.Conflict(c, "User slug is already in use")
	default:
		_ = c.Error(err)
		h.log.Error("user request failed", "error", err, "path", c.FullPath())
		apierrors.InternalError(c, "")
	}
}
