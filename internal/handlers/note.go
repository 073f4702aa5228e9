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

// NoteHandler serves the /note routes.
type NoteHandler struct {
	noteService *services.NoteService
	log         *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService, log *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		log:         log,
	}
}

// ListNotes returns every note
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.noteService.ListNotes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// GetNote returns one note by id
func (h *NoteHandler) GetNote(c *gin.Context) {
	id, ok := parseIDParam(c, "note_id")
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// GetNoteBySlug returns one note by slug
func (h *NoteHandler) GetNoteBySlug(c *gin.Context) {
	note, err := h.noteService.GetNoteBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// CreateNote adds a note for the user given by ?user_id=
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID, ok := parseIDQuery(c, "user_id")
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), userID, services.NoteInput{
		Title:    req.Title,
		Content:  *req.Content,
		Priority: req.PriorityOrDefault(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TransactionResponse{
		StatusCode:  http.StatusCreated,
		Transaction: "Successful",
		Data:        dto.ToNoteDTO(*note),
	})
}

// UpdateNote replaces a note's title, content and priority
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := parseIDParam(c, "note_id")
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), id, services.NoteInput{
		Title:    req.Title,
		Content:  *req.Content,
		Priority: req.PriorityOrDefault(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: "Note update is successful!",
		Data:        dto.ToNoteDTO(*note),
	})
}

// DeleteNote removes the note given by ?note_id=
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := parseIDQuery(c, "note_id")
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
		StatusCode:  http.StatusOK,
		Transaction: "Note was successfully deleted",
	})
}

func (h *NoteHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, "Note was not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User was not found")
	case errors.Is(err, services.ErrInvalidSlugSource):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSlugConflict):
		apierrors.Conflict(c, "A note with this title already exists")
	default:
		_ = c.Error(err)
		h.log.Error("note request failed", "error", err, "path", c.FullPath())
		apierrors.InternalError(c, "")
	}
}
