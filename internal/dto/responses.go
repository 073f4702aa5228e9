package dto

import (
	"github.com/yukikurage/note-manager-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       int    `json:"age"`
	Slug      string `json:"slug"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
	Slug      string `json:"slug"`
	UserID    uint64 `json:"user_id"`
}

// TransactionResponse acknowledges a write. Data carries the written entity
// for create and update.
type TransactionResponse struct {
	StatusCode  int         `json:"status_code"`
	Transaction string      `json:"transaction"`
	Data        interface{} `json:"data,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Age:       user.Age,
		Slug:      user.Slug,
	}
}

// ToUserDTOs converts a slice of users, never returning nil
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Priority:  note.Priority,
		Completed: note.Completed,
		Slug:      note.Slug,
		UserID:    note.UserID,
	}
}

// ToNoteDTOs converts a slice of notes, never returning nil
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	out := make([]NoteDTO, len(notes))
	for i, note := range notes {
		out[i] = ToNoteDTO(note)
	}
	return out
}
