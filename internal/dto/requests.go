package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Pointer fields must be present in the body but may hold a zero value
// ("" or 0).

// CreateUserRequest is the body of POST /user/create.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,max=100"`
	Firstname *string `json:"firstname" binding:"required,max=100"`
	Lastname  *string `json:"lastname" binding:"required,max=100"`
	Age       *int    `json:"age" binding:"required,gte=0,lte=150"`
}

// UpdateUserRequest is the body of PUT /user/update/:id.
type UpdateUserRequest struct {
	Firstname *string `json:"firstname" binding:"required,max=100"`
	Lastname  *string `json:"lastname" binding:"required,max=100"`
	Age       *int    `json:"age" binding:"required,gte=0,lte=150"`
}

// NoteRequest is the body of POST /note/create and PUT /note/update/:id.
type NoteRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Content  *string `json:"content" binding:"required"`
	Priority *int    `json:"priority"`
}

// PriorityOrDefault returns the requested priority, 0 when omitted.
func (r NoteRequest) PriorityOrDefault() int {
	if r.Priority == nil {
		return 0
	}
	return *r.Priority
}

// ValidationDetails flattens binding errors into a field -> failed rule map.
// It returns nil when err is not a validation failure (e.g. malformed JSON).
func ValidationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[strings.ToLower(fe.Field())] = rule
	}
	return details
}
