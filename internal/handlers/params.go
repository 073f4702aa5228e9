package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/note-manager-api/internal/dto"
	apierrors "github.com/yukikurage/note-manager-api/internal/errors"
)

// parseIDParam reads a positive integer id from the path.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	return parseID(c, name, c.Param(name))
}

// parseIDQuery reads a positive integer id from the query string.
func parseIDQuery(c *gin.Context, name string) (uint64, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		apierrors.BadRequest(c, fmt.Sprintf("Missing query parameter %s", name))
		return 0, false
	}
	return parseID(c, name, raw)
}

func parseID(c *gin.Context, name, raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates a request body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := dto.ValidationDetails(err); details != nil {
			apierrors.BadRequestWithDetails(c, "Request validation failed", details)
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
