package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/backend/internal/models"
)

// writeError maps a core error to its HTTP response. Each recoverable kind
// keeps its own status and kind tag; only unexpected failures collapse into
// a 500. ConflictError is the one kind clients may retry as-is.
func (h *Handler) writeError(c *gin.Context, err error) {
	type mapping struct {
		status int
		kind   string
	}
	for target, m := range map[error]mapping{
		models.ErrValidation:        {http.StatusBadRequest, "validation"},
		models.ErrNotFound:          {http.StatusNotFound, "not_found"},
		models.ErrForbidden:         {http.StatusForbidden, "forbidden"},
		models.ErrInvalidTransition: {http.StatusUnprocessableEntity, "invalid_transition"},
		models.ErrInvalidState:      {http.StatusUnprocessableEntity, "invalid_state"},
		models.ErrConflict:          {http.StatusConflict, "conflict"},
	} {
		if errors.Is(err, target) {
			c.JSON(m.status, gin.H{"error": err.Error(), "kind": m.kind})
			return
		}
	}

	h.Log.Error("unexpected failure", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "internal"})
}
