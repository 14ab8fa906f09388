package api

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkoutSessionHandler holds the status transition of workout sessions.
type WorkoutSessionHandler struct {
	sessions *repository.WorkoutSessionRepository
}

func NewWorkoutSessionHandler(sessions *repository.WorkoutSessionRepository) *WorkoutSessionHandler {
	return &WorkoutSessionHandler{sessions: sessions}
}

type sessionStatusRequest struct {
	Status domain.SessionStatus `json:"status" binding:"required"`
}

func (h *WorkoutSessionHandler) UpdateStatus(c *gin.Context) {
	var req sessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.sessions.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
