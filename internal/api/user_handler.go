package api

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the role endpoint; the rest of the user routes are
// served by a CrudHandler.
type UserHandler struct {
	users *repository.UserRepository
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type setRoleRequest struct {
	Role domain.Role `json:"role" binding:"required,oneof=user admin"`
}

// SetRole promotes or demotes a user.
func (h *UserHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.users.SetRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "role": req.Role})
}
