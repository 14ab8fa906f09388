package api

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the admin settings singleton.
type SettingsHandler struct {
	settings *repository.AdminSettingsRepository
}

func NewSettingsHandler(settings *repository.AdminSettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type adminEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type appVersionRequest struct {
	Version string `json:"version" binding:"required"`
}

// Get returns the settings, creating the defaults on first read.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Put replaces the whole settings document.
func (h *SettingsHandler) Put(c *gin.Context) {
	var settings domain.AdminSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	// Get first so the singleton exists before it is overwritten.
	if _, err := h.settings.Get(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	if err := h.settings.Save(c.Request.Context(), &settings); err != nil {
		respondError(c, err)
		return
	}
	h.Get(c)
}

func (h *SettingsHandler) AddAdminEmail(c *gin.Context) {
	var req adminEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.respond(c)(h.settings.AddAdminEmail(c.Request.Context(), req.Email))
}

func (h *SettingsHandler) RemoveAdminEmail(c *gin.Context) {
	var req adminEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.respond(c)(h.settings.RemoveAdminEmail(c.Request.Context(), req.Email))
}

func (h *SettingsHandler) UpdateAppVersion(c *gin.Context) {
	var req appVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.respond(c)(h.settings.UpdateAppVersion(c.Request.Context(), req.Version))
}

// UpdateFeatures shallow-merges the posted keys into featureModeSetting.
func (h *SettingsHandler) UpdateFeatures(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.respond(c)(h.settings.UpdateFeatureSettings(c.Request.Context(), patch))
}

// UpdateNotifications shallow-merges the posted keys into notifications.
func (h *SettingsHandler) UpdateNotifications(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.respond(c)(h.settings.UpdateNotificationSettings(c.Request.Context(), patch))
}

func (h *SettingsHandler) respond(c *gin.Context) func(*domain.AdminSettings, error) {
	return func(settings *domain.AdminSettings, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
