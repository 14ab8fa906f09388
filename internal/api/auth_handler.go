package api

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService   service.AuthService
	sessionMaxAge time.Duration
}

// NewAuthHandler creates a new AuthHandler. sessionMaxAge bounds the session cookie.
func NewAuthHandler(authService service.AuthService, sessionMaxAge time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionMaxAge: sessionMaxAge}
}

// --- Request/Response Structs ---

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterUserRequest struct {
	CredentialsRequest
	Role domain.Role `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Handler Methods ---

// SignUp godoc
// @Summary Self-service registration of a plain user
// @Tags Auth
// @Router /auth/register [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	respondRegistration(c, result)
}

// SetupAdmin registers the first admin account.
func (h *AuthHandler) SetupAdmin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result := h.authService.SetupAdmin(c.Request.Context(), req.Email, req.Password)
	respondRegistration(c, result)
}

// RegisterUser is the admin-side account creation with an explicit role.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	result := h.authService.RegisterUser(c.Request.Context(), req.Email, req.Password, req.Role)
	respondRegistration(c, result)
}

// Login godoc
// @Summary Log in an admin
// @Description Authenticates an admin and returns a JWT token. The token is
// also set as the session cookie.
// @Tags Auth
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, result.Token, int(h.sessionMaxAge.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, User: result.User})
}

// Logout revokes the request's token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := tokenFromContext(c); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the role document of the signed-in admin.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	user, err := h.authService.CurrentUser(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		abortWithError(c, http.StatusNotFound, "User record not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// respondRegistration maps a RegistrationResult to a status code.
func respondRegistration(c *gin.Context, result service.RegistrationResult) {
	if result.Success {
		c.JSON(http.StatusCreated, result)
		return
	}
	code := http.StatusBadRequest
	switch result.Error {
	case service.ErrUserAlreadyExists.Error(), service.ErrAdminAlreadyExists.Error():
		code = http.StatusConflict
	case service.ErrRegistrationClosed.Error():
		code = http.StatusForbidden
	}
	c.AbortWithStatusJSON(code, result)
}
