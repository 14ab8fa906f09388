package api

import (
	"alcyxob/fitness-admin/internal/auth"
	"alcyxob/fitness-admin/internal/media"
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/service"
	"alcyxob/fitness-admin/internal/storage"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusFor maps service, store and auth errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrInvalidField),
		errors.Is(err, service.ErrEmptyImageReference),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, storage.ErrEmptyUpload),
		errors.Is(err, media.ErrNoFrames):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrRegistrationClosed):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrAdminAlreadyExists),
		errors.Is(err, auth.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrImageLoad),
		errors.Is(err, media.ErrNoCandidate),
		errors.Is(err, storage.ErrUploadFailed),
		errors.Is(err, storage.ErrDeleteFailed):
		return http.StatusBadGateway
	case errors.Is(err, storage.ErrDeleteUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, repository.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError aborts with the mapped status. Internal errors are logged and
// replaced with a generic message.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, "An unexpected error occurred")
		return
	}
	abortWithError(c, code, err.Error())
}
