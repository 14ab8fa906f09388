package api

import (
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/service"
	"alcyxob/fitness-admin/internal/storage"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "bearer header", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "malformed header wins over cookie", header: "Token abc", cookie: "xyz", want: ""},
		{name: "cookie", cookie: "xyz", want: "xyz"},
		{name: "nothing", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			assert.Equal(t, tc.want, tokenFromRequest(c))
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("update x: %w", repository.ErrInvalidField):   http.StatusBadRequest,
		fmt.Errorf("get x: %w", repository.ErrNotFound):          http.StatusNotFound,
		fmt.Errorf("list x: %w", repository.ErrStoreUnavailable): http.StatusServiceUnavailable,
		service.ErrNotAdmin:                                    http.StatusForbidden,
		service.ErrAuthenticationFailed:                        http.StatusUnauthorized,
		service.ErrUnsupportedMedia:                            http.StatusUnsupportedMediaType,
		fmt.Errorf("delete: %w", storage.ErrDeleteUnsupported): http.StatusNotImplemented,
		errors.New("boom"):                                     http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestGuard_CookieSessionRedirectsBrowser(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/main-categories", w.Header().Get("Location"))
}
