package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/lshigami/dailydose/internal/service"
)

// tokenAuth treats the token as the caller's role.
type tokenAuth struct {
	service.AuthService
}

func (tokenAuth) Authenticate(ctx context.Context, token string) (*service.Caller, error) {
	if token == "store-down" {
		return nil, apperror.Upstream("failed to load user", errors.New("connection refused"))
	}
	role := model.Role(token)
	if !role.Valid() {
		return nil, apperror.Unauthenticated("bad token")
	}
	return &service.Caller{ID: 7, Role: role}, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(Authenticate(tokenAuth{}, "dd_session", Permissions))
	ok := func(c *gin.Context) {
		caller, _ := CallerFrom(c)
		c.String(http.StatusOK, string(caller.Role))
	}
	api.POST("/auth/login", ok)
	api.GET("/auth/me", ok)
	api.GET("/questions", ok)
	api.POST("/questions", ok)
	api.DELETE("/subjects/:id", ok)
	api.GET("/daily-questions", ok)
	api.POST("/student/submit-answer", ok)
	api.GET("/unlisted", ok)
	return r
}

func TestAuthenticatePermissions(t *testing.T) {
	r := newTestEngine()
	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"public route without session", http.MethodPost, "/api/v1/auth/login", "", http.StatusOK},
		{"missing session", http.MethodGet, "/api/v1/auth/me", "", http.StatusUnauthorized},
		{"invalid session", http.MethodGet, "/api/v1/auth/me", "nope", http.StatusUnauthorized},
		{"session store failure", http.MethodGet, "/api/v1/auth/me", "store-down", http.StatusInternalServerError},
		{"any role reads me", http.MethodGet, "/api/v1/auth/me", "STUDENT", http.StatusOK},
		{"author creates question", http.MethodPost, "/api/v1/questions", "QAUTHOR", http.StatusOK},
		{"student cannot create question", http.MethodPost, "/api/v1/questions", "STUDENT", http.StatusForbidden},
		{"admin cannot create question", http.MethodPost, "/api/v1/questions", "SUPERADMIN", http.StatusForbidden},
		{"admin lists questions", http.MethodGet, "/api/v1/questions", "SUPERADMIN", http.StatusOK},
		{"student cannot list questions", http.MethodGet, "/api/v1/questions", "STUDENT", http.StatusForbidden},
		{"admin deletes subject", http.MethodDelete, "/api/v1/subjects/3", "SUPERADMIN", http.StatusOK},
		{"author cannot delete subject", http.MethodDelete, "/api/v1/subjects/3", "QAUTHOR", http.StatusForbidden},
		{"student gets daily set", http.MethodGet, "/api/v1/daily-questions", "STUDENT", http.StatusOK},
		{"author cannot get daily set", http.MethodGet, "/api/v1/daily-questions", "QAUTHOR", http.StatusForbidden},
		{"admin cannot submit answers", http.MethodPost, "/api/v1/student/submit-answer", "SUPERADMIN", http.StatusForbidden},
		{"unlisted route is denied", http.MethodGet, "/api/v1/unlisted", "SUPERADMIN", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: "dd_session", Value: tt.token})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s as %q = %d, want %d", tt.method, tt.path, tt.token, w.Code, tt.want)
			}
		})
	}
}

func TestBearerTokenFallback(t *testing.T) {
	r := newTestEngine()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer QAUTHOR")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "QAUTHOR" {
		t.Errorf("bearer request = %d %q", w.Code, w.Body.String())
	}
}

func TestEveryRuleHasRoles(t *testing.T) {
	for route, rule := range Permissions {
		if !rule.Public && len(rule.Roles) == 0 {
			t.Errorf("%s has no allowed roles", route)
		}
	}
}

func TestRequestIDEchoesClientValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("a request id should be generated when none is sent")
	}
}
