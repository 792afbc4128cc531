package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/servushq/servus-raffle/internal/config"
	"github.com/servushq/servus-raffle/internal/domain"
	"github.com/servushq/servus-raffle/internal/service"
)

type fakeAuthService struct {
	users map[string]domain.User
}

func (f *fakeAuthService) Signup(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return domain.User{}, service.ErrUserEmailExists
	}

	user.ID = uint(len(f.users) + 1)
	f.users[user.Email] = user

	return user, nil
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}
	if user.Password != password {
		return domain.User{}, service.ErrWrongPassword
	}

	return user, nil
}

func newAuthTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	conf := &config.APIConfig{
		JWTSigningKey: "test-signing-key",
		AdminEmails:   "admin@servus.dev",
	}
	handler := NewAuthHandler(conf, svc)

	router := gin.New()
	router.POST("/auth/signup", handler.HandleSignup)
	router.POST("/auth/login", handler.HandleLogin)

	return router
}

func TestHandleSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		existing   map[string]domain.User
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid signup",
			body:       `{"email":"alice@example.com","password":"password1","confirm_password":"password1","name":"Alice"}`,
			existing:   map[string]domain.User{},
			wantStatus: http.StatusCreated,
			wantBody:   `"email":"alice@example.com"`,
		},
		{
			name:       "allowlisted email is flagged admin",
			body:       `{"email":"admin@servus.dev","password":"password1","confirm_password":"password1","name":"Admin"}`,
			existing:   map[string]domain.User{},
			wantStatus: http.StatusCreated,
			wantBody:   `"is_admin":true`,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			existing:   map[string]domain.User{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"bad_request"`,
		},
		{
			name:       "weak password",
			body:       `{"email":"alice@example.com","password":"short","confirm_password":"short","name":"Alice"}`,
			existing:   map[string]domain.User{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"bad_request"`,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"alice@example.com","password":"password1","confirm_password":"password1","name":"Alice"}`,
			existing:   map[string]domain.User{"alice@example.com": {ID: 1, Email: "alice@example.com"}},
			wantStatus: http.StatusConflict,
			wantBody:   `"code":"conflict"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&fakeAuthService{users: tt.existing})

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleLogin(t *testing.T) {
	existing := map[string]domain.User{
		"alice@example.com": {ID: 1, Email: "alice@example.com", Password: "password1", Name: "Alice"},
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid login",
			body:       `{"email":"alice@example.com","password":"password1"}`,
			wantStatus: http.StatusOK,
			wantBody:   `"token":`,
		},
		{
			name:       "wrong password",
			body:       `{"email":"alice@example.com","password":"password2"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"wrong_credentials"`,
		},
		{
			name:       "unknown email",
			body:       `{"email":"nobody@example.com","password":"password1"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"code":"wrong_credentials"`,
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"bad_request"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&fakeAuthService{users: existing})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
