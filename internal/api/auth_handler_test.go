package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/service"
	"github.com/pitaka-app/pitaka-api/internal/service/auth"
)

type stubUserService struct {
	service.UserService
	loginResult *service.LoginResult
	loginErr    error
	loginCalls  int
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

type stubTokenService struct {
	auth.JWTService
	token string
}

func (s *stubTokenService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	return s.token, nil
}

func postLogin(t *testing.T, handler *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	handler.Login(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns the user and token", func(t *testing.T) {
		t.Parallel()

		users := &stubUserService{loginResult: &service.LoginResult{
			User:  &domain.User{ID: 7, Email: "juan@example.com"},
			Token: "signed-token",
		}}
		handler := NewAuthHandler(users, &stubTokenService{}, slog.Default())

		rec := postLogin(t, handler, `{"email":"juan@example.com","password":"secret"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, int64(7), body.UserID)
		assert.Equal(t, "signed-token", body.Token)
	})

	t.Run("rejects a malformed email before the service runs", func(t *testing.T) {
		t.Parallel()

		users := &stubUserService{}
		handler := NewAuthHandler(users, &stubTokenService{}, slog.Default())

		rec := postLogin(t, handler, `{"email":"not-an-email","password":"secret"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid Email")
		assert.Zero(t, users.loginCalls)
	})

	t.Run("rejects a missing password before the service runs", func(t *testing.T) {
		t.Parallel()

		users := &stubUserService{}
		handler := NewAuthHandler(users, &stubTokenService{}, slog.Default())

		rec := postLogin(t, handler, `{"email":"juan@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, users.loginCalls)
	})

	t.Run("maps bad credentials to 401", func(t *testing.T) {
		t.Parallel()

		users := &stubUserService{loginErr: service.ErrInvalidCredentials}
		handler := NewAuthHandler(users, &stubTokenService{}, slog.Default())

		rec := postLogin(t, handler, `{"email":"juan@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
