package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shoploft/storefront-backend/api/middleware"
	"github.com/shoploft/storefront-backend/internal/auth"
	"github.com/shoploft/storefront-backend/internal/users"
	"github.com/shoploft/storefront-backend/pkg/config"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
)

type stubAuthService struct {
	registerResp *auth.AuthResponse
	registerErr  error
	loginResp    *auth.AuthResponse
	loginErr     error
	logoutErr    error
	user         *users.UserDTO
	userErr      error

	loggedOutAccessID string
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutAccessID = accessID
	return s.logoutErr
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.userErr
}

func devApp() config.AppConfig {
	return config.AppConfig{Env: config.AppEnvDev}
}

func TestRegisterSuccess(t *testing.T) {
	svc := &stubAuthService{registerResp: &auth.AuthResponse{
		AccessToken: "token",
		User:        &users.UserDTO{ID: uuid.New(), Email: "a@b.test"},
	}}
	handler := Register(svc, devApp(), nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"supersecret","name":"Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data auth.AuthResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "token" {
		t.Fatalf("unexpected token: %q", envelope.Data.AccessToken)
	}
}

func TestRegisterDisabledInProd(t *testing.T) {
	handler := Register(&stubAuthService{}, config.AppConfig{Env: config.AppEnvProd}, nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"supersecret","name":"Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := Register(&stubAuthService{}, devApp(), nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"short","name":"Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRegisterConflict(t *testing.T) {
	svc := &stubAuthService{registerErr: pkgerrors.New(pkgerrors.CodeConflict, "email already registered")}
	handler := Register(svc, devApp(), nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"supersecret","name":"Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := &stubAuthService{loginResp: &auth.AuthResponse{AccessToken: "jwt"}}
	handler := Login(svc, nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"supersecret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := Login(svc, nil)

	body := strings.NewReader(`{"email":"a@b.test","password":"wrongwrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestLogoutPassesAccessID(t *testing.T) {
	svc := &stubAuthService{}
	handler := Logout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "access-123"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loggedOutAccessID != "access-123" {
		t.Fatalf("unexpected access id: %q", svc.loggedOutAccessID)
	}
}

func TestCurrentUserSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{user: &users.UserDTO{ID: userID, Email: "me@shop.test"}}
	handler := CurrentUser(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != userID {
		t.Fatalf("unexpected user id: %s", envelope.Data.ID)
	}
}

func TestCurrentUserMissingContext(t *testing.T) {
	handler := CurrentUser(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
