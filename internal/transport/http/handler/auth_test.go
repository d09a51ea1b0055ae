package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lawlink-api/internal/application/auth"
	"github.com/lawlink-api/internal/application/registration"
	"github.com/lawlink-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockRegService struct{ mock.Mock }

func (m *mockRegService) InitiateLawyer(ctx context.Context, req domain.RegisterLawyerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockRegService) InitiateClient(ctx context.Context, req domain.RegisterClientRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *mockRegService) Finalize(ctx context.Context, ticketID, code string, pic *registration.ProfileUpload) (*domain.Account, error) {
	args := m.Called(ctx, ticketID, code, pic)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRegService) RegisterAdmin(ctx context.Context, req domain.RegisterAdminRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthService) RequestReset(ctx context.Context, req auth.ResetRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockAuthService) ConfirmReset(ctx context.Context, req auth.ConfirmResetRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- helpers ---

func newRouterWith(h *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/register/{role}/initiate", h.RegisterInitiate)
	r.Post("/auth/register/{role}/finalize", h.RegisterFinalize)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/reset/request", h.ResetRequest)
	r.Post("/auth/reset/confirm", h.ResetConfirm)
	return r
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// --- tests ---

func TestRegisterInitiate_UnknownRole(t *testing.T) {
	h := NewAuthHandler(&mockRegService{}, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/register/judge/initiate", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterInitiate_UnknownJSONFieldRejected(t *testing.T) {
	h := NewAuthHandler(&mockRegService{}, &mockAuthService{})

	body := `{"first_name":"Sara","last_name":"Haddad","email":"sara@example.com","password":"password123","is_admin":true}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/initiate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterInitiate_ConflictMapsTo409(t *testing.T) {
	reg := &mockRegService{}
	reg.On("InitiateClient", mock.Anything, mock.Anything).Return("", domain.ErrConflict)
	h := NewAuthHandler(reg, &mockAuthService{})

	body := `{"first_name":"Sara","last_name":"Haddad","email":"sara@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/initiate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegisterInitiate_ReturnsTicket(t *testing.T) {
	reg := &mockRegService{}
	reg.On("InitiateClient", mock.Anything, mock.Anything).Return("ticket-1", nil)
	h := NewAuthHandler(reg, &mockAuthService{})

	body := `{"first_name":"Sara","last_name":"Haddad","email":"sara@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/initiate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env TicketEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "ticket-1", env.TicketID)
}

func TestRegisterFinalize_MissingFields(t *testing.T) {
	h := NewAuthHandler(&mockRegService{}, &mockAuthService{})

	buf, contentType := multipartBody(t, map[string]string{"ticket_id": "t1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/finalize", buf)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterFinalize_ExpiredMapsTo410(t *testing.T) {
	reg := &mockRegService{}
	reg.On("Finalize", mock.Anything, "t1", "123456", mock.Anything).Return(nil, domain.ErrExpired)
	h := NewAuthHandler(reg, &mockAuthService{})

	buf, contentType := multipartBody(t, map[string]string{"ticket_id": "t1", "otp": "123456"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/finalize", buf)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusGone, rr.Code)
}

func TestRegisterFinalize_CreatedAccountOmitsPasswordHash(t *testing.T) {
	reg := &mockRegService{}
	reg.On("Finalize", mock.Anything, "t1", "123456", mock.Anything).Return(&domain.Account{
		AccountID:    "01ABC",
		Email:        "sara@example.com",
		PasswordHash: "$2a$10$secret",
		AccountType:  domain.RoleClient,
	}, nil)
	h := NewAuthHandler(reg, &mockAuthService{})

	buf, contentType := multipartBody(t, map[string]string{"ticket_id": "t1", "otp": "123456"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/finalize", buf)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret")
	assert.Contains(t, rr.Body.String(), "sara@example.com")
}

func TestRegisterFinalize_UpstreamDetailStaysOutOfResponse(t *testing.T) {
	reg := &mockRegService{}
	reg.On("Finalize", mock.Anything, "t1", "123456", mock.Anything).
		Return(nil, fmt.Errorf("s3 put object: dial tcp 10.0.0.5:443: %w", domain.ErrUpstream))
	h := NewAuthHandler(reg, &mockAuthService{})

	buf, contentType := multipartBody(t, map[string]string{"ticket_id": "t1", "otp": "123456"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register/client/finalize", buf)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Contains(t, rr.Body.String(), "internal error")
}

func TestLogin_UnauthorizedMapsTo401(t *testing.T) {
	authSvc := &mockAuthService{}
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(&mockRegService{}, authSvc)

	body := `{"email":"amr@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestResetRequest_NotFoundMapsTo404(t *testing.T) {
	authSvc := &mockAuthService{}
	authSvc.On("RequestReset", mock.Anything, mock.Anything).Return(domain.ErrNotFound)
	h := NewAuthHandler(&mockRegService{}, authSvc)

	body := `{"email":"ghost@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/reset/request", strings.NewReader(body))
	rr := httptest.NewRecorder()
	newRouterWith(h).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
