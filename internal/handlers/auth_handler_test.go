package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
)

type recordingRevoker struct {
	ids []string
}

func (r *recordingRevoker) Revoke(_ context.Context, id string, _ time.Time) error {
	r.ids = append(r.ids, id)
	return nil
}

func newAuthRouter(t *testing.T, cfg *config.Config, revoker Revoker) (*gin.Engine, *AuthHandler, *repository.AuditMemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auditStore := repository.NewAuditMemoryRepository()
	h := NewAuthHandler(
		repository.NewUserMemoryRepository(),
		auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		auth.NewVerifier(cfg.JWTSecret),
		revoker,
		audit.New(auditStore, zerolog.Nop()),
		cfg,
		zerolog.Nop(),
	)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r, h, auditStore
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           "development",
		JWTSecret:     "test-secret",
		SessionTTL:    time.Hour,
		SessionCookie: "jwt",
	}
}

func TestRegisterChecksEmailDomainWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.VerifyEmailDomain = true
	r, h, _ := newAuthRouter(t, cfg, nil)

	var checked string
	h.domainCheck = func(_ context.Context, email string) bool {
		checked = email
		return false
	}

	w := serve(r, http.MethodPost, "/register", `{"fullName":"Alice","email":"alice@nowhere.invalid","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
	assert.Equal(t, "alice@nowhere.invalid", checked)
}

func TestRegisterRecordsAuditEntry(t *testing.T) {
	r, _, auditStore := newAuthRouter(t, testConfig(), nil)

	w := serve(r, http.MethodPost, "/register", `{"fullName":"Dr. Who","email":"who@example.com","password":"secret123","role":"doctor"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"role":"doctor"`)

	logs, total, err := auditStore.ListAuditLogs(context.Background(), audit.Query{Action: "user_registered"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.JSONEq(t, `{"role":"doctor"}`, logs[0].Metadata)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r, _, _ := newAuthRouter(t, testConfig(), nil)

	w := serve(r, http.MethodPost, "/register", `{"fullName":"Alice","email":"alice@example.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	r, _, _ := newAuthRouter(t, testConfig(), nil)

	w := serve(r, http.MethodPost, "/login", `{"email":"ghost@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestLogoutWithoutRevokerClearsCookie(t *testing.T) {
	r, _, _ := newAuthRouter(t, testConfig(), nil)

	w := serve(r, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "jwt=;")
}

func TestLogoutRevokesValidToken(t *testing.T) {
	rev := &recordingRevoker{}
	r, _, _ := newAuthRouter(t, testConfig(), rev)

	w := serve(r, http.MethodPost, "/register", `{"fullName":"Alice","email":"alice@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := w.Result().Cookies()[0]
	claims, err := auth.NewVerifier("test-secret").Verify(cookie.Value)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{claims.ID}, rev.ids)
}
