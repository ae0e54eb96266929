package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

var errInvalidCredentials = httperr.ErrAuth("invalid_credentials", "Invalid email or password.")

// Revoker blocks a token id until the token would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type AuthHandler struct {
	users    user.Repository
	issuer   *auth.Issuer
	verifier *auth.Verifier
	revoker  Revoker
	audit    *audit.Logger
	config   *config.Config
	log      zerolog.Logger

	// domainCheck is validators.IsEmailDomainValid unless replaced in tests.
	domainCheck func(ctx context.Context, email string) bool
}

// NewAuthHandler builds the handler. revoker may be nil, in which case
// logout only clears the cookie.
func NewAuthHandler(
	users user.Repository,
	issuer *auth.Issuer,
	verifier *auth.Verifier,
	revoker Revoker,
	auditLog *audit.Logger,
	cfg *config.Config,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:       users,
		issuer:      issuer,
		verifier:    verifier,
		revoker:     revoker,
		audit:       auditLog,
		config:      cfg,
		log:         log,
		domainCheck: validators.IsEmailDomainValid,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Full name, email and a password of at least 6 characters are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if ok, reason := validators.ValidateEmail(email); !ok {
		httperr.Respond(c, httperr.ErrInput("email", reason), http.StatusBadRequest)
		return
	}

	if h.config.VerifyEmailDomain && !h.domainCheck(c.Request.Context(), email) {
		httperr.Respond(c, httperr.ErrInput("email", "The email domain does not appear to be valid."), http.StatusBadRequest)
		return
	}

	role := identity.RolePatient
	if req.Role != "" {
		parsed, ok := identity.ParseRole(req.Role)
		if !ok || parsed == identity.RoleAdmin {
			httperr.Respond(c, httperr.ErrInput("role", "Role must be patient or doctor."), http.StatusBadRequest)
			return
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("hash password")
		httperr.Internal(c, "internal_error", "Internal server error")
		return
	}

	u := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
	}

	if err := h.users.CreateUser(c.Request.Context(), u); err != nil {
		if httperr.KindOf(err) == httperr.KindStore {
			h.log.Error().Err(err).Msg("create user")
		}
		httperr.Respond(c, err, http.StatusInternalServerError)
		return
	}

	h.audit.Record(c.Request.Context(), audit.Event{
		ActorID:  u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	h.startSession(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.users.FindUserByEmail(c.Request.Context(), email)
	if errors.Is(err, user.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, req.Password)) {
		httperr.Respond(c, errInvalidCredentials, http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("find user for login")
		httperr.Respond(c, err, http.StatusInternalServerError)
		return
	}

	h.startSession(c, http.StatusOK, u)
}

// Logout revokes the presented token when it is still valid and always
// clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := middleware.TokenFromRequest(c, h.config.SessionCookie)

	if raw != "" && h.revoker != nil {
		if claims, err := h.verifier.Verify(raw); err == nil {
			if err := h.revoker.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("revoke session")
				httperr.Internal(c, "logout_failed", "Could not end the session.")
				return
			}
		}
	}

	h.setCookie(c, "", -1)
	httpresp.Message(c, "Logged out successfully.")
}

// --------- Helpers ---------

func (h *AuthHandler) startSession(c *gin.Context, status int, u *models.User) {
	tok, err := h.issuer.Issue(u)
	if err != nil {
		h.log.Error().Err(err).Msg("issue token")
		httperr.Internal(c, "internal_error", "Internal server error")
		return
	}

	h.setCookie(c, tok.Raw, int(time.Until(tok.ExpiresAt).Seconds()))

	c.JSON(status, dto.SessionResponse{
		User:      dto.NewUserDTO(u),
		Token:     tok.Raw,
		ExpiresAt: tok.ExpiresAt,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.config.SessionCookie, value, maxAge, "/", "", !h.config.IsDev(), true)
}
