package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

// UserHandler serves the signed-in user's profile and the doctor directory.
// A profile other than the caller's own reads as not found; admins may read
// any profile but only edit their own.
type UserHandler struct {
	users user.Repository
	audit *audit.Logger
	log   zerolog.Logger
	hash  user.Hasher
}

func NewUserHandler(users user.Repository, auditLog *audit.Logger, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		audit: auditLog,
		log:   log,
		hash:  auth.HashPassword,
	}
}

// ======================================================
// ME
// ======================================================

func (h *UserHandler) GetMe(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Unauthorized - no valid session.")
		return
	}

	u, err := h.users.FindUserByID(c.Request.Context(), principal.ID)
	if err != nil {
		h.respond(c, "find user", err)
		return
	}

	httpresp.OK(c, gin.H{"user": dto.NewUserDTO(u)})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Unauthorized - no valid session.")
		return
	}

	h.update(c, principal, principal.ID)
}

// ======================================================
// PROFILE BY ID
// ======================================================

func (h *UserHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	id := c.Param("id")

	if id != principal.ID && !principal.IsAdmin() {
		httperr.Respond(c, user.ErrNotFound, http.StatusInternalServerError)
		return
	}

	u, err := h.users.FindUserByID(c.Request.Context(), id)
	if err != nil {
		h.respond(c, "find user", err)
		return
	}

	httpresp.OK(c, dto.NewUserDTO(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	id := c.Param("id")

	if id != principal.ID {
		httperr.Respond(c, user.ErrNotFound, http.StatusInternalServerError)
		return
	}

	h.update(c, principal, id)
}

// ======================================================
// DOCTORS
// ======================================================

func (h *UserHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.users.ListUsersByRole(c.Request.Context(), string(identity.RoleDoctor))
	if err != nil {
		h.respond(c, "list doctors", err)
		return
	}

	out := make([]dto.UserDTO, 0, len(doctors))
	for i := range doctors {
		out = append(out, dto.NewUserDTO(&doctors[i]))
	}
	httpresp.OK(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func (h *UserHandler) update(c *gin.Context, principal identity.Principal, id string) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body must be a JSON object.")
		return
	}

	patch, err := user.ParsePatch(raw, h.hash)
	if err != nil {
		h.respond(c, "parse profile patch", err)
		return
	}

	u, err := h.users.UpdateUser(c.Request.Context(), id, patch)
	if err != nil {
		h.respond(c, "update user", err)
		return
	}

	if !patch.IsEmpty() {
		h.audit.Record(c.Request.Context(), audit.Event{
			ActorID:  principal.ID,
			Action:   "user_updated",
			Entity:   "user",
			EntityID: u.ID,
			Metadata: map[string]any{"fields": patch.Keys()},
		})
	}

	httpresp.OK(c, dto.NewUserDTO(u))
}

// respond logs failures the caller cannot act on and writes err.
func (h *UserHandler) respond(c *gin.Context, op string, err error) {
	kind := httperr.KindOf(err)
	if kind == httperr.KindStore || kind == httperr.KindUnknown {
		h.log.Error().Err(err).Str("operation", op).Msg("user operation failed")
	}
	httperr.Respond(c, err, http.StatusInternalServerError)
}
