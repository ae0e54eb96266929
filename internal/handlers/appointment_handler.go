package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	uc "github.com/BruksfildServices01/care-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *uc.CreateAppointment
	list   *uc.ListAppointments
	get    *uc.GetAppointment
	update *uc.UpdateAppointment
	delete *uc.DeleteAppointment

	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewAppointmentHandler(
	repo domain.Repository,
	audit uc.Recorder,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:  uc.NewCreateAppointment(repo, audit),
		list:    uc.NewListAppointments(repo),
		get:     uc.NewGetAppointment(repo),
		update:  uc.NewUpdateAppointment(repo, audit),
		delete:  uc.NewDeleteAppointment(repo, audit),
		metrics: m,
		log:     log,
	}
}

// ======================================================
// HELPERS
// ======================================================

// fail records the outcome and writes err. fallback is the status used for
// store and unexpected failures on this route.
func (h *AppointmentHandler) fail(c *gin.Context, op string, err error, fallback int) {
	kind := httperr.KindOf(err)
	h.metrics.ObserveOperation(op, kind.String())

	if kind == httperr.KindStore || kind == httperr.KindUnknown {
		h.log.Error().
			Err(err).
			Str("operation", op).
			Str("appointment_id", c.Param("id")).
			Msg("appointment operation failed")
	}

	httperr.Respond(c, err, fallback)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		h.metrics.ObserveOperation("create", httperr.KindNotFound.String())
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ObserveOperation("create", httperr.KindInput.String())
		httperr.BadRequest(c, "invalid_request", "Request body must be a JSON object.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), principal, uc.CreateAppointmentInput{
		Doctor:          req.Doctor,
		AppointmentType: req.AppointmentType,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Date:            req.Date,
		Time:            req.Time,
	})
	if err != nil {
		h.fail(c, "create", err, http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveOperation("create", "ok")
	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	apps, err := h.list.Execute(c.Request.Context(), principal)
	if err != nil {
		h.fail(c, "list", err, http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveOperation("list", "ok")
	httpresp.OK(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	ap, err := h.get.Execute(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.fail(c, "get", err, http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveOperation("get", "ok")
	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.metrics.ObserveOperation("update", httperr.KindInput.String())
		httperr.BadRequest(c, "invalid_request", "Request body must be a JSON object.")
		return
	}

	patch, err := domain.ParsePatch(raw)
	if err != nil {
		h.fail(c, "update", err, http.StatusConflict)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), principal, c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update", err, http.StatusConflict)
		return
	}

	h.metrics.ObserveOperation("update", "ok")
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	if err := h.delete.Execute(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.fail(c, "delete", err, http.StatusConflict)
		return
	}

	h.metrics.ObserveOperation("delete", "ok")
	httpresp.Message(c, "Appointment deleted successfully.")
}
