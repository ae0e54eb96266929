package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/dto"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
)

// maxAuditOffset bounds (page-1)*limit so the offset stays positive on every
// platform and store.
const maxAuditOffset = math.MaxInt32

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	log   zerolog.Logger
}

func NewAuditLogsHandler(store audit.Store, log zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	if page-1 > maxAuditOffset/limit {
		httperr.BadRequest(c, "invalid_page", "Page is out of range.")
		return
	}

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date range, whole days
	// --------------------------------------------------

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("list audit logs")
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.OK(c, dto.AuditLogPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}

// Health answers liveness checks.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
