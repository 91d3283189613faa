package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
}

func NewAuditLogsHandler(logs audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /admin/audit_logs/?action=&entity=&from=&to=&page=&limit=
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// unparsable bounds are ignored
	if from, err := time.Parse(rental.DateLayout, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(rental.DateLayout, c.Query("to")); err == nil {
		f.To = &to
	}

	result, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, result)
}
